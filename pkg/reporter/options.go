package reporter

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// Elapsed is the run duration shown by the table summary. Zero hides it.
	Elapsed time.Duration

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		Compact:     false,
	}
}

// displayName makes an absolute input name relative to WorkingDir when possible.
func (o Options) displayName(name string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(name) {
		return name
	}
	rel, err := filepath.Rel(o.WorkingDir, name)
	if err != nil {
		return name
	}
	return rel
}
