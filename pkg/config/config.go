// Package config defines the configuration types for markerlen.
// These types are pure data; loading and merging live in internal/configloader.
package config

// Mode selects which length calculators run.
type Mode string

const (
	ModeFlat      Mode = "flat"
	ModeRecursive Mode = "recursive"
	ModeBoth      Mode = "both"
)

// IsValid returns true if the mode is known.
func (m Mode) IsValid() bool {
	switch m {
	case ModeFlat, ModeRecursive, ModeBoth:
		return true
	default:
		return false
	}
}

// Flat reports whether the flat calculator runs in this mode.
func (m Mode) Flat() bool { return m == ModeFlat || m == ModeBoth }

// Recursive reports whether the recursive calculator runs in this mode.
func (m Mode) Recursive() bool { return m == ModeRecursive || m == ModeBoth }

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// Default limits.
const (
	DefaultMaxDepth        = 4096
	DefaultMaxInputBytes   = 64 << 20
	DefaultMaxDecodedBytes = 256 << 20
)

// LimitsConfig bounds resource use per input.
type LimitsConfig struct {
	// MaxDepth is the deepest marker nesting the recursive calculator follows.
	MaxDepth int `yaml:"max_depth"`

	// MaxInputBytes caps the bytes read from a file or stream.
	MaxInputBytes int64 `yaml:"max_input_bytes"`

	// MaxDecodedBytes caps the bytes produced by gzip, zstd, lz4 or brotli decoding.
	MaxDecodedBytes int64 `yaml:"max_decoded_bytes"`
}

// MarkdownConfig controls how Markdown documents are read.
type MarkdownConfig struct {
	// Languages lists the fenced-block info strings that are measured.
	// The empty string matches unlabelled fences.
	Languages []string `yaml:"languages"`
}

// Config is the root configuration structure for markerlen.
type Config struct {
	// Mode selects the calculators: "flat", "recursive" or "both".
	Mode Mode `yaml:"mode"`

	// KeepWhitespace disables whitespace stripping.
	KeepWhitespace bool `yaml:"keep_whitespace"`

	// Extensions lists the file extensions measured when a directory is walked.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	Limits LimitsConfig `yaml:"limits"`

	Markdown MarkdownConfig `yaml:"markdown"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"-"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"-"`
}

// DefaultExtensions returns the extensions walked by default.
func DefaultExtensions() []string {
	return []string{".txt", ".in", ".md", ".gz", ".zst", ".lz4", ".br"}
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Mode:       ModeBoth,
		Extensions: DefaultExtensions(),
		Limits: LimitsConfig{
			MaxDepth:        DefaultMaxDepth,
			MaxInputBytes:   DefaultMaxInputBytes,
			MaxDecodedBytes: DefaultMaxDecodedBytes,
		},
		Markdown: MarkdownConfig{
			Languages: []string{"", "text", "markers"},
		},
		Format: FormatText,
		Color:  "auto",
	}
}
