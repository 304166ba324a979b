package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/term"

	"github.com/yaklabco/markerlen/internal/ui/pretty"
	"github.com/yaklabco/markerlen/pkg/runner"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// TableReporter formats results as a styled table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	termWidth := getTerminalWidth(opts.Writer)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, termWidth),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No inputs to measure."))
		}
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(r.relativize(result)))

	if r.opts.ShowSummary {
		var elapsed string
		if r.opts.Elapsed > 0 {
			elapsed = r.opts.Elapsed.Round(time.Millisecond).String()
		}
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, elapsed))
	}

	return result.Failures(), nil
}

// relativize returns a shallow copy of result with display names applied.
func (r *TableReporter) relativize(result *runner.Result) *runner.Result {
	if r.opts.WorkingDir == "" {
		return result
	}

	out := &runner.Result{Files: make([]runner.FileOutcome, len(result.Files)), Stats: result.Stats}
	for i, file := range result.Files {
		file.Path = r.opts.displayName(file.Path)

		inputs := make([]runner.InputOutcome, len(file.Inputs))
		for j, input := range file.Inputs {
			input.Input.Name = r.opts.displayName(input.Input.Name)
			inputs[j] = input
		}
		file.Inputs = inputs
		out.Files[i] = file
	}
	return out
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
