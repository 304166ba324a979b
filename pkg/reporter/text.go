package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/markerlen/internal/ui/pretty"
	"github.com/yaklabco/markerlen/pkg/decompress"
	"github.com/yaklabco/markerlen/pkg/runner"
)

// TextReporter prints one answer line per calculator for every input.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.InputName.Render(r.opts.displayName(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		for _, input := range file.Inputs {
			r.writeInput(input)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Failures(), nil
}

// writeInput writes the name of one input followed by its answers.
func (r *TextReporter) writeInput(input runner.InputOutcome) {
	fmt.Fprintln(r.bw, r.styles.InputName.Render(r.opts.displayName(input.Input.Name)))

	r.writePart(1, input.Flat)
	r.writePart(2, input.Recursive)

	if input.Error != nil {
		fmt.Fprintf(r.bw, "  %s\n", r.styles.Error.Render(fmt.Sprintf("error: %v", input.Error)))
	}
}

func (r *TextReporter) writePart(part int, m *decompress.Measurement) {
	if m == nil {
		return
	}
	fmt.Fprintf(r.bw, "  %s %s\n",
		r.styles.Label.Render(fmt.Sprintf("Part %d:", part)),
		"The length of the decompressed sequence is "+r.styles.Length.Render(m.String()),
	)
}
