package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/markerlen/internal/ui/pretty"
	"github.com/yaklabco/markerlen/pkg/runner"
)

// SummaryReporter prints only aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}

	text := r.styles.FormatSummary(stats)
	if r.opts.Compact {
		text = r.styles.FormatSummaryOneLine(stats)
	}

	if _, err := fmt.Fprint(r.out, text); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}

	return result.Failures(), nil
}
