// Package reporter renders measurement results as text, tables, JSON or summaries.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/markerlen/pkg/runner"
)

// Reporter formats and writes measurement results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and inputs and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
