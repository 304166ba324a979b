package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/markerlen/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Inputs  []JSONInput `json:"inputs"`
	Summary JSONSummary `json:"summary"`
}

// JSONInput represents one measured input, or one file that could not be read.
// Lengths are decimal strings because they may exceed 2^53.
type JSONInput struct {
	Name       string `json:"name"`
	Origin     string `json:"origin"`
	Line       int    `json:"line,omitempty"`
	Compressed int    `json:"compressed"`
	Flat       string `json:"flat,omitempty"`
	Recursive  string `json:"recursive,omitempty"`
	Markers    int    `json:"markers"`
	Depth      int    `json:"depth"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesErrored    int `json:"filesErrored"`
	InputsMeasured  int `json:"inputsMeasured"`
	InputsFailed    int `json:"inputsFailed"`
	MarkersTotal    int `json:"markersTotal"`
	MaxDepth        int `json:"maxDepth"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return result.Failures(), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Inputs:  make([]JSONInput, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesProcessed:  stats.FilesProcessed,
		FilesErrored:    stats.FilesErrored,
		InputsMeasured:  stats.InputsMeasured,
		InputsFailed:    stats.InputsFailed,
		MarkersTotal:    stats.MarkersTotal,
		MaxDepth:        stats.MaxDepth,
	}

	for _, file := range result.Files {
		if file.Error != nil {
			path := r.opts.displayName(file.Path)
			output.Inputs = append(output.Inputs, JSONInput{
				Name:   path,
				Origin: path,
				Error:  file.Error.Error(),
			})
			continue
		}

		for _, input := range file.Inputs {
			output.Inputs = append(output.Inputs, r.buildInput(input))
		}
	}

	return output
}

func (r *JSONReporter) buildInput(input runner.InputOutcome) JSONInput {
	out := JSONInput{
		Name:       r.opts.displayName(input.Input.Name),
		Origin:     r.opts.displayName(input.Input.Origin),
		Line:       input.Input.Line,
		Compressed: input.Input.Chars(),
		Markers:    input.Markers(),
		Depth:      input.Depth(),
	}
	if input.Flat != nil {
		out.Flat = input.Flat.String()
	}
	if input.Recursive != nil {
		out.Recursive = input.Recursive.String()
	}
	if input.Error != nil {
		out.Error = input.Error.Error()
	}
	return out
}
