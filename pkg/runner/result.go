package runner

import (
	"github.com/yaklabco/markerlen/pkg/decompress"
	"github.com/yaklabco/markerlen/pkg/source"
)

// InputOutcome is the measurement of one input.
type InputOutcome struct {
	Input source.Input

	// Flat and Recursive are nil when their calculator did not run or failed.
	Flat      *decompress.Measurement
	Recursive *decompress.Measurement

	// Error is the first calculator failure, if any.
	Error error
}

// Markers returns the number of markers seen by the deepest calculator that ran.
func (o InputOutcome) Markers() int {
	switch {
	case o.Recursive != nil:
		return o.Recursive.Markers
	case o.Flat != nil:
		return o.Flat.Markers
	default:
		return 0
	}
}

// Depth returns the nesting depth seen by the deepest calculator that ran.
func (o InputOutcome) Depth() int {
	switch {
	case o.Recursive != nil:
		return o.Recursive.Depth
	case o.Flat != nil:
		return o.Flat.Depth
	default:
		return 0
	}
}

// FileOutcome is the result of loading and measuring one file.
type FileOutcome struct {
	// Path is the file path, or "-" for standard input.
	Path string

	// Inputs holds one outcome per input read from the file.
	Inputs []InputOutcome

	// Error is set if the file could not be loaded.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files loaded successfully.
	FilesProcessed int

	// FilesErrored is the number of files that could not be loaded.
	FilesErrored int

	// InputsMeasured is the number of inputs measured without error.
	InputsMeasured int

	// InputsFailed is the number of inputs with a format or limit error.
	InputsFailed int

	// MarkersTotal sums Markers over measured inputs.
	MarkersTotal int

	// MaxDepth is the deepest nesting seen in any input.
	MaxDepth int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file or input failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.InputsFailed > 0
}

// Failures returns the number of failed files plus failed inputs.
func (r *Result) Failures() int {
	if r == nil {
		return 0
	}
	return r.Stats.FilesErrored + r.Stats.InputsFailed
}

// accumulate appends a file outcome and updates the statistics.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++

	for _, input := range outcome.Inputs {
		if input.Error != nil {
			r.Stats.InputsFailed++
			continue
		}
		r.Stats.InputsMeasured++
		r.Stats.MarkersTotal += input.Markers()
		r.Stats.MaxDepth = max(r.Stats.MaxDepth, input.Depth())
	}
}
