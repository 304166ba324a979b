package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/yaklabco/markerlen/pkg/config"
	"github.com/yaklabco/markerlen/pkg/decompress"
	"github.com/yaklabco/markerlen/pkg/source"
)

// Runner loads and measures files with a worker pool.
type Runner struct {
	// Loader reads each file into inputs.
	Loader *source.Loader

	// Stdin is read for the "-" path. Defaults to os.Stdin.
	Stdin io.Reader
}

// New creates a Runner that reads files with loader.
// A nil loader means a zero source.Loader.
func New(loader *source.Loader) *Runner {
	if loader == nil {
		loader = &source.Loader{}
	}
	return &Runner{Loader: loader, Stdin: os.Stdin}
}

// Run discovers files under opts.Paths and measures them concurrently.
// The outcomes are ordered by path whatever order the workers finish in.
// A file or input that fails is recorded in the result; Run itself only
// fails on discovery errors or cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.process(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) process(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	var (
		inputs []source.Input
		err    error
	)
	if path == source.StdinName {
		inputs, err = r.Loader.LoadReader(ctx, source.StdinName, r.stdin())
	} else {
		inputs, err = r.Loader.Load(ctx, path)
	}
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Inputs = make([]InputOutcome, 0, len(inputs))
	for _, input := range inputs {
		outcome.Inputs = append(outcome.Inputs, MeasureInput(input, opts.effectiveMode(), opts.Limits))
	}
	return outcome
}

func (r *Runner) stdin() io.Reader {
	if r.Stdin == nil {
		return os.Stdin
	}
	return r.Stdin
}

// MeasureInput runs the calculators selected by mode over one input.
// The flat calculator runs first; if it fails the recursive one is skipped.
func MeasureInput(input source.Input, mode config.Mode, limits decompress.Limits) InputOutcome {
	outcome := InputOutcome{Input: input}

	if mode.Flat() {
		m, err := decompress.Measure(input.Text, decompress.Options{Version: decompress.VersionFlat, Limits: limits})
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Flat = m
	}

	if mode.Recursive() {
		m, err := decompress.Measure(input.Text, decompress.Options{Version: decompress.VersionRecursive, Limits: limits})
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Recursive = m
	}

	return outcome
}

// Evaluate measures inputs that are already in memory, one FileOutcome per
// input, in the order given.
func Evaluate(inputs []source.Input, opts Options) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(inputs))}
	result.Stats.FilesDiscovered = len(inputs)

	for _, input := range inputs {
		result.accumulate(FileOutcome{
			Path:   input.Origin,
			Inputs: []InputOutcome{MeasureInput(input, opts.effectiveMode(), opts.Limits)},
		})
	}
	return result
}
