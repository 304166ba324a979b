package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/markerlen/internal/logging"
	"github.com/yaklabco/markerlen/pkg/reporter"
	"github.com/yaklabco/markerlen/pkg/runner"
)

type measureCommandFlags struct {
	measureFlags

	jobs           int
	ignore         []string
	followSymlinks bool
}

func newMeasureCommand() *cobra.Command {
	flags := &measureCommandFlags{}

	cmd := &cobra.Command{
		Use:     "measure [paths...]",
		Aliases: []string{"m"},
		Short:   "Measure the decompressed length of files",
		Long:    measureLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, args, flags)
		},
	}

	addMeasureFlags(cmd, &flags.measureFlags, true)
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks while walking")

	return cmd
}

const measureLongDescription = `Measure the decompressed length of every input.

With no paths, measures input.txt in the current directory. Directories are
walked for files with a configured extension; "-" reads standard input.
Whitespace is ignored unless --keep-whitespace is given.

Examples:
  markerlen measure                      # Measure ./input.txt
  markerlen measure puzzles/             # Measure every input under puzzles/
  markerlen measure day9.txt.gz          # Decode gzip and measure
  cat input.txt | markerlen measure -    # Measure standard input
  markerlen measure --mode flat          # Format v1 only
  markerlen measure --format json        # Machine-readable output`

func runMeasure(cmd *cobra.Command, args []string, flags *measureCommandFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}
	if flags.jobs < 0 {
		return usageError(fmt.Errorf("invalid --jobs %d: must not be negative", flags.jobs))
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg := flags.cliConfig()
	cliCfg.Jobs = flags.jobs
	cliCfg.Ignore = flags.ignore

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	repOpts, err := reporterOptions(cmd, cfg, &flags.measureFlags, workDir)
	if err != nil {
		return err
	}

	measureRunner := runner.New(newLoader(cfg))
	measureRunner.Stdin = cmd.InOrStdin()

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Mode:           cfg.Mode,
		Limits:         decompressLimits(cfg),
	}

	logger.Debug("starting measurement",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	start := time.Now()
	result, err := measureRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("measurement failed"), err)
	}
	repOpts.Elapsed = time.Since(start)

	logResult(logger, result, repOpts.Elapsed)

	return report(cmd, repOpts, result)
}

// report writes result and converts failures into ErrMeasureFailed.
func report(cmd *cobra.Command, opts reporter.Options, result *runner.Result) error {
	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	failures, err := rep.Report(cmd.Context(), result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	if failures > 0 {
		return ErrMeasureFailed
	}
	return nil
}

// logResult traces every outcome at debug level.
func logResult(logger *log.Logger, result *runner.Result, elapsed time.Duration) {
	for _, file := range result.Files {
		if file.Error != nil {
			logger.Debug("file not loaded", logging.FieldPath, file.Path, logging.FieldError, file.Error)
			continue
		}
		for _, input := range file.Inputs {
			if input.Error != nil {
				logger.Debug("input failed", logging.FieldInput, input.Input.Name, logging.FieldError, input.Error)
				continue
			}
			length := input.Recursive
			if length == nil {
				length = input.Flat
			}
			logger.Debug("input measured",
				logging.FieldInput, input.Input.Name,
				logging.FieldCompressed, input.Input.Chars(),
				logging.FieldLength, length.String(),
				logging.FieldMarkers, input.Markers(),
				logging.FieldDepth, input.Depth(),
			)
		}
	}

	stats := result.Stats
	logger.Debug("measurement complete",
		logging.FieldFilesDiscovered, stats.FilesDiscovered,
		logging.FieldFilesProcessed, stats.FilesProcessed,
		logging.FieldFilesErrored, stats.FilesErrored,
		logging.FieldInputsMeasured, stats.InputsMeasured,
		logging.FieldInputsFailed, stats.InputsFailed,
		logging.FieldElapsed, elapsed,
	)
}
