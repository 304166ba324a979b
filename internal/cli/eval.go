package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markerlen/internal/logging"
	"github.com/yaklabco/markerlen/pkg/runner"
	"github.com/yaklabco/markerlen/pkg/source"
)

func newEvalCommand() *cobra.Command {
	flags := &measureFlags{}

	cmd := &cobra.Command{
		Use:   "eval <text>...",
		Short: "Measure compressed text given on the command line",
		Long: `Measure each argument as a separate compressed text.

Arguments are treated exactly like file contents: whitespace is stripped
unless --keep-whitespace is given.

Examples:
  markerlen eval 'X(8x2)(3x3)ABCY'
  markerlen eval --mode recursive '(27x12)(20x12)(13x14)(7x10)(1x12)A'
  markerlen eval ADVENT 'A(1x5)BC' --format table`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, flags)
		},
	}

	addMeasureFlags(cmd, flags, false)

	return cmd
}

func runEval(cmd *cobra.Command, args []string, flags *measureFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(cmd, flags.cliConfig())
	if err != nil {
		return err
	}

	repOpts, err := reporterOptions(cmd, cfg, flags, workDir)
	if err != nil {
		return err
	}

	inputs := make([]source.Input, 0, len(args))
	for i, arg := range args {
		if !utf8.ValidString(arg) {
			return usageError(fmt.Errorf("%w: argument %d", source.ErrInvalidEncoding, i+1))
		}
		text := arg
		if !cfg.KeepWhitespace {
			text = source.StripWhitespace(text)
		}
		name := fmt.Sprintf("arg%d", i+1)
		inputs = append(inputs, source.Input{Name: name, Origin: name, Text: text})
	}

	logging.FromContext(cmd.Context()).Debug("evaluating arguments", logging.FieldInput, len(inputs))

	result := runner.Evaluate(inputs, runner.Options{Mode: cfg.Mode, Limits: decompressLimits(cfg)})

	return report(cmd, repOpts, result)
}
