package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markerlen/internal/configloader"
	"github.com/yaklabco/markerlen/internal/logging"
	"github.com/yaklabco/markerlen/pkg/config"
	"github.com/yaklabco/markerlen/pkg/decompress"
	"github.com/yaklabco/markerlen/pkg/reporter"
	"github.com/yaklabco/markerlen/pkg/source"
)

// measureFlags holds the flags shared by measure and eval.
type measureFlags struct {
	mode           string
	format         string
	keepWhitespace bool
	maxDepth       int
	compact        bool
	summary        bool
}

// addMeasureFlags registers the flags shared by measure and eval.
func addMeasureFlags(cmd *cobra.Command, flags *measureFlags, summary bool) {
	cmd.Flags().StringVar(&flags.mode, "mode", "", "calculators to run: flat, recursive, both (default both)")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, summary (default text)")
	cmd.Flags().BoolVar(&flags.keepWhitespace, "keep-whitespace", false, "measure whitespace instead of stripping it")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "deepest marker nesting to follow (0 = config or 4096)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.summary, "summary", summary, "print a summary after results")
}

// validate rejects malformed flag values before any configuration is read.
func (f *measureFlags) validate() error {
	if f.mode != "" && !config.Mode(f.mode).IsValid() {
		return usageError(fmt.Errorf("invalid --mode %q: must be flat, recursive or both", f.mode))
	}
	if f.format != "" {
		if _, err := reporter.ParseFormat(f.format); err != nil {
			return usageError(err)
		}
	}
	if f.maxDepth < 0 {
		return usageError(fmt.Errorf("invalid --max-depth %d: must not be negative", f.maxDepth))
	}
	return nil
}

// cliConfig converts the flags into the highest-precedence config layer.
// Unset flags stay zero so lower layers show through.
func (f *measureFlags) cliConfig() *config.Config {
	return &config.Config{
		Mode:           config.Mode(f.mode),
		Format:         config.OutputFormat(f.format),
		KeepWhitespace: f.keepWhitespace,
		Limits:         config.LimitsConfig{MaxDepth: f.maxDepth},
	}
}

// loadConfig resolves the configuration for a command and returns it with
// the working directory used for discovery.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(cmd.Context())

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMode, cfg.Mode,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldLimit, cfg.Limits.MaxDepth,
	)

	return cfg, workDir, nil
}

// newLoader builds a source loader from the configuration.
func newLoader(cfg *config.Config) *source.Loader {
	return &source.Loader{
		Limits: source.Limits{
			MaxInputBytes:   cfg.Limits.MaxInputBytes,
			MaxDecodedBytes: cfg.Limits.MaxDecodedBytes,
		},
		KeepWhitespace:    cfg.KeepWhitespace,
		MarkdownLanguages: cfg.Markdown.Languages,
	}
}

// decompressLimits extracts the calculator limits from the configuration.
func decompressLimits(cfg *config.Config) decompress.Limits {
	return decompress.Limits{MaxDepth: cfg.Limits.MaxDepth}
}

// reporterOptions builds the reporter options for a command's output.
func reporterOptions(cmd *cobra.Command, cfg *config.Config, flags *measureFlags, workDir string) (reporter.Options, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return reporter.Options{}, usageError(err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	return reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	}, nil
}
