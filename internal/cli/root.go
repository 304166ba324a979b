// Package cli provides the Cobra command structure for markerlen.
package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markerlen/internal/configloader"
	"github.com/yaklabco/markerlen/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root markerlen command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "markerlen",
		Short: "Measure the decompressed length of (NxM) marker-compressed text",
		Long: `markerlen computes how long a marker-compressed text becomes once it is
decompressed, without ever building the decompressed text.

A marker "(NxM)" repeats the next N characters M times. In format v1 (flat)
markers inside a repeated region are plain data; in format v2 (recursive)
they are expanded too. Inputs may be plain text, gzip, zstd, lz4 or brotli
files, standard input, or fenced code blocks in Markdown documents.` + environmentHelp(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			switch color {
			case "auto", "always", "never":
			default:
				return usageError(fmt.Errorf("invalid --color %q: must be auto, always or never", color))
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newMeasureCommand())
	rootCmd.AddCommand(newEvalCommand())
	rootCmd.AddCommand(newMarkersCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs wraps a cobra argument validator so its failures map to ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(validate(cmd, args))
	}
}

// environmentHelp lists the supported environment variables for the root help text.
func environmentHelp() string {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	var builder strings.Builder
	builder.WriteString("\n\nEnvironment:\n")
	for _, name := range names {
		fmt.Fprintf(&builder, "  %-*s  %s\n", width, name, vars[name])
	}
	return strings.TrimSuffix(builder.String(), "\n")
}
