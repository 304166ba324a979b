package cli

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/markerlen/internal/logging"
	"github.com/yaklabco/markerlen/pkg/config"
	"github.com/yaklabco/markerlen/pkg/fsutil"
)

// defaultConfigFile is the file written by init when --output is not given.
const defaultConfigFile = ".markerlen.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new markerlen configuration file",
		Long: `Create a .markerlen.yml configuration file in the current directory,
documenting every setting with its default value.

Examples:
  markerlen init                     Create .markerlen.yml
  markerlen init --force             Overwrite an existing file
  markerlen init --output ci.yml     Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigFile
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.Exists(absPath) && !flags.force {
		if !confirmOverwrite(cmd.InOrStdin(), cmd.ErrOrStderr(), outputPath) {
			return fmt.Errorf("%w: %s; use --force to overwrite", fs.ErrExist, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, config.GenerateTemplate(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'markerlen measure --debug' to see which configuration files are loaded")

	return nil
}

// confirmOverwrite asks on an interactive terminal whether to replace path.
// Without a terminal it never overwrites.
func confirmOverwrite(in io.Reader, prompt io.Writer, path string) bool {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}

	fmt.Fprintf(prompt, "%s already exists. Overwrite? [y/N] ", path)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
