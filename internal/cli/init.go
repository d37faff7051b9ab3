package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/indentfold/internal/logging"
	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new indentfold configuration file",
		Long: `Create a new .indentfold.yml configuration file in the current directory
with sensible defaults. The file can be customized to change the tab width,
the minimum range size and per-language overrides.

Examples:
  indentfold init                      Create minimal .indentfold.yml
  indentfold init --full               Include per-language examples
  indentfold init --format toml        Create .indentfold.toml instead
  indentfold init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with per-language examples")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .indentfold.yml or .indentfold.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return &UsageError{Err: fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".indentfold.yml"
		if flags.format == config.TemplateTOML {
			outputPath = ".indentfold.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return &UsageError{Err: fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)}
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", outputPath, err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template includes per-language overrides")
	}

	logger.Info("run 'indentfold languages' to see the settings each language resolves to")

	return nil
}
