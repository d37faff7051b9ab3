package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/indentfold/internal/configloader"
	"github.com/yaklabco/indentfold/pkg/config"
)

type configFlags struct {
	format string
	paths  bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration that results from merging every source:
system, user and project files, --config, and INDENTFOLD_* environment
variables. Use --paths to show which files were found.

Examples:
  indentfold config
  indentfold config --format toml
  indentfold config --paths`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "output format: yaml or toml")
	cmd.Flags().BoolVar(&flags.paths, "paths", false, "list discovered config file locations instead")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return &UsageError{Err: fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)}
	}

	loaded, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.paths {
		return writeConfigPaths(out, loaded.result)
	}

	var data []byte
	if flags.format == config.TemplateTOML {
		data, err = loaded.config.ToTOML()
	} else {
		data, err = loaded.config.ToYAML()
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// writeConfigPaths lists each config layer and the file it resolved to.
func writeConfigPaths(out io.Writer, result *configloader.LoadResult) error {
	paths := result.Paths
	if paths == nil {
		paths = &configloader.ConfigPaths{}
	}

	layers := []struct {
		name string
		path string
	}{
		{"system", paths.System},
		{"user", paths.User},
		{"project", paths.Project},
		{"explicit", paths.Explicit},
	}

	for _, layer := range layers {
		path := layer.path
		if path == "" {
			path = "(none)"
		}
		if _, err := fmt.Fprintf(out, "%-9s %s\n", layer.name+":", path); err != nil {
			return fmt.Errorf("write paths: %w", err)
		}
	}
	return nil
}
