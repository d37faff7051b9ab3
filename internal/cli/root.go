// Package cli provides the Cobra command structure for indentfold.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/indentfold/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root indentfold command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "indentfold",
		Short: "Compute indentation-based folding ranges for source files",
		Long: `indentfold computes the foldable regions of text files from indentation alone.

A line followed by one or more lines indented strictly deeper opens a range
that ends just before the next line indented at or above the opener. Blank
lines never open or close a range. Tab width is configurable globally and
per detected language, so the same rules apply to Python, YAML, Makefiles
or any other indentation-structured text.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (.yml, .yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.AddCommand(newRangesCommand())
	rootCmd.AddCommand(newIndentCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
