package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/indentfold/internal/logging"
	"github.com/yaklabco/indentfold/internal/ui/pretty"
	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fold"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/langdetect"
	"github.com/yaklabco/indentfold/pkg/snapshot"
)

type indentFlags struct {
	tabSize int
}

func newIndentCommand() *cobra.Command {
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   "indent <file>",
		Short: "Print the measured indentation of every line",
		Long: `Print each line of a file with the indentation width used for folding.

Blank lines are shown as "-" because they never open or close a range.
Useful for checking how a tab size setting treats mixed tabs and spaces.

Examples:
  indentfold indent app.py
  indentfold indent --tab-size 8 Makefile`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &UsageError{Err: fmt.Errorf("indent requires exactly one file, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndent(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.tabSize, "tab-size", config.DefaultTabSize, "tab width used to measure indentation")

	return cmd
}

func runIndent(cmd *cobra.Command, path string, flags *indentFlags) error {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("tab-size") {
		if err := fold.ValidateTabSize(flags.tabSize); err != nil {
			return &UsageError{Err: err}
		}
		cliCfg.TabSize = flags.tabSize
	}

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lang := langdetect.DetectFile(path, content)
	settings := loaded.config.Resolve(lang)
	// A flag beats a per-language override for this one-off listing.
	if cmd.Flags().Changed("tab-size") {
		settings.TabSize = flags.tabSize
	}
	if err := fold.ValidateTabSize(settings.TabSize); err != nil {
		return &ConfigError{Err: errors.Join(fmt.Errorf("language %s", lang), err)}
	}

	logging.FromContext(ctx).Debug("measuring indentation",
		logging.FieldPath, path,
		logging.FieldLanguage, lang,
		logging.FieldTabSize, settings.TabSize,
	)

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	snap := snapshot.New(path, content)
	width := len(strconv.Itoa(snap.LineCount()))

	if _, err := fmt.Fprintln(out, styles.FormatFileHeader(path, lang, settings.TabSize, countRanges(snap, settings))); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	for line := 1; line <= snap.LineCount(); line++ {
		text := snap.LineText(line)
		indent := fold.IndentLevel(text, settings.TabSize)
		if _, err := fmt.Fprint(out, styles.FormatIndentLine(line, indent, width, text)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

func countRanges(snap *snapshot.FileSnapshot, settings config.Settings) int {
	return len(fold.ComputeRanges(snap, settings.TabSize, settings.MinimumRangeSize))
}
