package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/indentfold/internal/logging"
	"github.com/yaklabco/indentfold/pkg/analysis"
	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/reporter"
	"github.com/yaklabco/indentfold/pkg/runner"
)

// stdinLabel labels a buffer read from standard input in reports.
const stdinLabel = "<stdin>"

type rangesFlags struct {
	format         string
	tabSize        int
	minSize        int
	jobs           int
	ignore         []string
	extensions     []string
	includeVendor  bool
	followSymlinks bool
	skipGenerated  bool
	showSkipped    bool
	context        bool
	noSummary      bool
	stats          bool
	compact        bool
	sortBy         string
	output         string
	stdinName      string
}

func newRangesCommand() *cobra.Command {
	flags := &rangesFlags{}

	cmd := &cobra.Command{
		Use:   "ranges [paths...]",
		Short: "Compute folding ranges for files",
		Long:  rangesLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRanges(cmd, args, flags)
		},
	}

	addRangesFlags(cmd, flags)

	return cmd
}

const rangesLongDescription = `Compute indentation-based folding ranges.

By default, scans every text file in the current directory and
subdirectories, skipping hidden, vendored and binary files. Specify paths
to scan specific files or directories, or "-" to read standard input.

Examples:
  indentfold ranges                        # Scan current directory
  indentfold ranges src/ scripts/build.sh  # Scan selected paths
  indentfold ranges --tab-size 8 Makefile  # Override the tab width
  indentfold ranges --context app.py       # Show each range's opening line
  indentfold ranges --format json -o folds.json
  cat app.py | indentfold ranges - --stdin-name app.py`

func addRangesFlags(cmd *cobra.Command, flags *rangesFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().IntVar(&flags.tabSize, "tab-size", config.DefaultTabSize, "tab width used to measure indentation")
	cmd.Flags().IntVar(&flags.minSize, "min-size", config.DefaultMinimumRangeSize,
		"drop ranges whose end-start distance is smaller")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore (added to config)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "only scan files with these extensions")
	cmd.Flags().BoolVar(&flags.includeVendor, "include-vendor", false, "scan vendored directories too")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse directory symlinks")
	cmd.Flags().BoolVar(&flags.skipGenerated, "skip-generated", false, "skip files that look machine generated")
	cmd.Flags().BoolVar(&flags.showSkipped, "show-skipped", false, "list binary and generated files that were skipped")
	cmd.Flags().BoolVar(&flags.context, "context", false, "show the text of each range's first line")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the closing statistics line")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "end text output with a per-language summary block")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "", "order files in table/json/summary output: count, alpha, depth")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&flags.stdinName, "stdin-name", "", "file name used to detect the language of stdin")
}

// cliConfig builds the CLI layer of the configuration.
// Only flags that were explicitly set override lower layers.
func (f *rangesFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("tab-size") {
		cfg.TabSize = f.tabSize
	}
	if changed("min-size") {
		cfg.MinimumRangeSize = config.IntPtr(f.minSize)
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ext") {
		cfg.Extensions = f.extensions
	}
	cfg.IncludeVendor = f.includeVendor
	cfg.FollowSymlinks = f.followSymlinks
	cfg.ShowContext = f.context
	cfg.Output = f.output

	return cfg
}

func runRanges(cmd *cobra.Command, args []string, flags *rangesFlags) error {
	// A negative tab size would otherwise read as "unset" after merging.
	if cmd.Flags().Changed("tab-size") && flags.tabSize <= 0 {
		return &UsageError{Err: fmt.Errorf("--tab-size must be positive, got %d", flags.tabSize)}
	}
	if flags.sortBy != "" && !analysis.SortField(flags.sortBy).IsValid() {
		return &UsageError{Err: fmt.Errorf("invalid --sort %q; must be count, alpha, or depth", flags.sortBy)}
	}
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return &UsageError{Err: fmt.Errorf("invalid format: %w", err)}
		}
	}
	readStdin := len(args) == 1 && args[0] == "-"
	if !readStdin && containsDash(args) {
		return &UsageError{Err: errors.New(`"-" must be the only path when reading stdin`)}
	}

	loaded, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := loaded.config
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return &UsageError{Err: fmt.Errorf("invalid format: %w", err)}
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	foldRunner := runner.New()
	foldRunner.SkipGenerated = flags.skipGenerated

	var result *runner.Result
	if readStdin {
		result, err = rangesFromStdin(ctx, foldRunner, cmd.InOrStdin(), flags.stdinName, cfg)
	} else {
		runOpts := runner.OptionsFromConfig(cfg, args)
		runOpts.WorkingDir = loaded.workDir

		logger.Debug("starting run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
		)
		result, err = foldRunner.Run(ctx, runOpts)
	}
	if err != nil {
		return errors.Join(errors.New("range computation failed"), err)
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if cfg.Output != "" {
		out = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          out,
		ErrorWriter:     cmd.ErrOrStderr(),
		Format:          format,
		Color:           reportColor(cmd, cfg.Output),
		ShowContext:     cfg.ShowContext,
		ShowSummary:     !flags.noSummary,
		DetailedSummary: flags.stats,
		ShowSkipped:     flags.showSkipped,
		Compact:         flags.compact,
		SortBy:          analysis.SortField(flags.sortBy),
		TopFiles:        reporter.DefaultOptions().TopFiles,
		WorkingDir:      loaded.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output != "" {
		if err := fsutil.WriteAtomic(ctx, cfg.Output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Debug("report written", logging.FieldOutput, cfg.Output)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesErrored
	}

	return nil
}

// rangesFromStdin folds a buffer read from r. name, when set, is used
// for language detection and shown in place of stdinLabel.
func rangesFromStdin(
	ctx context.Context,
	foldRunner *runner.Runner,
	r io.Reader,
	name string,
	cfg *config.Config,
) (*runner.Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	outcome := foldRunner.ProcessContent(ctx, name, content, cfg)
	if name == "" {
		outcome.Path = stdinLabel
	}

	return runner.NewResult(outcome), nil
}

// reportColor disables color when the report goes to a file.
func reportColor(cmd *cobra.Command, output string) string {
	if output != "" {
		return "never"
	}
	return colorMode(cmd)
}

func containsDash(args []string) bool {
	for _, arg := range args {
		if strings.TrimSpace(arg) == "-" {
			return true
		}
	}
	return false
}
