package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/indentfold/internal/logging"
	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/reporter"
	"github.com/yaklabco/indentfold/pkg/runner"
)

type watchFlags struct {
	format  string
	tabSize int
	minSize int
	ignore  []string
	ext     []string
	context bool
	output  string
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Recompute folding ranges whenever a file is saved",
		Long: `Compute folding ranges once, then watch the scanned files and report
fresh ranges for each file every time it changes on disk. Each change
recomputes the whole file. Stops on Ctrl-C.

Examples:
  indentfold watch src/
  indentfold watch --format json -o folds.json app.py`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().IntVar(&flags.tabSize, "tab-size", config.DefaultTabSize, "tab width used to measure indentation")
	cmd.Flags().IntVar(&flags.minSize, "min-size", config.DefaultMinimumRangeSize,
		"drop ranges whose end-start distance is smaller")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore (added to config)")
	cmd.Flags().StringSliceVar(&flags.ext, "ext", nil, "only watch files with these extensions")
	cmd.Flags().BoolVar(&flags.context, "context", false, "show the text of each range's first line")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"rewrite this file with the latest report instead of printing")

	return cmd
}

// watcher holds the state of one watch session.
type watcher struct {
	cfg      *config.Config
	runner   *runner.Runner
	reporter reporter.Reporter
	output   string
	buf      *bytes.Buffer

	// files maps each watched path to its last processed state.
	files map[string]*fsutil.FileInfo

	// outcomes holds the latest ranges of every watched path, so each
	// report covers all files rather than just the one that changed.
	outcomes map[string]runner.FileOutcome
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	cliCfg := &config.Config{Output: flags.output, ShowContext: flags.context}
	if cmd.Flags().Changed("tab-size") {
		if flags.tabSize <= 0 {
			return &UsageError{Err: fmt.Errorf("--tab-size must be positive, got %d", flags.tabSize)}
		}
		cliCfg.TabSize = flags.tabSize
	}
	if cmd.Flags().Changed("min-size") {
		cliCfg.MinimumRangeSize = config.IntPtr(flags.minSize)
	}
	if cmd.Flags().Changed("ext") {
		cliCfg.Extensions = flags.ext
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return &UsageError{Err: fmt.Errorf("invalid format: %w", err)}
	}

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.config
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewInteractive()

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = loaded.workDir
	paths, err := runner.Discover(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}
	if len(paths) == 0 {
		return &UsageError{Err: errors.New("no files to watch")}
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf *bytes.Buffer
	if cfg.Output != "" {
		buf = &bytes.Buffer{}
		out = buf
	}

	// Without a timestamp, an unchanged report is byte-identical and
	// WriteAtomicIfChanged leaves the output file alone.
	rep, err := reporter.New(reporter.Options{
		Writer:        out,
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         reportColor(cmd, cfg.Output),
		ShowContext:   cfg.ShowContext,
		ShowSummary:   false,
		TopFiles:      reporter.DefaultOptions().TopFiles,
		WorkingDir:    loaded.workDir,
		OmitTimestamp: true,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	session := &watcher{
		cfg:      cfg,
		runner:   runner.New(),
		reporter: rep,
		output:   cfg.Output,
		buf:      buf,
		files:    make(map[string]*fsutil.FileInfo, len(paths)),
		outcomes: make(map[string]runner.FileOutcome, len(paths)),
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range watchDirs(paths) {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	for _, path := range paths {
		session.process(ctx, path)
	}
	if err := session.report(ctx); err != nil {
		return err
	}

	logger.Info("watching for changes",
		logging.FieldFiles, len(paths),
		logging.FieldWorkingDir, loaded.workDir,
	)

	changes := make(chan string)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(changes)
		return watchEvents(groupCtx, fsw.Events, changes)
	})
	group.Go(func() error {
		return drainErrors(groupCtx, fsw.Errors)
	})
	group.Go(func() error {
		return session.apply(groupCtx, changes)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("stopped watching")
	return nil
}

// watchEvents forwards the paths of write and create events to changes
// until ctx is done or the event stream closes.
func watchEvents(ctx context.Context, events <-chan fsnotify.Event, changes chan<- string) error {
	logger := logging.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			logger.Debug("watch event", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			select {
			case changes <- filepath.Clean(event.Name):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// drainErrors logs watcher errors until ctx is done or the stream closes.
func drainErrors(ctx context.Context, errs <-chan error) error {
	logger := logging.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// apply recomputes each changed path and re-renders the full report.
// It owns the watcher state; no other goroutine touches it.
func (w *watcher) apply(ctx context.Context, changes <-chan string) error {
	logger := logging.FromContext(ctx)

	for path := range changes {
		if !w.changed(ctx, path) {
			continue
		}

		logger.Debug("file changed", logging.FieldPath, path)
		w.process(ctx, path)
		if err := w.report(ctx); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// changed reports whether path is watched and differs from the last
// processed state. Editors often emit several events per save.
func (w *watcher) changed(ctx context.Context, path string) bool {
	info, ok := w.files[path]
	if !ok {
		return false
	}
	if info == nil {
		return true
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		logging.FromContext(ctx).Debug("check modified failed", logging.FieldPath, path, logging.FieldError, err)
		return true
	}
	return modified
}

// process reads path, records its state and stores its latest ranges.
func (w *watcher) process(ctx context.Context, path string) runner.FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path)
	w.files[path] = info

	var outcome runner.FileOutcome
	if err != nil {
		outcome = runner.FileOutcome{Path: path, Error: err}
	} else {
		outcome = w.runner.ProcessContent(ctx, path, content, w.cfg)
	}
	w.outcomes[path] = outcome
	return outcome
}

// result collects the latest outcome of every watched path, sorted by path.
func (w *watcher) result() *runner.Result {
	paths := make([]string, 0, len(w.outcomes))
	for path := range w.outcomes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	outcomes := make([]runner.FileOutcome, 0, len(paths))
	for _, path := range paths {
		outcomes = append(outcomes, w.outcomes[path])
	}
	return runner.NewResult(outcomes...)
}

// report renders every watched file to the terminal, or rewrites the
// output file when the rendered report differs from what is already there.
func (w *watcher) report(ctx context.Context) error {
	if w.buf != nil {
		w.buf.Reset()
	}

	if _, err := w.reporter.Report(ctx, w.result()); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if w.output == "" {
		return nil
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, w.output, w.buf.Bytes(), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if written {
		logging.FromContext(ctx).Debug("report written", logging.FieldOutput, w.output)
	}
	return nil
}

// watchDirs returns the sorted parent directories of paths. Watching
// directories rather than files survives editors that save by rename.
func watchDirs(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	dirs := make([]string, 0, len(paths))
	for _, path := range paths {
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}
