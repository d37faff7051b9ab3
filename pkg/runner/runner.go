package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/indentfold/internal/logging"
	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fold"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/langdetect"
	"github.com/yaklabco/indentfold/pkg/snapshot"
)

// DetectFunc names the language of a file.
type DetectFunc func(path string, content []byte) string

// Runner computes folding ranges for many files.
type Runner struct {
	// Detect names each file's language. Defaults to langdetect.DetectFile.
	Detect DetectFunc

	// SkipGenerated skips files that look machine generated.
	SkipGenerated bool
}

// New creates a Runner using go-enry language detection.
func New() *Runner {
	return &Runner{Detect: langdetect.DetectFile}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Files are ordered by path in the result regardless of completion order.
// On cancellation the partial result is returned with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logger.Debug("starting run", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.Config)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldRanges, result.Stats.RangesTotal,
		logging.FieldElapsed, time.Since(started),
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, cfg *config.Config) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path, cfg)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads one file and computes its folding ranges.
// Read failures are reported in the outcome's Error field.
func (r *Runner) ProcessFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		logging.FromContext(ctx).Debug("read failed", logging.FieldPath, path, logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}

	return r.ProcessContent(ctx, path, content, cfg)
}

// ProcessContent computes folding ranges for content already in memory.
// path is used for language detection and may be empty.
func (r *Runner) ProcessContent(ctx context.Context, path string, content []byte, cfg *config.Config) FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	if langdetect.IsBinary(content) {
		outcome.SkipReason = ErrBinaryFile
		logger.Debug("skipping file", logging.FieldPath, path, logging.FieldReason, outcome.SkipReason)
		return outcome
	}
	if r.SkipGenerated && path != "" && langdetect.IsGenerated(path, content) {
		outcome.SkipReason = ErrGeneratedFile
		logger.Debug("skipping file", logging.FieldPath, path, logging.FieldReason, outcome.SkipReason)
		return outcome
	}

	detect := r.Detect
	if detect == nil {
		detect = langdetect.DetectFile
	}

	outcome.Language = detect(path, content)
	outcome.Settings = cfg.Resolve(outcome.Language)
	if err := validateSettings(outcome.Settings); err != nil {
		outcome.Error = fmt.Errorf("%s: %w", outcome.Language, err)
		return outcome
	}

	outcome.Snapshot = snapshot.New(path, content)
	outcome.LineCount = outcome.Snapshot.LineCount()
	outcome.Ranges = fold.ComputeRanges(outcome.Snapshot, outcome.Settings.TabSize, outcome.Settings.MinimumRangeSize)

	logger.Debug("computed ranges",
		logging.FieldPath, path,
		logging.FieldLanguage, outcome.Language,
		logging.FieldTabSize, outcome.Settings.TabSize,
		logging.FieldLines, outcome.LineCount,
		logging.FieldRanges, len(outcome.Ranges),
	)

	return outcome
}

func validateSettings(settings config.Settings) error {
	if err := fold.ValidateTabSize(settings.TabSize); err != nil {
		return err
	}
	return fold.ValidateMinimumRangeSize(settings.MinimumRangeSize)
}
