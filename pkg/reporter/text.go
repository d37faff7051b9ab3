package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/indentfold/internal/ui/pretty"
	"github.com/yaklabco/indentfold/pkg/analysis"
	"github.com/yaklabco/indentfold/pkg/fold"
	"github.com/yaklabco/indentfold/pkg/runner"
	"github.com/yaklabco/indentfold/pkg/snapshot"
)

// TextReporter formats results as styled terminal output.
// It reads the runner result directly so range start lines can be quoted
// from each file's snapshot.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to scan."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		total += r.reportFile(file)
	}

	switch {
	case r.opts.DetailedSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	case r.opts.ShowSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's ranges and returns how many were written.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := analysis.RelativePath(file.Path, r.opts.WorkingDir)

	switch {
	case file.Error != nil:
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return 0
	case file.Skipped():
		if r.opts.ShowSkipped {
			fmt.Fprint(r.bw, r.styles.FormatSkipped(path, file.SkipReason))
		}
		return 0
	case len(file.Ranges) == 0:
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Language, file.Settings.TabSize, len(file.Ranges)))

	for _, rng := range DisplayOrder(file.Ranges) {
		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = getSourceLine(file.Snapshot, rng.StartLineNumber)
		}
		fmt.Fprint(r.bw, r.styles.FormatRange(rng, sourceLine))
	}

	// Blank line between files
	fmt.Fprintln(r.bw)

	return len(file.Ranges)
}

// DisplayOrder returns ranges sorted top to bottom, outer ranges before the
// ranges they contain. The input is left unchanged.
func DisplayOrder(ranges []fold.Range) []fold.Range {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b fold.Range) int {
		if a.StartLineNumber != b.StartLineNumber {
			return a.StartLineNumber - b.StartLineNumber
		}
		return b.EndLineNumber - a.EndLineNumber
	})
	return sorted
}

// getSourceLine extracts a line from a file snapshot using its
// pre-computed line index.
func getSourceLine(snap *snapshot.FileSnapshot, lineNum int) string {
	if snap == nil {
		return ""
	}
	return snap.LineText(lineNum)
}
