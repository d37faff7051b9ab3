package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/indentfold/internal/ui/pretty"
	"github.com/yaklabco/indentfold/pkg/analysis"
)

// defaultTopFiles is how many files the summary table lists by default.
const defaultTopFiles = 10

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if !report.Totals.HasRanges() {
		fmt.Fprintln(r.bw, formatTotals(r.styles, report.Totals))
		return nil
	}

	r.renderLanguageTable(report.ByLanguage)
	fmt.Fprintln(r.bw)
	r.renderFileTable(report.Files)
	fmt.Fprintln(r.bw)
	fmt.Fprintln(r.bw, formatTotals(r.styles, report.Totals))

	return nil
}

func (r *SummaryRenderer) renderLanguageTable(langs []analysis.LanguageAnalysis) {
	if len(langs) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Languages"))

	rows := make([][]string, 0, len(langs))
	for _, lang := range langs {
		rows = append(rows, []string{
			lang.Language,
			strconv.Itoa(lang.Files),
			strconv.Itoa(lang.Lines),
			strconv.Itoa(lang.Ranges),
		})
	}

	fmt.Fprint(r.bw, r.styles.RenderTable(
		[]string{"Language", "Files", "Lines", "Ranges"},
		rows,
		map[int]bool{1: true, 2: true, 3: true},
		0,
	))
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	top := topFiles(files, r.opts.TopFiles)
	if len(top) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files"))

	rows := make([][]string, 0, len(top))
	for _, file := range top {
		rows = append(rows, []string{
			file.Path,
			strconv.Itoa(file.RangeCount),
			strconv.Itoa(file.MaxDepth),
		})
	}

	fmt.Fprint(r.bw, r.styles.RenderTable(
		[]string{"File", "Ranges", "Depth"},
		rows,
		map[int]bool{1: true, 2: true},
		0,
	))
}

// topFiles returns up to limit files with ranges, most ranges first.
// A non-positive limit keeps every file.
func topFiles(files []analysis.FileAnalysis, limit int) []analysis.FileAnalysis {
	withRanges := make([]analysis.FileAnalysis, 0, len(files))
	for _, file := range files {
		if file.RangeCount > 0 {
			withRanges = append(withRanges, file)
		}
	}

	slices.SortStableFunc(withRanges, func(a, b analysis.FileAnalysis) int {
		if a.RangeCount != b.RangeCount {
			return b.RangeCount - a.RangeCount
		}
		return strings.Compare(a.Path, b.Path)
	})

	if limit > 0 && len(withRanges) > limit {
		withRanges = withRanges[:limit]
	}
	return withRanges
}

// formatTotals renders the closing "Total:" line shared by table and summary output.
func formatTotals(styles *pretty.Styles, totals analysis.Totals) string {
	parts := []string{
		pretty.Plural(totals.Ranges, "range", "ranges"),
		"in " + pretty.Plural(totals.FilesWithRanges, "file", "files"),
	}

	details := []string{pretty.Plural(totals.FilesScanned, "file", "files") + " scanned"}
	if totals.FilesSkipped > 0 {
		details = append(details, styles.Skipped.Render(fmt.Sprintf("%d skipped", totals.FilesSkipped)))
	}
	if totals.FilesErrored > 0 {
		details = append(details, styles.Error.Render(pretty.Plural(totals.FilesErrored, "error", "errors")))
	}
	if totals.MaxDepth > 0 {
		details = append(details, fmt.Sprintf("max depth %d", totals.MaxDepth))
	}

	return styles.Bold.Render("Total:") + " " + strings.Join(parts, " ") + styles.Dim.Render(" ("+strings.Join(details, ", ")+")")
}
