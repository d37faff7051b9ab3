package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/term"

	"github.com/yaklabco/indentfold/internal/ui/pretty"
	"github.com/yaklabco/indentfold/pkg/analysis"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// fileTableNumericCols are the right-aligned columns of the file table.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fileTableNumericCols = map[int]bool{2: true, 3: true, 4: true, 5: true}

// TableRenderer formats one row per scanned file.
type TableRenderer struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TableRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  getTerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report.Totals.FilesScanned == 0 {
		r.renderProblems(report.Files)
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files scanned."))
		}
		return nil
	}

	headers := []string{"File", "Language", "Tab", "Lines", "Ranges", "Depth"}
	rows := make([][]string, 0, report.Totals.FilesScanned)
	for _, file := range report.Files {
		if !file.Scanned() {
			continue
		}
		rows = append(rows, []string{
			file.Path,
			file.Language,
			strconv.Itoa(file.TabSize),
			strconv.Itoa(file.Lines),
			strconv.Itoa(file.RangeCount),
			strconv.Itoa(file.MaxDepth),
		})
	}

	fmt.Fprint(r.bw, r.styles.RenderTable(headers, rows, fileTableNumericCols, r.tableWidth(rows)))
	r.renderProblems(report.Files)

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, formatTotals(r.styles, report.Totals))
	}

	return nil
}

// renderProblems lists errored files, plus skipped files when requested.
func (r *TableRenderer) renderProblems(files []analysis.FileAnalysis) {
	for _, file := range files {
		switch {
		case file.Error != "":
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Error.Render("error: "+file.Error))
		case file.Skipped != "" && r.opts.ShowSkipped:
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Skipped.Render("skipped: "+file.Skipped))
		}
	}
}

// tableWidth caps long tables at the terminal width and lets short ones
// size to their content.
func (r *TableRenderer) tableWidth(rows [][]string) int {
	longest := 0
	for _, row := range rows {
		longest = max(longest, len(row[0]))
	}
	if longest+fileTablePadding > r.width {
		return r.width
	}
	return 0
}

// fileTablePadding approximates the width taken by the non-path columns.
const fileTablePadding = 50

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
