// Package analysis turns a runner result into report views shared by the
// structured renderers.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/indentfold/pkg/fold"
	"github.com/yaklabco/indentfold/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func RelativePath(absPath, workDir string) string {
	if workDir == "" || absPath == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version: ReportVersion,
		Files:   []FileAnalysis{},
	}
	if !opts.OmitTimestamp {
		report.Timestamp = time.Now()
	}

	if result == nil {
		return report
	}

	languages := make(map[string]*LanguageAnalysis)

	for _, file := range result.Files {
		fa := analyzeFile(file, opts)
		report.Totals.Files++

		switch {
		case fa.Error != "":
			report.Totals.FilesErrored++
		case fa.Skipped != "":
			report.Totals.FilesSkipped++
		default:
			report.Totals.FilesScanned++
			report.Totals.Lines += fa.Lines
			report.Totals.Ranges += fa.RangeCount
			report.Totals.MaxDepth = max(report.Totals.MaxDepth, fa.MaxDepth)
			if fa.RangeCount > 0 {
				report.Totals.FilesWithRanges++
			}

			la, ok := languages[fa.Language]
			if !ok {
				la = &LanguageAnalysis{Language: fa.Language}
				languages[fa.Language] = la
			}
			la.Files++
			la.Ranges += fa.RangeCount
			la.Lines += fa.Lines
		}

		report.Files = append(report.Files, fa)
	}

	sortFileAnalysis(report.Files, opts.SortBy, opts.SortDesc)

	if opts.IncludeByLanguage {
		report.ByLanguage = make([]LanguageAnalysis, 0, len(languages))
		for _, la := range languages {
			report.ByLanguage = append(report.ByLanguage, *la)
		}
		sortLanguageAnalysis(report.ByLanguage, opts.SortBy, opts.SortDesc)
	}

	return report
}

func analyzeFile(file runner.FileOutcome, opts Options) FileAnalysis {
	fa := FileAnalysis{
		Path: RelativePath(file.Path, opts.WorkingDir),
	}

	if file.Error != nil {
		fa.Error = file.Error.Error()
		return fa
	}
	if file.SkipReason != nil {
		fa.Skipped = file.SkipReason.Error()
		return fa
	}

	fa.Language = file.Language
	fa.TabSize = file.Settings.TabSize
	fa.MinimumRangeSize = file.Settings.MinimumRangeSize
	fa.Lines = file.LineCount
	fa.RangeCount = len(file.Ranges)
	fa.MaxDepth = NestingDepth(file.Ranges)
	if opts.IncludeRanges {
		fa.Ranges = file.Ranges
		if fa.Ranges == nil {
			fa.Ranges = []fold.Range{}
		}
	}

	return fa
}

// NestingDepth returns the deepest chain of ranges contained in one
// another. Indentation ranges either nest or are disjoint, so a stack of
// open end lines is enough.
func NestingDepth(ranges []fold.Range) int {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b fold.Range) int {
		if c := cmp.Compare(a.StartLineNumber, b.StartLineNumber); c != 0 {
			return c
		}
		return cmp.Compare(b.EndLineNumber, a.EndLineNumber)
	})

	var (
		ends  []int
		depth int
	)
	for _, r := range sorted {
		for len(ends) > 0 && ends[len(ends)-1] < r.StartLineNumber {
			ends = ends[:len(ends)-1]
		}
		ends = append(ends, r.EndLineNumber)
		depth = max(depth, len(ends))
	}

	return depth
}

func sortLanguageAnalysis(langs []LanguageAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(langs, func(left, right LanguageAnalysis) int {
		if sortBy == SortByCount || sortBy == SortByDepth {
			result := cmp.Compare(left.Ranges, right.Ranges)
			if desc {
				result = -result
			}
			if result != 0 {
				return result
			}
		}
		return cmp.Compare(left.Language, right.Language)
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	if sortBy == "" {
		return
	}

	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Path, right.Path)
		case SortByDepth:
			result = cmp.Compare(left.MaxDepth, right.MaxDepth)
			if result == 0 {
				result = cmp.Compare(left.RangeCount, right.RangeCount)
			}
		default: // SortByCount
			result = cmp.Compare(left.RangeCount, right.RangeCount)
		}
		if desc {
			result = -result
		}
		return result
	})
}
