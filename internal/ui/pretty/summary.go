package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/indentfold/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 ranges in 3 files (5 files scanned, 1 skipped, 1 error)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var head string
	if stats.RangesTotal == 0 {
		head = s.Dim.Render("No folding ranges")
	} else {
		head = fmt.Sprintf("%s in %s",
			s.Success.Render(Plural(stats.RangesTotal, "range", "ranges")),
			Plural(stats.FilesWithRanges, "file", "files"),
		)
	}

	details := []string{Plural(stats.FilesProcessed, "file", "files") + " scanned"}
	if stats.FilesSkipped > 0 {
		details = append(details, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		details = append(details, s.Error.Render(Plural(stats.FilesErrored, "error", "errors")))
	}

	return head + s.Dim.Render(" (") + strings.Join(details, s.Dim.Render(", ")) + s.Dim.Render(")") + "\n"
}

// FormatSummary formats run statistics as a summary block with a
// per-language breakdown, busiest language first.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	writeRow := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	writeRow("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	writeRow("Files scanned", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesSkipped > 0 {
		writeRow("Files skipped", s.Skipped.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		writeRow("Files errored", s.Error.Render(strconv.Itoa(stats.FilesErrored)))
	}
	writeRow("Files with ranges", s.SummaryValue.Render(strconv.Itoa(stats.FilesWithRanges)))

	builder.WriteString("\n")
	writeRow("Total ranges", s.SummaryValue.Render(strconv.Itoa(stats.RangesTotal)))

	for _, lang := range languagesByCount(stats.RangesByLanguage) {
		builder.WriteString(fmt.Sprintf("    %-17s%s\n",
			s.Language.Render(lang)+":",
			s.SummaryValue.Render(strconv.Itoa(stats.RangesByLanguage[lang])),
		))
	}

	return builder.String()
}

// languagesByCount sorts languages by descending count, then by name.
func languagesByCount(counts map[string]int) []string {
	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}
