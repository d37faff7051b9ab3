package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/indentfold/pkg/fold"
)

// FormatFileHeader formats the heading line for one file's ranges.
// Example: "src/app.py (python, tab 4): 3 ranges".
func (s *Styles) FormatFileHeader(path, language string, tabSize, rangeCount int) string {
	return fmt.Sprintf("%s %s: %s",
		s.FilePath.Render(path),
		s.Dim.Render("("+s.Language.Render(language)+", tab "+strconv.Itoa(tabSize)+")"),
		Plural(rangeCount, "range", "ranges"),
	)
}

// FormatRange formats a single range line. When sourceLine is non-empty it
// is shown after the range as the text that stays visible when folded.
func (s *Styles) FormatRange(r fold.Range, sourceLine string) string {
	var builder strings.Builder

	builder.WriteString("  ")
	builder.WriteString(s.Range.Render(fmt.Sprintf("%d-%d", r.StartLineNumber, r.EndLineNumber)))
	builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%s)", Plural(r.Lines(), "line", "lines"))))

	if sourceLine != "" {
		builder.WriteString("  ")
		builder.WriteString(s.SourceLine.Render(strings.TrimSpace(sourceLine)))
	}

	builder.WriteString("\n")
	return builder.String()
}

// FormatIndentLine formats one line of an indentation listing:
// the line number, its measured indent ("-" for blank) and the text.
func (s *Styles) FormatIndentLine(line, indent, lineWidth int, text string) string {
	level := s.Blank.Render(fmt.Sprintf("%3s", "-"))
	if indent != fold.BlankLine {
		level = s.Indent.Render(fmt.Sprintf("%3d", indent))
	}

	return fmt.Sprintf("%s %s  %s\n",
		s.Dim.Render(fmt.Sprintf("%*d", lineWidth, line)),
		level,
		s.SourceLine.Render(text),
	)
}

// FormatSkipped formats a file that was not scanned.
func (s *Styles) FormatSkipped(path string, reason error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Skipped.Render("skipped: "+reason.Error()))
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render("error: "+err.Error()))
}

// Plural formats a count with the singular or plural noun.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
