// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Skipped lipgloss.Style

	// Range listing components
	FilePath   lipgloss.Style
	Range      lipgloss.Style
	Language   lipgloss.Style
	SourceLine lipgloss.Style
	Indent     lipgloss.Style
	Blank      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
	TableCell   lipgloss.Style
	TableNumber lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Skipped: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Range:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Language:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).TabWidth(lipgloss.NoTabConversion),
		Indent:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Blank:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Padding(0, 1),
		TableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableCell:   lipgloss.NewStyle().Padding(0, 1),
		TableNumber: lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
// Layout-only attributes (padding, alignment) are kept for tables.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:        plain,
		Skipped:      plain,
		FilePath:     plain,
		Range:        plain,
		Language:     plain,
		SourceLine:   plain.TabWidth(lipgloss.NoTabConversion),
		Indent:       plain,
		Blank:        plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		TableHeader:  plain.Padding(0, 1),
		TableBorder:  plain,
		TableCell:    plain.Padding(0, 1),
		TableNumber:  plain.Padding(0, 1).Align(lipgloss.Right),
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
