package pretty

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders rows under headers as a bordered table.
// numericCols are right-aligned. A positive width caps the table width.
func (s *Styles) RenderTable(headers []string, rows [][]string, numericCols map[int]bool, width int) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.TableHeader
			case numericCols[col]:
				return s.TableNumber
			default:
				return s.TableCell
			}
		})

	if width > 0 {
		tbl = tbl.Width(width)
	}

	return tbl.Render() + "\n"
}
