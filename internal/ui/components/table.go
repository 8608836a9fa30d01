package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// MaxCellWidth is the cell cap used for summary tables.
const MaxCellWidth = 40

// RenderTable renders rows under headers with a rounded border. Rows shorter
// than headers are padded with empty cells. A positive maxWidth truncates
// longer cells; zero prints them whole.
func RenderTable(headers []string, rows [][]string, maxWidth int) string {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, max(len(row), len(headers)))
		for j, c := range row {
			if maxWidth > 0 {
				c = ansi.Truncate(c, maxWidth, "…")
			}
			cells[j] = c
		}
		padded[i] = cells
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorderStyle).
		Headers(headers...).
		Rows(padded...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}
			return styles.TableCellStyle
		}).
		Render()
}
