package pooltop

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// WrapTable wraps lipgloss table to support height-based wrapping.
// When data exceeds maxHeight, it creates multiple tables side-by-side
type WrapTable struct {
	headers     []string
	rows        [][]string
	maxHeight   int
	maxWidth    int
	empty       string
	border      lipgloss.Border
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
}

func NewWrapTable() *WrapTable {
	return &WrapTable{
		border:      lipgloss.NormalBorder(),
		borderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		headerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true).Padding(0, 1),
	}
}

func (wt *WrapTable) Headers(headers ...string) *WrapTable {
	wt.headers = headers
	return wt
}

func (wt *WrapTable) Rows(rows ...[]string) *WrapTable {
	wt.rows = rows
	return wt
}

func (wt *WrapTable) MaxHeight(height int) *WrapTable {
	wt.maxHeight = height
	return wt
}

func (wt *WrapTable) MaxWidth(width int) *WrapTable {
	wt.maxWidth = width
	return wt
}

// Empty sets the text rendered instead of a table when there are no rows
func (wt *WrapTable) Empty(msg string) *WrapTable {
	wt.empty = msg
	return wt
}

// Render renders the table with wrapping if needed
func (wt *WrapTable) Render() string {
	if len(wt.rows) == 0 {
		return wt.empty
	}

	// header (1) + top, bottom and header separator borders (3)
	rowsPerTable := wt.maxHeight - 4
	if rowsPerTable < 1 {
		rowsPerTable = 1
	}

	if len(wt.rows) <= rowsPerTable {
		t := wt.table(wt.rows)
		if wt.maxWidth > 0 {
			t = t.Width(wt.maxWidth)
		}
		return t.String()
	}

	var tables []string
	for i := 0; i < len(wt.rows); i += rowsPerTable {
		end := min(i+rowsPerTable, len(wt.rows))
		tables = append(tables, wt.table(wt.rows[i:end]).String())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tables...)
}

func (wt *WrapTable) table(rows [][]string) *table.Table {
	return table.New().
		Border(wt.border).
		BorderStyle(wt.borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return wt.headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(wt.headers...).
		Rows(rows...)
}

// String is a convenience method that calls Render
func (wt *WrapTable) String() string {
	return wt.Render()
}
