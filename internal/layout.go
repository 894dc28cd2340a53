package pooltop

import (
	"github.com/charmbracelet/lipgloss"
)

// Horizontal renders panes side by side
func Horizontal(panes ...Pane) string {
	if len(panes) == 0 {
		return ""
	}

	views := make([]string, len(panes))
	for i, pane := range panes {
		views[i] = pane.Render()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// GridLayout renders rows of panes stacked vertically
type GridLayout struct {
	rows [][]Pane
}

func NewGrid() *GridLayout {
	return &GridLayout{}
}

// AddRow adds a row of panes to the grid. Empty rows are ignored.
func (g *GridLayout) AddRow(panes ...Pane) *GridLayout {
	if len(panes) > 0 {
		g.rows = append(g.rows, panes)
	}
	return g
}

func (g *GridLayout) Render() string {
	if len(g.rows) == 0 {
		return ""
	}

	rowViews := make([]string, len(g.rows))
	for i, row := range g.rows {
		rowViews[i] = Horizontal(row...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rowViews...)
}

// Split divides total into n widths that add up to total, giving the
// remainder to the leftmost columns
func Split(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
		if i < total%n {
			widths[i]++
		}
	}
	return widths
}
