package pooltop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pane represents a bordered panel in the dashboard.
//
// Example usage:
//
//	pane := NewPane("Network", 40, 8).
//	    SetContent("Height: 3,100,000").
//	    SetFocused(true)
//	fmt.Println(pane.Render())
type Pane struct {
	title       string
	content     string
	width       int
	height      int
	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
	focused     bool
}

var (
	statLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statValueStyle = lipgloss.NewStyle().Bold(true)
)

// NewPane creates a new pane with default styling
func NewPane(title string, width, height int) Pane {
	return Pane{
		title:  title,
		width:  width,
		height: height,
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true),
	}
}

// StatPane renders label/value rows in the given order with the labels
// padded to a common width
func StatPane(title string, rows [][]string, width, height int) Pane {
	labelWidth := 0
	for _, row := range rows {
		if len(row) > 0 {
			labelWidth = max(labelWidth, lipgloss.Width(row[0]))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		label := statLabelStyle.Width(labelWidth + 2).Render(row[0])
		lines = append(lines, label+statValueStyle.Render(row[1]))
	}
	return NewPane(title, width, height).SetContent(strings.Join(lines, "\n"))
}

// SetContent sets the pane content
func (p Pane) SetContent(content string) Pane {
	p.content = content
	return p
}

// SetFocused sets the focus state
func (p Pane) SetFocused(focused bool) Pane {
	p.focused = focused
	if focused {
		p.borderStyle = p.borderStyle.BorderForeground(lipgloss.Color("208"))
	} else {
		p.borderStyle = p.borderStyle.BorderForeground(lipgloss.Color("240"))
	}
	return p
}

// View renders the bordered pane
func (p Pane) View() string {
	var b strings.Builder

	if p.title != "" {
		b.WriteString(p.titleStyle.Render(p.title) + "\n")
	}
	b.WriteString(p.content)

	return p.borderStyle.
		Width(p.width).
		Height(p.height).
		Render(b.String())
}

// Render is a convenience method that calls View()
func (p Pane) Render() string {
	return p.View()
}
