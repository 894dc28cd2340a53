package pooltop

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one table view of the dashboard. Rows builds the table body from
// the current snapshot.
type Tab struct {
	Title       string
	Headers     []string
	Rows        func(s Snapshot, now time.Time) [][]string
	NeedAddress bool
}

const SIGN_IN_HINT = "Run `pooltop login ADDRESS` to track a wallet"

// DefaultTabs returns the miner tables followed by the pool tables
func DefaultTabs() []Tab {
	return []Tab{
		{
			Title:       "Workers",
			Headers:     WorkerHeaders,
			NeedAddress: true,
			Rows: func(s Snapshot, now time.Time) [][]string {
				return WorkerRows(s.Miner.Workers, now)
			},
		},
		{
			Title:       "Payments",
			Headers:     MinerPaymentHeaders,
			NeedAddress: true,
			Rows: func(s Snapshot, _ time.Time) [][]string {
				return MinerPaymentRows(s.Miner.Payments)
			},
		},
		{
			Title:       "Block Rewards",
			Headers:     BlockPaymentHeaders,
			NeedAddress: true,
			Rows: func(s Snapshot, _ time.Time) [][]string {
				return BlockPaymentRows(s.Miner.BlockPayments)
			},
		},
		{
			Title:   "Pool Blocks",
			Headers: PoolBlockHeaders,
			Rows: func(s Snapshot, _ time.Time) [][]string {
				return PoolBlockRows(s.Pool.Blocks)
			},
		},
		{
			Title:   "Pool Payments",
			Headers: PoolPaymentHeaders,
			Rows: func(s Snapshot, _ time.Time) [][]string {
				return PoolPaymentRows(s.Pool.Payments)
			},
		},
	}
}

// TabSet manages the table tabs and their navigation
type TabSet struct {
	tabs        []Tab
	selectedTab int
	width       int
	height      int
}

func NewTabSet(tabs ...Tab) *TabSet {
	return &TabSet{
		tabs:   tabs,
		width:  40,
		height: 10,
	}
}

func (ts *TabSet) SetSize(width, height int) *TabSet {
	ts.width = width
	ts.height = height
	return ts
}

// SelectTab changes the active tab, ignoring out of range indexes
func (ts *TabSet) SelectTab(index int) *TabSet {
	if index >= 0 && index < len(ts.tabs) {
		ts.selectedTab = index
	}
	return ts
}

// NextTab moves to the next tab (wraps around)
func (ts *TabSet) NextTab() *TabSet {
	if len(ts.tabs) > 0 {
		ts.selectedTab = (ts.selectedTab + 1) % len(ts.tabs)
	}
	return ts
}

// PrevTab moves to the previous tab (wraps around)
func (ts *TabSet) PrevTab() *TabSet {
	if len(ts.tabs) > 0 {
		ts.selectedTab = (ts.selectedTab - 1 + len(ts.tabs)) % len(ts.tabs)
	}
	return ts
}

func (ts *TabSet) Selected() int {
	return ts.selectedTab
}

// Render renders the tab bar and the active table
func (ts *TabSet) Render(s Snapshot, now time.Time) string {
	if len(ts.tabs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(ts.renderTabs())
	b.WriteString("\n")

	tab := ts.tabs[ts.selectedTab]
	if tab.NeedAddress && s.Address == "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(SIGN_IN_HINT))
		return b.String()
	}

	// tab bar is 3 lines high
	t := NewWrapTable().
		Headers(tab.Headers...).
		Rows(tab.Rows(s, now)...).
		MaxHeight(ts.height - 3).
		MaxWidth(ts.width).
		Empty("No data yet")
	b.WriteString(t.Render())

	return b.String()
}

func (ts *TabSet) renderTabs() string {
	activeTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("208")).
		Background(lipgloss.Color("235")).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("208"))

	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("236"))

	var renderedTabs []string
	for i, tab := range ts.tabs {
		if i == ts.selectedTab {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab.Title))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab.Title))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}
