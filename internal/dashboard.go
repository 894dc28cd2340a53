package pooltop

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"
	"go.uber.org/zap"
)

const (
	statsPaneHeight = 12
	headerHeight    = 1
	helpBarHeight   = 1
)

type tickMsg time.Time

type refreshTickMsg time.Time

type refreshDoneMsg struct {
	err error
}

type dashboardModel struct {
	ctx        context.Context
	refresher  *Refresher
	state      *State
	interval   time.Duration
	tabs       *TabSet
	poolChart  *ChartSlot
	minerChart *ChartSlot
	log        *zap.Logger
	now        func() time.Time
	width      int
	height     int
	ready      bool
	refreshing bool
}

// tickCmd keeps the "updated N ago" text current
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func NewDashboard(ctx context.Context, r *Refresher, interval time.Duration, log *zap.Logger) *dashboardModel {
	return &dashboardModel{
		ctx:        ctx,
		refresher:  r,
		state:      r.State(),
		interval:   interval,
		tabs:       NewTabSet(DefaultTabs()...),
		poolChart:  &ChartSlot{},
		minerChart: &ChartSlot{},
		log:        log,
		now:        time.Now,
	}
}

func (m dashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.refresher.Cycle(m.ctx)}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd(), refreshTickCmd(m.interval))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.poolChart.Release()
			m.minerChart.Release()
			return m, tea.Quit
		case "r":
			m.refresher.Invalidate()
			m.refreshing = true
			return m, m.refreshCmd()
		case "]", "l", "tab":
			m.tabs.NextTab()
		case "[", "h", "shift+tab":
			m.tabs.PrevTab()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.redrawCharts()

	case refreshDoneMsg:
		m.refreshing = false
		m.redrawCharts()

	case refreshTickMsg:
		m.refreshing = true
		return m, tea.Batch(m.refreshCmd(), refreshTickCmd(m.interval))

	case tickMsg:
		return m, tickCmd()
	}

	return m, nil
}

// layout splits the height left under the stats row between the chart row
// and the table pane
func (m dashboardModel) layout() (chartHeight, tableHeight int) {
	rest := m.height - headerHeight - helpBarHeight - statsPaneHeight
	chartHeight = max(rest/2, 6)
	tableHeight = max(rest-chartHeight, 6)
	return chartHeight, tableHeight
}

// chartSize is the canvas size inside a chart pane: border (2) plus the
// title and legend lines
func (m dashboardModel) chartSize() (int, int) {
	chartHeight, _ := m.layout()
	return Split(m.width, 2)[1] - 2, chartHeight - 4
}

func (m dashboardModel) redrawCharts() {
	if !m.ready {
		return
	}
	s := m.state.Snapshot()
	w, h := m.chartSize()
	m.drawChart(m.poolChart, s.Pool.Chart, w, h)
	if s.Address == "" {
		m.minerChart.Release()
		return
	}
	m.drawChart(m.minerChart, s.Miner.Chart, w, h)
}

func (m dashboardModel) drawChart(slot *ChartSlot, spec ChartSpec, w, h int) {
	if spec.IsEmpty() || w <= 0 || h <= 0 {
		slot.Release()
		return
	}
	if _, err := slot.Replace(TermRenderer{Width: w, Height: h}, spec); err != nil {
		m.log.Debug("chart render failed", zap.String("chart", spec.Title), zap.Error(err))
	}
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	s := m.state.Snapshot()
	now := m.now()
	cols := Split(m.width, 3)
	chartCols := Split(m.width, 2)
	chartHeight, tableHeight := m.layout()

	pool := SummarizePool(s)
	statsRow := []Pane{
		StatPane("Network", pool.NetworkRows(now), cols[0]-2, statsPaneHeight-2),
		StatPane("Pool", pool.PoolRows(), cols[1]-2, statsPaneHeight-2),
	}
	if s.Address != "" {
		statsRow = append(statsRow, StatPane("Miner", SummarizeMiner(s).Rows(), cols[2]-2, statsPaneHeight-2))
	} else {
		statsRow = append(statsRow, NewPane("Miner", cols[2]-2, statsPaneHeight-2).SetContent(hintStyle.Render(SIGN_IN_HINT)))
	}

	minerChart := hintStyle.Render(SIGN_IN_HINT)
	if s.Address != "" {
		minerChart = chartView(m.minerChart, s.Miner.Chart)
	}
	chartRow := []Pane{
		NewPane(s.Pool.Chart.titleOr("Pool Hashrate"), chartCols[0]-2, chartHeight-2).
			SetContent(chartView(m.poolChart, s.Pool.Chart)),
		NewPane(s.Miner.Chart.titleOr("Miner Hashrate"), chartCols[1]-2, chartHeight-2).
			SetContent(minerChart),
	}

	m.tabs.SetSize(m.width-2, tableHeight-2)
	tables := NewPane("", m.width-2, tableHeight-2).
		SetContent(m.tabs.Render(s, now)).
		SetFocused(true)

	body := NewGrid().
		AddRow(statsRow...).
		AddRow(chartRow...).
		AddRow(tables).
		Render()

	return m.renderHeader(s, now) + "\n" + body + "\n" + m.renderHelpBar()
}

var (
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

func (m dashboardModel) renderHeader(s Snapshot, now time.Time) string {
	status := "loading..."
	if !s.LastRefresh.IsZero() {
		ago := now.Sub(s.LastRefresh).Truncate(time.Second)
		status = "updated " + durafmt.Parse(ago).LimitFirstN(1).String() + " ago"
		if ago < time.Second {
			status = "updated just now"
		}
	}
	if m.refreshing {
		status += " (refreshing)"
	}

	title := headerStyle.Render("pooltop")
	if s.Address != "" {
		title += hintStyle.Render("  " + shortHash(s.Address))
	}
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	return title + strings.Repeat(" ", gap) + hintStyle.Render(status)
}

func (m dashboardModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Background(lipgloss.Color("235")).
		Width(m.width).
		Align(lipgloss.Center).
		Render("r=Refresh  []=Switch Tabs  q=Quit")
}

// chartView returns the rendered chart followed by its legend
func chartView(slot *ChartSlot, spec ChartSpec) string {
	chart, ok := slot.Current().(*TermChart)
	if !ok || spec.IsEmpty() {
		return hintStyle.Render("Waiting for data...")
	}
	return chart.View() + "\n" + legend(spec)
}

func legend(spec ChartSpec) string {
	items := make([]string, 0, len(spec.Series))
	for _, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Style.Color)).Render("■")
		items = append(items, swatch+" "+s.Name)
	}
	return strings.Join(items, "  ")
}

// Dashboard runs the interactive dashboard until the user quits or ctx is
// cancelled
func Dashboard(ctx context.Context, r *Refresher, interval time.Duration, log *zap.Logger) error {
	m := NewDashboard(ctx, r, interval, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
