package pooltop

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"
)

func newTestDashboard(t *testing.T, state *State) dashboardModel {
	t.Helper()
	r := NewRefresher(nil, nil, &Cache{}, state, nil, zaptest.NewLogger(t))
	m := NewDashboard(context.Background(), r, time.Minute, zaptest.NewLogger(t))
	m.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return *m
}

func TestDashboardView(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	state := NewState("")
	state.update(func(s *Snapshot) {
		s.Pool.Chart = testPoolChart(now)
		s.LastRefresh = now.Add(-90 * time.Second)
	})
	m := newTestDashboard(t, state)

	if got := m.View(); got != "Initializing..." {
		t.Fatalf("unexpected view before size: %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 150, Height: 50})
	view := next.View()
	for _, want := range []string{"pooltop", "updated 1 minute ago", "Network", "Pool Hashrate", SIGN_IN_HINT, "r=Refresh"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view is missing %q:\n%s", want, view)
		}
	}
	if _, ok := m.poolChart.Current().(*TermChart); !ok {
		t.Fatalf("pool chart was not rendered on resize")
	}
}

func TestDashboardKeys(t *testing.T) {
	t.Parallel()
	m := newTestDashboard(t, NewState(""))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	if got := next.(dashboardModel).tabs.Selected(); got != 1 {
		t.Fatalf("unexpected tab: got %d want 1", got)
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	if got := next.(dashboardModel).tabs.Selected(); got != 0 {
		t.Fatalf("unexpected tab: got %d want 0", got)
	}

	_, cmd := next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit key did not quit")
	}
}
