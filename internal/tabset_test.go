package pooltop

import (
	"strings"
	"testing"
	"time"
)

func TestTabSetNavigation(t *testing.T) {
	t.Parallel()
	ts := NewTabSet(DefaultTabs()...)
	n := len(DefaultTabs())

	ts.PrevTab()
	if got := ts.Selected(); got != n-1 {
		t.Fatalf("unexpected tab after wrap: got %d want %d", got, n-1)
	}
	ts.NextTab()
	if got := ts.Selected(); got != 0 {
		t.Fatalf("unexpected tab after wrap: got %d want 0", got)
	}
	ts.SelectTab(99)
	if got := ts.Selected(); got != 0 {
		t.Fatalf("out of range select changed tab: got %d", got)
	}
}

func TestTabSetRender(t *testing.T) {
	t.Parallel()
	ts := NewTabSet(DefaultTabs()...).SetSize(120, 20)
	now := time.Unix(1_700_000_000, 0)

	out := ts.Render(Snapshot{}, now)
	if !strings.Contains(out, SIGN_IN_HINT) {
		t.Fatalf("miner tab without address should ask to sign in:\n%s", out)
	}

	ts.SelectTab(3)
	out = ts.Render(Snapshot{}, now)
	if !strings.Contains(out, "No data yet") {
		t.Fatalf("empty pool tab should show placeholder:\n%s", out)
	}

	s := Snapshot{Pool: PoolState{Blocks: []PoolBlock{{Height: 3000000, Valid: true, Unlocked: true}}}}
	out = ts.Render(s, now)
	if !strings.Contains(out, "Confirmed") || !strings.Contains(out, "3,000,000") {
		t.Fatalf("pool block missing from table:\n%s", out)
	}
}
