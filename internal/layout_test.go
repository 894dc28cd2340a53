package pooltop

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSplit(t *testing.T) {
	t.Parallel()
	got := Split(10, 3)
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected widths: got %v want %v", got, want)
		}
	}
	if Split(10, 0) != nil {
		t.Fatalf("unexpected widths for zero columns")
	}
}

func TestStatPane(t *testing.T) {
	t.Parallel()
	view := StatPane("Pool", [][]string{{"Hashrate", "1.00 KH/s"}, {"Miners", "3"}}, 30, 4).Render()
	lines := strings.Split(view, "\n")
	if len(lines) != 6 {
		t.Fatalf("unexpected height: got %d want 6\n%s", len(lines), view)
	}
	if w := lipgloss.Width(lines[0]); w != 32 {
		t.Fatalf("unexpected width: got %d want 32", w)
	}
	if !strings.Contains(view, "Hashrate  1.00 KH/s") {
		t.Fatalf("rows are not aligned:\n%s", view)
	}

	hr := strings.Index(view, "Hashrate")
	mi := strings.Index(view, "Miners")
	if hr < 0 || mi < hr {
		t.Fatalf("rows are out of order:\n%s", view)
	}
}

func TestGridSkipsEmptyRows(t *testing.T) {
	t.Parallel()
	g := NewGrid().AddRow().AddRow(NewPane("a", 5, 1), NewPane("b", 5, 1))
	if len(g.rows) != 1 {
		t.Fatalf("unexpected row count: got %d want 1", len(g.rows))
	}
	if !strings.Contains(g.Render(), "a") {
		t.Fatalf("grid lost its pane")
	}
}
