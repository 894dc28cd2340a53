package pooltop

import (
	"testing"

	"github.com/prometheus/common/model"
)

func TestSnap(t *testing.T) {
	t.Parallel()
	line := []Point{{X: 0, Y: 5}, {X: 100, Y: 10}}
	w := Window{Start: 0, End: 1000}

	tests := []struct {
		name string
		at   int64
		want float64
	}{
		{"nearest later point", 80, 10},
		{"nearest earlier point", 20, 5},
		{"tie goes to earlier point", 50, 5},
		{"after last point", 900, 10},
	}
	for _, tt := range tests {
		got := Snap([]BlockEvent{{Timestamp: model.Time(tt.at)}}, line, w)
		if len(got) != 1 {
			t.Fatalf("%s: unexpected event count: got %d want 1", tt.name, len(got))
		}
		if got[0].Y != tt.want {
			t.Fatalf("%s: unexpected y: got %v want %v", tt.name, got[0].Y, tt.want)
		}
	}
}

func TestSnapEmptyLine(t *testing.T) {
	t.Parallel()
	got := Snap([]BlockEvent{{Timestamp: 10, Height: 7}}, nil, Window{Start: 0, End: 100})
	if len(got) != 1 || got[0].Y != 0 {
		t.Fatalf("unexpected events: got %+v", got)
	}
	if got[0].Height != 7 {
		t.Fatalf("unexpected height: got %d want 7", got[0].Height)
	}
}

func TestSnapDropsEventsBeforeWindow(t *testing.T) {
	t.Parallel()
	events := []BlockEvent{{Timestamp: 5}, {Timestamp: 50}}
	got := Snap(events, []Point{{X: 50, Y: 1}}, Window{Start: 10, End: 100})
	if len(got) != 1 || got[0].X != 50 {
		t.Fatalf("unexpected events: got %+v", got)
	}
}

func TestSnapEffort(t *testing.T) {
	t.Parallel()
	events := []BlockEvent{{Timestamp: 10, SharesSubmitted: 12345, BlockDifficulty: 10000}}
	got := Snap(events, nil, Window{Start: 0, End: 100})
	if got[0].EffortPercent != 123 {
		t.Fatalf("unexpected effort: got %v want 123", got[0].EffortPercent)
	}
	if e := BlockEffort(1, 0); e != 0 {
		t.Fatalf("unexpected effort without difficulty: got %v want 0", e)
	}
}
