package pooltop

import (
	"slices"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	w := Last24h(now)

	samples := []HashrateSample{
		{Ts: now.Add(-time.Hour).UnixMilli(), Hs: 3},
		{Ts: now.Add(-3 * time.Hour).Unix(), Hs: 1},
		{Ts: now.Add(-25 * time.Hour).Unix(), Hs: 99},
		{Ts: now.Add(-2 * time.Hour).Unix(), Hs: 2},
	}
	input := slices.Clone(samples)

	points := Normalize(samples, w)
	if len(points) != 3 {
		t.Fatalf("unexpected point count: got %d want 3", len(points))
	}
	for i, want := range []float64{1, 2, 3} {
		if points[i].Y != want {
			t.Fatalf("unexpected point %d: got %v want %v", i, points[i].Y, want)
		}
	}
	if points[0].X != EpochMillis(now.Add(-3*time.Hour).Unix()) {
		t.Fatalf("unexpected x: got %d", points[0].X)
	}
	if !slices.Equal(samples, input) {
		t.Fatalf("input was modified: got %v want %v", samples, input)
	}
}

func TestNormalizeKeepsWindowStart(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	w := Last24h(now)

	points := Normalize([]HashrateSample{{Ts: int64(w.Start), Hs: 1}}, w)
	if len(points) != 1 {
		t.Fatalf("unexpected point count: got %d want 1", len(points))
	}
}

func TestNormalizeEmpty(t *testing.T) {
	t.Parallel()
	points := Normalize(nil, Last24h(time.Now()))
	if points == nil || len(points) != 0 {
		t.Fatalf("unexpected points: got %#v want empty slice", points)
	}
}

func TestNormalizeStableOnEqualTimestamps(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	ts := now.Add(-time.Hour).Unix()
	points := Normalize([]HashrateSample{{Ts: ts, Hs: 1}, {Ts: ts, Hs: 2}}, Last24h(now))
	if points[0].Y != 1 || points[1].Y != 2 {
		t.Fatalf("unexpected order: got %v", points)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	w := Last24h(now)
	first := Normalize([]HashrateSample{
		{Ts: now.Add(-time.Hour).UnixMilli(), Hs: 2},
		{Ts: now.Add(-2 * time.Hour).UnixMilli(), Hs: 1},
	}, w)

	again := make([]HashrateSample, len(first))
	for i, p := range first {
		again[i] = HashrateSample{Ts: int64(p.X), Hs: p.Y}
	}
	if second := Normalize(again, w); !slices.Equal(first, second) {
		t.Fatalf("normalize is not idempotent: got %v want %v", second, first)
	}
}
