package pooltop

import (
	"testing"
	"time"
)

func sampleAt(now time.Time, ago time.Duration, hs float64) HashrateSample {
	return HashrateSample{Ts: now.Add(-ago).Unix(), Hs: hs}
}

func TestBuildPoolChart(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	samples := []HashrateSample{
		sampleAt(now, 2*time.Hour, 1000),
		sampleAt(now, time.Hour, 2000),
	}
	blocks := []BlockEvent{
		{Timestamp: EpochMillis(now.Add(-61 * time.Minute).Unix()), Height: 100, SharesSubmitted: 150, BlockDifficulty: 100},
		{Timestamp: EpochMillis(now.Add(-48 * time.Hour).Unix()), Height: 90},
	}

	spec := BuildPoolChart(samples, blocks, now)
	if len(spec.Series) != 2 {
		t.Fatalf("unexpected series count: got %d want 2", len(spec.Series))
	}

	line, ok := spec.SeriesByName("Hashrate")
	if !ok || line.Kind != SeriesLine || len(line.Points) != 2 {
		t.Fatalf("unexpected hashrate series: %+v", line)
	}
	if !line.Style.Fill || line.Style.Color != "#F26822" {
		t.Fatalf("unexpected hashrate style: %+v", line.Style)
	}

	scatter, ok := spec.SeriesByName("Blocks")
	if !ok || scatter.Kind != SeriesScatter {
		t.Fatalf("unexpected blocks series: %+v", scatter)
	}
	if len(scatter.Points) != 1 {
		t.Fatalf("unexpected block count: got %d want 1", len(scatter.Points))
	}
	if scatter.Points[0].Y != 2000 {
		t.Fatalf("unexpected block y: got %v want 2000", scatter.Points[0].Y)
	}
	if scatter.Style.PointStyle != MarkerDiamond || scatter.Style.PointRadius != 6 {
		t.Fatalf("unexpected block style: %+v", scatter.Style)
	}
	if scatter.Order >= line.Order {
		t.Fatalf("blocks must be drawn above the line: got order %d vs %d", scatter.Order, line.Order)
	}
	if got, want := scatter.Label(0), "Block 100: 150% Effort"; got != want {
		t.Fatalf("unexpected block label: got %q want %q", got, want)
	}
	if got, want := line.Label(1), "2.00 KH/s"; got != want {
		t.Fatalf("unexpected line label: got %q want %q", got, want)
	}
}

func TestBuildPoolChartEmpty(t *testing.T) {
	t.Parallel()
	spec := BuildPoolChart(nil, nil, time.Now())
	if len(spec.Series) != 2 || !spec.IsEmpty() {
		t.Fatalf("unexpected empty chart: %+v", spec)
	}
	if spec.YMin != 0 {
		t.Fatalf("unexpected y minimum: got %v want 0", spec.YMin)
	}
}

func TestBuildMinerChart(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	data := []NamedSamples{
		{Name: GLOBAL_SERIES, Samples: []HashrateSample{sampleAt(now, time.Hour, 3000)}},
		{Name: "idle", Samples: []HashrateSample{sampleAt(now, 30*time.Hour, 1)}},
		{Name: "rig1", Samples: []HashrateSample{sampleAt(now, time.Hour, 1000)}},
		{Name: "rig2", Samples: []HashrateSample{sampleAt(now, time.Hour, 2000)}},
	}

	spec := BuildMinerChart(data, now)
	if len(spec.Series) != 3 {
		t.Fatalf("unexpected series count: got %d want 3", len(spec.Series))
	}
	total := spec.Series[0]
	if total.Name != "Total" || !total.Style.Fill || total.Order != 10 {
		t.Fatalf("unexpected total series: %+v", total)
	}
	if _, ok := spec.SeriesByName("idle"); ok {
		t.Fatalf("worker without data in the window must be omitted")
	}
	for i, name := range []string{"rig1", "rig2"} {
		s := spec.Series[i+1]
		if s.Name != name {
			t.Fatalf("unexpected series %d: got %q want %q", i+1, s.Name, name)
		}
		if s.Style.Color != WorkerColors[i] {
			t.Fatalf("unexpected color for %s: got %s want %s", name, s.Style.Color, WorkerColors[i])
		}
		if s.Order != 5 || s.Style.Fill {
			t.Fatalf("unexpected worker style for %s: %+v", name, s)
		}
	}
	if got, want := spec.Series[1].Label(0), "rig1: 1.00 KH/s"; got != want {
		t.Fatalf("unexpected label: got %q want %q", got, want)
	}
}

func TestBuildMinerChartColorsCycle(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_700_000_000, 0)
	var data []NamedSamples
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		data = append(data, NamedSamples{Name: name, Samples: []HashrateSample{sampleAt(now, time.Hour, 1)}})
	}

	first := BuildMinerChart(data, now)
	second := BuildMinerChart(data, now)
	if len(first.Series) != 7 {
		t.Fatalf("unexpected series count: got %d want 7", len(first.Series))
	}
	for i := range first.Series {
		if first.Series[i].Style.Color != second.Series[i].Style.Color {
			t.Fatalf("colors differ between builds at %d", i)
		}
	}
	if got := first.Series[6].Style.Color; got != WorkerColors[0] {
		t.Fatalf("unexpected cycled color: got %s want %s", got, WorkerColors[0])
	}
}

func TestChartSpecYMax(t *testing.T) {
	t.Parallel()
	spec := ChartSpec{Series: []Series{
		{Points: []Point{{Y: 2}, {Y: 7}}},
		{Points: []Point{{Y: 5}}},
	}}
	if got := spec.YMax(); got != 7 {
		t.Fatalf("unexpected max: got %v want 7", got)
	}
	if got := (Series{}).Label(3); got != "" {
		t.Fatalf("unexpected label out of range: got %q", got)
	}
}
