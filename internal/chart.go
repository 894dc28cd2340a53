package pooltop

import (
	"fmt"
	"time"
)

// SeriesKind tells the renderer how to draw a series
type SeriesKind string

const (
	SeriesLine    SeriesKind = "line"
	SeriesScatter SeriesKind = "scatter"
)

// TooltipKind selects how Series.Label formats a point
type TooltipKind string

const (
	TooltipHashrate      TooltipKind = "hashrate"
	TooltipNamedHashrate TooltipKind = "named_hashrate"
	TooltipBlock         TooltipKind = "block"
)

// MarkerDiamond is a square marker rotated by 45 degrees
const MarkerDiamond = "rectRot"

const (
	poolLineColor   = "#F26822"
	poolFillColor   = "#7a3411"
	blockFillColor  = "#ffffff"
	blockColor      = "#FFD700"
	workerLineWidth = 1.5
)

// WorkerColors is the palette cycled through for worker series
var WorkerColors = []string{
	"#ffb700", // yellow
	"#00d2d3", // cyan
	"#5f27cd", // purple
	"#ff9f43", // orange
	"#54a0ff", // blue
	"#ff6b6b", // red
}

// SeriesStyle holds the drawing attributes of a series
type SeriesStyle struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fill_color,omitempty"`
	Fill        bool    `json:"fill"`
	LineWidth   float64 `json:"line_width"`
	PointRadius float64 `json:"point_radius"`
	PointStyle  string  `json:"point_style,omitempty"`
	Tension     float64 `json:"tension"`
}

// Series is one named data set of a chart. Blocks is only set on scatter
// series and runs parallel to Points.
type Series struct {
	Name    string         `json:"name"`
	Kind    SeriesKind     `json:"kind"`
	Points  []Point        `json:"points"`
	Blocks  []SnappedEvent `json:"blocks,omitempty"`
	Style   SeriesStyle    `json:"style"`
	Order   int            `json:"order"`
	Tooltip TooltipKind    `json:"tooltip"`
}

// Label returns the tooltip text for the i-th point
func (s Series) Label(i int) string {
	if i < 0 || i >= len(s.Points) {
		return ""
	}
	switch s.Tooltip {
	case TooltipBlock:
		if i < len(s.Blocks) {
			return fmt.Sprintf("Block %d: %.0f%% Effort", s.Blocks[i].Height, s.Blocks[i].EffortPercent)
		}
		return ""
	case TooltipNamedHashrate:
		return fmt.Sprintf("%s: %s", s.Name, FormatHashrate(s.Points[i].Y))
	default:
		return FormatHashrate(s.Points[i].Y)
	}
}

// ChartSpec is everything a renderer needs to draw one chart
type ChartSpec struct {
	Title    string   `json:"title"`
	Series   []Series `json:"series"`
	Window   Window   `json:"window"`
	YMin     float64  `json:"y_min"`
	ShowAxes bool     `json:"show_axes"`
}

// SeriesByName returns the series with the given name
func (c ChartSpec) SeriesByName(name string) (Series, bool) {
	for _, s := range c.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// YMax returns the largest value over all series, at least YMin
func (c ChartSpec) YMax() float64 {
	max := c.YMin
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.Y > max {
				max = p.Y
			}
		}
	}
	return max
}

// IsEmpty reports whether no series has any point
func (c ChartSpec) IsEmpty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

func hashrateLineStyle(color string) SeriesStyle {
	return SeriesStyle{
		Color:       color,
		FillColor:   poolFillColor,
		Fill:        true,
		LineWidth:   2,
		PointRadius: 0,
		Tension:     0.4,
	}
}

// BuildPoolChart builds the pool hashrate line with the blocks found in the
// last 24 hours snapped onto it
func BuildPoolChart(samples []HashrateSample, blocks []BlockEvent, now time.Time) ChartSpec {
	w := Last24h(now)
	line := Normalize(samples, w)
	snapped := Snap(blocks, line, w)

	blockPoints := make([]Point, 0, len(snapped))
	for _, b := range snapped {
		blockPoints = append(blockPoints, Point{X: b.X, Y: b.Y})
	}

	return ChartSpec{
		Title:  "Pool Hashrate",
		Window: w,
		YMin:   0,
		Series: []Series{
			{
				Name:    "Hashrate",
				Kind:    SeriesLine,
				Points:  line,
				Style:   hashrateLineStyle(poolLineColor),
				Order:   2,
				Tooltip: TooltipHashrate,
			},
			{
				Name:   "Blocks",
				Kind:   SeriesScatter,
				Points: blockPoints,
				Blocks: snapped,
				Style: SeriesStyle{
					Color:       blockColor,
					FillColor:   blockFillColor,
					LineWidth:   2,
					PointRadius: 6,
					PointStyle:  MarkerDiamond,
				},
				Order:   1,
				Tooltip: TooltipBlock,
			},
		},
	}
}

// BuildMinerChart builds the total hashrate area plus one line per worker
// with data in the window. Worker colors follow the palette in input order,
// counting only the workers that were kept.
func BuildMinerChart(data []NamedSamples, now time.Time) ChartSpec {
	w := Last24h(now)
	spec := ChartSpec{
		Title:  "Miner Hashrate",
		Window: w,
		YMin:   0,
	}

	for _, ns := range data {
		if ns.Name != GLOBAL_SERIES {
			continue
		}
		spec.Series = append(spec.Series, Series{
			Name:    "Total",
			Kind:    SeriesLine,
			Points:  Normalize(ns.Samples, w),
			Style:   hashrateLineStyle(poolLineColor),
			Order:   10,
			Tooltip: TooltipNamedHashrate,
		})
		break
	}

	colorIdx := 0
	for _, ns := range data {
		if ns.Name == GLOBAL_SERIES {
			continue
		}
		points := Normalize(ns.Samples, w)
		if len(points) == 0 {
			continue
		}
		spec.Series = append(spec.Series, Series{
			Name:   ns.Name,
			Kind:   SeriesLine,
			Points: points,
			Style: SeriesStyle{
				Color:     WorkerColors[colorIdx%len(WorkerColors)],
				LineWidth: workerLineWidth,
				Tension:   0.4,
			},
			Order:   5,
			Tooltip: TooltipNamedHashrate,
		})
		colorIdx++
	}

	return spec
}

func (c ChartSpec) titleOr(fallback string) string {
	if c.Title == "" {
		return fallback
	}
	return c.Title
}
