package pooltop

import (
	"slices"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/common/model"
)

// Point is one normalized chart sample, X in epoch milliseconds. It encodes
// to JSON with X as integer milliseconds.
type Point struct {
	X model.Time
	Y float64
}

type pointJSON struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(pointJSON{X: int64(p.X), Y: p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var v pointJSON
	if err := sonic.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Point{X: model.Time(v.X), Y: v.Y}
	return nil
}

// Window is the closed time range a chart covers, encoded in milliseconds.
type Window struct {
	Start model.Time
	End   model.Time
}

type windowJSON struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

func (w Window) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(windowJSON{Start: int64(w.Start), End: int64(w.End)})
}

func (w *Window) UnmarshalJSON(data []byte) error {
	var v windowJSON
	if err := sonic.Unmarshal(data, &v); err != nil {
		return err
	}
	*w = Window{Start: model.Time(v.Start), End: model.Time(v.End)}
	return nil
}

// NewWindow returns the window of the given span ending at now.
func NewWindow(now time.Time, span time.Duration) Window {
	end := model.TimeFromUnixNano(now.UnixNano())
	return Window{
		Start: end.Add(-span),
		End:   end,
	}
}

// Last24h returns the fixed chart window ending at now.
func Last24h(now time.Time) Window {
	return NewWindow(now, ChartWindow())
}

// Normalize keeps the samples at or after the window start and returns them as
// points sorted oldest first. The input slice is not modified.
func Normalize(samples []HashrateSample, w Window) []Point {
	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		x := EpochMillis(s.Ts)
		if x.Before(w.Start) {
			continue
		}
		points = append(points, Point{X: x, Y: s.Hs})
	}
	slices.SortStableFunc(points, func(a, b Point) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	return points
}
