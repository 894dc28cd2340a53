package pooltop

import (
	"bytes"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNGRenderer draws charts as PNG images. Axes are always drawn since an
// exported image has no hover tooltips to read values from.
type PNGRenderer struct {
	Width  int
	Height int
}

// PNGChart is an encoded PNG image
type PNGChart struct {
	data []byte
}

// Bytes returns the encoded image
func (c *PNGChart) Bytes() []byte {
	return c.data
}

// WriteTo writes the encoded image to w
func (c *PNGChart) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.data)
	return int64(n), err
}

// Release drops the encoded image
func (c *PNGChart) Release() {
	c.data = nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func (r PNGRenderer) Render(spec ChartSpec) (Handle, error) {
	if spec.IsEmpty() {
		return nil, ErrEmptyChart
	}

	var series []chart.Series
	for _, s := range drawOrder(spec.Series) {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = p.X.Time()
			ys[i] = p.Y
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(s),
		})
	}

	yMax := spec.YMax()
	if yMax <= spec.YMin {
		yMax = spec.YMin + 1
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeHourValueFormatter,
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(spec.Window.Start.Time()),
				Max: chart.TimeToFloat64(spec.Window.End.Time()),
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: spec.YMin, Max: yMax * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatHashrate(f)
				}
				return ""
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return &PNGChart{data: buf.Bytes()}, nil
}

func seriesStyle(s Series) chart.Style {
	if s.Kind == SeriesScatter {
		// zero values are replaced by the defaults, so the line has to be disabled
		return chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    s.Style.PointRadius,
			DotColor:    hexColor(s.Style.Color),
		}
	}
	st := chart.Style{
		StrokeColor: hexColor(s.Style.Color),
		StrokeWidth: s.Style.LineWidth,
	}
	if s.Style.Fill {
		st.FillColor = hexColor(s.Style.Color).WithAlpha(64)
	}
	return st
}
