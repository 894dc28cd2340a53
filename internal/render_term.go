package pooltop

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ui "github.com/gizak/termui/v3"
)

// TermRenderer rasterizes charts onto a braille canvas of Width x Height cells
type TermRenderer struct {
	Width  int
	Height int
}

// TermChart is a chart rendered to styled terminal text
type TermChart struct {
	lines  []string
	width  int
	height int
}

// View returns the chart as a block of text
func (c *TermChart) View() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.lines, "\n")
}

// Release drops the rendered text
func (c *TermChart) Release() {
	c.lines = nil
}

// palette hands out one termui color per distinct hex color, so the cells
// written by the canvas can be mapped back to the series colors
type palette struct {
	keys   map[string]ui.Color
	colors map[ui.Color]string
}

func newPalette() *palette {
	return &palette{
		keys:   make(map[string]ui.Color),
		colors: make(map[ui.Color]string),
	}
}

func (p *palette) key(hex string) ui.Color {
	if k, ok := p.keys[hex]; ok {
		return k
	}
	k := ui.Color(len(p.keys) + 1)
	p.keys[hex] = k
	p.colors[k] = hex
	return k
}

func (r TermRenderer) Render(spec ChartSpec) (Handle, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", r.Width, r.Height)
	}

	canvas := ui.NewCanvas()
	canvas.Border = false
	canvas.SetRect(0, 0, r.Width, r.Height)

	// braille cells hold 2x4 dots
	plot := projection{
		window: spec.Window,
		yMin:   spec.YMin,
		yMax:   spec.YMax(),
		width:  r.Width * 2,
		height: r.Height * 4,
	}
	if plot.yMax <= plot.yMin {
		plot.yMax = plot.yMin + 1
	}

	colors := newPalette()
	for _, s := range drawOrder(spec.Series) {
		if len(s.Points) == 0 {
			continue
		}
		pts := make([]image.Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = plot.project(p)
		}

		switch s.Kind {
		case SeriesScatter:
			c := colors.key(s.Style.Color)
			for _, p := range pts {
				for _, d := range diamond {
					canvas.SetPoint(plot.clamp(p.Add(d)), c)
				}
			}
		default:
			if s.Style.Fill && s.Style.FillColor != "" {
				fill := colors.key(s.Style.FillColor)
				bottom := plot.height - 1
				for i := range pts {
					if i == 0 {
						canvas.SetLine(pts[0], image.Pt(pts[0].X, bottom), fill)
						continue
					}
					fillBetween(canvas, pts[i-1], pts[i], bottom, fill)
				}
			}
			c := colors.key(s.Style.Color)
			if len(pts) == 1 {
				canvas.SetPoint(pts[0], c)
			}
			for i := 1; i < len(pts); i++ {
				canvas.SetLine(pts[i-1], pts[i], c)
			}
		}
	}

	buf := ui.NewBuffer(canvas.GetRect())
	canvas.Draw(buf)

	return &TermChart{
		lines:  serializeBuffer(buf, r.Width, r.Height, colors),
		width:  r.Width,
		height: r.Height,
	}, nil
}

var diamond = []image.Point{image.Pt(0, 0), image.Pt(-1, 0), image.Pt(1, 0), image.Pt(0, -1), image.Pt(0, 1)}

type projection struct {
	window Window
	yMin   float64
	yMax   float64
	width  int
	height int
}

func (p projection) project(pt Point) image.Point {
	span := float64(p.window.End - p.window.Start)
	x := 0
	if span > 0 {
		x = int(float64(pt.X-p.window.Start) / span * float64(p.width-1))
	}
	y := p.height - 1 - int((pt.Y-p.yMin)/(p.yMax-p.yMin)*float64(p.height-1))
	return p.clamp(image.Pt(x, y))
}

func (p projection) clamp(pt image.Point) image.Point {
	pt.X = max(0, min(pt.X, p.width-1))
	pt.Y = max(0, min(pt.Y, p.height-1))
	return pt
}

// fillBetween shades every dot column from the segment a-b down to bottom
func fillBetween(canvas *ui.Canvas, a, b image.Point, bottom int, c ui.Color) {
	if b.X < a.X {
		a, b = b, a
	}
	for x := a.X; x <= b.X; x++ {
		y := a.Y
		if b.X != a.X {
			y = a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
		}
		canvas.SetLine(image.Pt(x, y), image.Pt(x, bottom), c)
	}
}

func serializeBuffer(buf *ui.Buffer, width, height int, colors *palette) []string {
	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		var run strings.Builder
		runColor := ui.ColorClear
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if hex, ok := colors.colors[runColor]; ok {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < width; x++ {
			cell := buf.GetCell(image.Pt(x, y))
			if cell.Style.Fg != runColor {
				flush()
				runColor = cell.Style.Fg
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			run.WriteRune(r)
		}
		flush()
		lines = append(lines, b.String())
	}
	return lines
}
