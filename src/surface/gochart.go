package surface

import (
	"fmt"
	"image/color"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/polechart/src/logger"
)

// GoChart drives a go-chart Renderer, so the same chart can be produced by
// go-chart's raster (chart.PNG) or vector (chart.SVG) backends. Renderer
// coordinates are whole pixels.
type GoChart struct {
	provider chart.RendererProvider
	r        chart.Renderer
	width    int
	height   int
	path     Path
	st       style

	// Background is painted by partial clears.
	Background drawing.Color
}

// NewGoChart creates a surface on a fresh renderer from provider
// (chart.PNG when nil).
func NewGoChart(width, height int, provider chart.RendererProvider) (*GoChart, error) {
	if err := checkSize("go-chart", width, height); err != nil {
		return nil, err
	}
	if provider == nil {
		provider = chart.PNG
	}
	g := &GoChart{provider: provider, width: width, height: height, st: defaultStyle(), Background: drawing.ColorWhite}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GoChart) reset() error {
	r, err := g.provider(g.width, g.height)
	if err != nil {
		return &SurfaceError{Op: "go-chart", Reason: err.Error()}
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return &SurfaceError{Op: "go-chart", Reason: fmt.Sprintf("default font: %v", err)}
	}
	r.SetFont(f)
	g.r = r
	return nil
}

func (g *GoChart) BeginPath()          { g.path.Reset() }
func (g *GoChart) MoveTo(x, y float64) { g.path.MoveTo(x, y) }
func (g *GoChart) LineTo(x, y float64) { g.path.LineTo(x, y) }
func (g *GoChart) ClosePath()          { g.path.Close() }

func (g *GoChart) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	g.path.Arc(x, y, radius, startAngle, endAngle, ccw)
}

func px(v float64) int { return int(math.Round(v)) }

// trace replays the recorded path; go-chart clears its own path after each
// Stroke or Fill. Arcs go over in quarter turns: the SVG renderer writes one
// A command per ArcTo, and a full turn would end where it started. That
// renderer also only sweeps clockwise, so counter-clockwise arcs are replayed
// from their end; the outline is the same but the pen stops at the arc start.
func (g *GoChart) trace() {
	for _, s := range g.path.segs {
		switch s.kind {
		case segMove:
			g.r.MoveTo(px(s.X), px(s.Y))
		case segLine:
			g.r.LineTo(px(s.X), px(s.Y))
		case segArc:
			if s.R == 0 || s.Sweep == 0 {
				continue
			}
			n := arcParts(s.Sweep, math.Pi/2)
			step := s.Sweep / float64(n)
			if step > 0 {
				for i := 0; i < n; i++ {
					g.r.ArcTo(px(s.X), px(s.Y), s.R, s.R, s.Start+step*float64(i), step)
				}
				continue
			}
			for i := n; i > 0; i-- {
				g.r.ArcTo(px(s.X), px(s.Y), s.R, s.R, s.Start+step*float64(i), -step)
			}
		case segClose:
			g.r.Close()
		}
	}
}

func (g *GoChart) Stroke() {
	if g.path.Empty() {
		return
	}
	g.r.SetStrokeColor(toDrawing(g.st.stroke))
	g.r.SetStrokeWidth(g.st.lineWidth)
	g.r.SetStrokeDashArray(g.st.dash)
	g.trace()
	g.r.Stroke()
}

func (g *GoChart) Fill() {
	if g.path.Empty() {
		return
	}
	g.r.SetFillColor(toDrawing(g.st.fill))
	g.trace()
	g.r.Fill()
}

// FillText truncates text that does not fit maxWidth; go-chart cannot
// condense glyphs.
func (g *GoChart) FillText(text string, x, y, maxWidth float64) {
	if text == "" {
		return
	}
	// go-chart sizes fonts in points at the renderer DPI.
	g.r.SetFontSize(g.st.font.Size * 72 / g.r.GetDPI())
	g.r.SetFontColor(toDrawing(g.st.fill))
	runes := []rune(text)
	w := float64(g.r.MeasureText(text).Width())
	for maxWidth > 0 && w > maxWidth && len(runes) > 1 {
		runes = runes[:len(runes)-1]
		w = float64(g.r.MeasureText(string(runes)).Width())
	}
	g.r.Text(string(runes), px(x-w*g.st.align.anchor()), px(y))
}

func (g *GoChart) SetLineWidth(w float64)        { g.st.setLineWidth(w) }
func (g *GoChart) SetStrokeStyle(c color.Color)  { g.st.stroke = c }
func (g *GoChart) SetFillStyle(c color.Color)    { g.st.fill = c }
func (g *GoChart) SetFont(f Font)                { g.st.font = f }
func (g *GoChart) SetTextAlign(a TextAlign)      { g.st.align = a }
func (g *GoChart) SetLineDash(pattern []float64) { g.st.setLineDash(pattern) }

// ClearRect starts a fresh renderer when the whole surface is cleared and
// paints Background otherwise.
func (g *GoChart) ClearRect(x, y, w, h float64) {
	if covers(x, y, w, h, g.width, g.height) {
		if err := g.reset(); err != nil {
			logger.Warnf("clear: %v; keeping previous renderer", err)
		}
		return
	}
	g.r.SetFillColor(g.Background)
	g.r.MoveTo(px(x), px(y))
	g.r.LineTo(px(x+w), px(y))
	g.r.LineTo(px(x+w), px(y+h))
	g.r.LineTo(px(x), px(y+h))
	g.r.Close()
	g.r.Fill()
}

func (g *GoChart) IsPointInPath(x, y float64) bool { return g.path.Contains(x, y) }

// Save writes the rendered output (PNG or SVG depending on the provider).
func (g *GoChart) Save(w io.Writer) error { return g.r.Save(w) }
