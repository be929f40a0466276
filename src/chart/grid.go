package chart

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/polechart/src/surface"
)

// GridBorders selects the solid borders drawn around a row.
type GridBorders struct {
	Top    bool
	Bottom bool
}

const (
	gridBorderWidth = 1.0
	gridLineWidth   = 1.0

	dotInterval = 8.0
	dotRadius   = 1.0
	dotLead     = 4.0
)

// gridDash is the guide line pattern: short dash, gap, long dash, gap.
var gridDash = []float64{5, 2, 25, 10}

// DrawRowGrid draws the frame of one row: the requested borders, then the
// horizontal guide lines.
func DrawRowGrid(s surface.Surface, bounds Rect, borders GridBorders, g GridConfig) {
	if borders.Top || borders.Bottom {
		s.SetLineDash(nil)
		s.SetStrokeStyle(g.BorderColor)
		s.SetLineWidth(gridBorderWidth)
		s.BeginPath()
		if borders.Top {
			s.MoveTo(bounds.X, bounds.Y+gridBorderWidth)
			s.LineTo(bounds.Right(), bounds.Y+gridBorderWidth)
		}
		if borders.Bottom {
			s.MoveTo(bounds.X, bounds.Bottom()-gridBorderWidth)
			s.LineTo(bounds.Right(), bounds.Bottom()-gridBorderWidth)
		}
		s.Stroke()
	}

	ys := GuideLines(bounds.Y, bounds.H, g.Spacing)
	if len(ys) == 0 {
		return
	}
	if g.Style == GridDotted {
		drawDottedLines(s, bounds, ys, g.LineColor)
		return
	}
	s.SetLineDash(gridDash)
	s.SetStrokeStyle(g.LineColor)
	s.SetLineWidth(gridLineWidth)
	s.BeginPath()
	for _, y := range ys {
		s.MoveTo(bounds.X, y)
		s.LineTo(bounds.Right(), y)
	}
	s.Stroke()
}

// GuideLines returns the y positions of the guide lines for a row at y with
// height h. There are floor(h/spacing)-1 lines; the remainder of h is spread
// over the spacing so the last interval ends exactly at the row bottom.
func GuideLines(y, h, spacing float64) []float64 {
	if spacing <= 0 {
		return nil
	}
	count := math.Floor(h / spacing)
	if count < 2 {
		return nil
	}
	spacing += math.Mod(h, spacing) / count
	out := make([]float64, 0, int(count)-1)
	for k := 1; k < int(count); k++ {
		out = append(out, y+spacing*float64(k))
	}
	return out
}

// drawDottedLines fills small dots along each guide line, starting a little
// left of the row.
func drawDottedLines(s surface.Surface, bounds Rect, ys []float64, c drawing.Color) {
	x0 := bounds.X - dotLead
	length := bounds.Right() - x0
	s.SetFillStyle(c)
	s.BeginPath()
	for _, y := range ys {
		for p := 0.0; p < length; {
			p = math.Min(p+dotInterval, length)
			s.MoveTo(x0+p, y)
			s.Arc(x0+p, y, dotRadius, 0, 2*math.Pi, true)
		}
	}
	s.Fill()
}
