package chart

import (
	"github.com/iafilius/polechart/src/keypath"
	"github.com/iafilius/polechart/src/logger"
	"github.com/iafilius/polechart/src/surface"
)

// axisFamily is the font family requested for axis and row text.
const axisFamily = "Arial"

// Axis is the shared category axis. DrawAxis paints its baseline; Ticks
// places one tick per record and returns their positions for the rows.
type Axis struct {
	s      surface.Surface
	bounds Rect
	cfg    AxisConfig
}

// DrawAxis strokes the baseline along the top edge of bounds.
func DrawAxis(s surface.Surface, bounds Rect, cfg AxisConfig) *Axis {
	s.SetLineDash(nil)
	s.SetLineWidth(cfg.LineWidth)
	s.SetStrokeStyle(cfg.StrokeStyle)
	s.SetFillStyle(cfg.FillStyle)
	s.BeginPath()
	s.MoveTo(bounds.X, bounds.Y)
	s.LineTo(bounds.Right(), bounds.Y)
	s.Stroke()
	return &Axis{s: s, bounds: bounds, cfg: cfg}
}

// Span is the distance between neighbouring ticks when n categories share
// the axis. One span is also left free at each end.
func (a *Axis) Span(n int) float64 {
	return a.bounds.W / float64(n+1)
}

// axisMetrics are the vertical measurements derived from the strip height.
type axisMetrics struct {
	startY   float64
	tickLen  float64
	fontSize float64
	textY    float64
}

func (a *Axis) metrics() axisMetrics {
	lw := a.cfg.LineWidth
	surplus := a.bounds.H - lw
	m := axisMetrics{
		startY:   a.bounds.Y + lw,
		tickLen:  surplus * 0.3,
		fontSize: surplus * 0.5,
	}
	m.textY = m.startY + m.tickLen + surplus*0.2 + m.fontSize
	return m
}

// Ticks draws the title, a tick mark and a centred label for every record
// and returns the tick positions in record order. Tick i is at
// bounds.X + span*(i+1). A record whose label cannot be resolved keeps its
// tick with an empty label.
func (a *Axis) Ticks(data []any) []TickPoint {
	ticks := make([]TickPoint, 0, len(data))
	if len(data) == 0 {
		return ticks
	}
	m := a.metrics()
	span := a.Span(len(data))
	s := a.s

	s.SetLineDash(nil)
	s.SetLineWidth(a.cfg.LineWidth)
	s.SetStrokeStyle(a.cfg.StrokeStyle)
	s.SetFillStyle(a.cfg.FillStyle)
	s.SetFont(surface.Font{Size: m.fontSize, Family: axisFamily})
	s.SetTextAlign(surface.AlignLeft)
	s.FillText(a.cfg.Title, a.bounds.X, m.textY, span/1.5)

	s.SetTextAlign(surface.AlignCenter)
	s.BeginPath()
	for i, rec := range data {
		x := a.bounds.X + span*float64(i+1)
		label := a.label(i, rec)
		s.MoveTo(x, m.startY)
		s.LineTo(x, m.startY+m.tickLen)
		s.FillText(label, x, m.textY, span*0.8)
		ticks = append(ticks, TickPoint{Label: label, X: x})
	}
	s.Stroke()
	return ticks
}

func (a *Axis) label(i int, rec any) string {
	v, err := keypath.Resolve(rec, a.cfg.KeyPath)
	if err != nil {
		logger.Debugf("axis label for category %d: %v", i, err)
		return ""
	}
	return v.Label()
}
