package chart

import (
	"github.com/iafilius/polechart/src/keypath"
	"github.com/iafilius/polechart/src/logger"
	"github.com/iafilius/polechart/src/surface"
)

// RowSeriesRenderer plots one row's values against the shared ticks.
type RowSeriesRenderer struct {
	s      surface.Surface
	bounds Rect
	cfg    RowConfig
}

func NewRowSeries(s surface.Surface, bounds Rect, cfg RowConfig) *RowSeriesRenderer {
	return &RowSeriesRenderer{s: s, bounds: bounds, cfg: cfg}
}

// Y maps a percentage to a surface y inside the row. Percentages outside
// [0,1] land outside the row.
func (r *RowSeriesRenderer) Y(percentage float64) float64 {
	return r.bounds.Y + r.bounds.H - r.bounds.H*percentage
}

// values returns the numbers plotted for one record: every element of a
// series, a single scalar, or nothing.
func (r *RowSeriesRenderer) values(i int, rec any) []float64 {
	v, err := keypath.Resolve(rec, r.cfg.KeyPath)
	if err != nil {
		logger.Debugf("row %q category %d: %v", r.cfg.Title, i, err)
		return nil
	}
	switch v.Kind {
	case keypath.KindScalar:
		return []float64{v.Scalar}
	case keypath.KindSeries:
		return v.Series
	}
	logger.Debugf("row %q category %d: %s value at %q not plotted", r.cfg.Title, i, v.Kind, r.cfg.KeyPath)
	return nil
}

// Render draws the row line through every point in category order, then a
// marker on each point, and returns the plotted geometry. Categories without
// values add no point; the line runs straight past them.
func (r *RowSeriesRenderer) Render(ticks []TickPoint, data []any) []RowSeries {
	s := r.s
	s.SetLineDash(nil)
	s.SetStrokeStyle(r.cfg.StrokeStyle)
	s.SetFillStyle(r.cfg.FillStyle)
	s.SetLineWidth(r.cfg.LineWidth)

	out := make([]RowSeries, len(ticks))
	started := false
	s.BeginPath()
	for i, t := range ticks {
		rs := RowSeries{Label: t.Label, X: t.X}
		var rec any
		if i < len(data) {
			rec = data[i]
		}
		for _, v := range r.values(i, rec) {
			p := r.cfg.Percentage(v)
			y := r.Y(p)
			if started {
				s.LineTo(t.X, y)
			} else {
				s.MoveTo(t.X, y)
				started = true
			}
			rs.Points = append(rs.Points, SeriesPoint{Y: y, Percentage: p, Value: v})
		}
		out[i] = rs
	}
	s.Stroke()

	for _, rs := range out {
		for _, p := range rs.Points {
			s.BeginPath()
			s.Arc(rs.X, p.Y, r.cfg.PointRadius, 0, r.cfg.PointArc, true)
			s.Fill()
			s.Stroke()
		}
	}
	return out
}
