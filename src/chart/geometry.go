// Package chart lays out and renders a multi-row category chart: a shared
// category axis along the bottom and stacked rows above it, each row scaled
// independently and drawn as a connected line with point markers. The
// Controller owns one surface and answers pointer hit tests against the last
// drawn geometry.
package chart

import "fmt"

// Rect is an axis-aligned rectangle in surface pixels. Y grows downward.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Right() float64  { return r.X + r.W }

func (r Rect) String() string {
	return fmt.Sprintf("{x=%g y=%g w=%g h=%g}", r.X, r.Y, r.W, r.H)
}

// Point is a surface position.
type Point struct {
	X, Y float64
}

// TickPoint is one category on the shared axis.
type TickPoint struct {
	Label string
	X     float64
}

// SeriesPoint is one plotted value of a row.
type SeriesPoint struct {
	Y          float64
	Percentage float64
	Value      float64
}

// RowSeries holds the points plotted for one category in one row. Points is
// empty when the category had no usable value.
type RowSeries struct {
	Label  string
	X      float64
	Points []SeriesPoint
}

func cloneSeries(in [][]RowSeries) [][]RowSeries {
	if in == nil {
		return nil
	}
	out := make([][]RowSeries, len(in))
	for i, row := range in {
		out[i] = make([]RowSeries, len(row))
		for j, rs := range row {
			rs.Points = append([]SeriesPoint(nil), rs.Points...)
			out[i][j] = rs
		}
	}
	return out
}
