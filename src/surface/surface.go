// Package surface defines the immediate-mode 2D drawing capability set the
// chart renders onto, and ships concrete surfaces for it:
//
//   - Raster: anti-aliased RGBA image (fogleman/gg), PNG output
//   - SVG: vector document (ajstarks/svgo)
//   - GoChart: any go-chart renderer (PNG or SVG provider)
//   - Recorder: records every call, used as a test double
//
// All surfaces share the Path type, so point-in-path queries answer the same
// way regardless of backend.
package surface

import (
	"fmt"
	"image/color"
)

// Surface is the drawing capability set consumed by the chart. Paths are
// built, then painted or queried, and discarded by the next BeginPath.
// Painting does not consume the path: Fill followed by Stroke paints the same
// geometry twice, like an HTML canvas.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc centred at (x, y). Angles are in radians and
	// normalised like CanvasRenderingContext2D.arc.
	Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool)
	ClosePath()

	Stroke()
	Fill()
	// FillText draws text at (x, y) where y is the alphabetic baseline. Text
	// wider than maxWidth is condensed to fit; maxWidth <= 0 disables that.
	FillText(text string, x, y, maxWidth float64)

	SetLineWidth(w float64)
	SetStrokeStyle(c color.Color)
	SetFillStyle(c color.Color)
	SetFont(f Font)
	SetTextAlign(a TextAlign)
	// SetLineDash sets the dash pattern for subsequent strokes; an empty
	// pattern means solid lines.
	SetLineDash(pattern []float64)

	ClearRect(x, y, w, h float64)
	// IsPointInPath reports whether (x, y) lies inside the current path
	// using the non-zero winding rule. Points on the outline are inside.
	IsPointInPath(x, y float64) bool
}

// TextAlign is the horizontal anchor used by FillText.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// anchor returns the fraction of the text width that lies left of x.
func (a TextAlign) anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1
	}
	return 0
}

// Font selects the text face. Only Size affects metrics; all backends render
// with the Go regular face (or the SVG viewer's substitute for Family).
type Font struct {
	Size   float64
	Family string
}

// DefaultFont matches the canvas default of "10px sans-serif".
var DefaultFont = Font{Size: 10, Family: "sans-serif"}

func (f Font) String() string {
	family := f.Family
	if family == "" {
		family = "sans-serif"
	}
	return fmt.Sprintf("%gpx %s", f.Size, family)
}

// SurfaceError reports a surface that cannot be created or used.
type SurfaceError struct {
	Op     string
	Reason string
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("surface %s: %s", e.Op, e.Reason)
}

func checkSize(op string, width, height int) error {
	if width <= 0 || height <= 0 {
		return &SurfaceError{Op: op, Reason: fmt.Sprintf("invalid size %dx%d", width, height)}
	}
	return nil
}

// style is the paint state every backend tracks alongside its path.
type style struct {
	lineWidth float64
	stroke    color.Color
	fill      color.Color
	font      Font
	align     TextAlign
	dash      []float64
}

func defaultStyle() style {
	return style{
		lineWidth: 1,
		stroke:    color.Black,
		fill:      color.Black,
		font:      DefaultFont,
		align:     AlignLeft,
	}
}

func (s *style) setLineWidth(w float64) {
	// Canvas ignores non-positive widths.
	if w > 0 {
		s.lineWidth = w
	}
}

func (s *style) setLineDash(pattern []float64) {
	for _, v := range pattern {
		if v < 0 {
			return
		}
	}
	s.dash = append(s.dash[:0], pattern...)
	// Odd-length patterns repeat once to become even.
	if len(s.dash)%2 == 1 {
		s.dash = append(s.dash, s.dash...)
	}
}

// covers reports whether the rectangle spans the whole w x h surface.
func covers(x, y, w, h float64, width, height int) bool {
	return x <= 0 && y <= 0 && x+w >= float64(width) && y+h >= float64(height)
}
