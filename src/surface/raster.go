package surface

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Raster draws into an anti-aliased RGBA image.
type Raster struct {
	dc     *gg.Context
	width  int
	height int
	path   Path
	st     style
	faces  faceCache
}

// NewRaster returns a transparent width x height raster surface.
func NewRaster(width, height int) (*Raster, error) {
	if err := checkSize("raster", width, height); err != nil {
		return nil, err
	}
	dc := gg.NewContext(width, height)
	dc.SetFillRule(gg.FillRuleWinding)
	dc.SetLineCap(gg.LineCapButt)
	return &Raster{dc: dc, width: width, height: height, st: defaultStyle()}, nil
}

func (r *Raster) BeginPath()          { r.path.Reset() }
func (r *Raster) MoveTo(x, y float64) { r.path.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.path.LineTo(x, y) }
func (r *Raster) ClosePath()          { r.path.Close() }

func (r *Raster) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	r.path.Arc(x, y, radius, startAngle, endAngle, ccw)
}

// trace replays the recorded path into the gg context.
func (r *Raster) trace() {
	r.dc.ClearPath()
	for _, s := range r.path.segs {
		switch s.kind {
		case segMove:
			r.dc.MoveTo(s.X, s.Y)
		case segLine:
			r.dc.LineTo(s.X, s.Y)
		case segArc:
			r.dc.DrawArc(s.X, s.Y, s.R, s.Start, s.Start+s.Sweep)
		case segClose:
			r.dc.ClosePath()
		}
	}
}

func (r *Raster) Stroke() {
	if r.path.Empty() {
		return
	}
	r.trace()
	r.dc.SetColor(r.st.stroke)
	r.dc.SetLineWidth(r.st.lineWidth)
	r.dc.SetDash(r.st.dash...)
	r.dc.Stroke()
}

func (r *Raster) Fill() {
	if r.path.Empty() {
		return
	}
	r.trace()
	r.dc.SetColor(r.st.fill)
	r.dc.Fill()
}

func (r *Raster) FillText(text string, x, y, maxWidth float64) {
	if text == "" {
		return
	}
	r.dc.SetFontFace(r.faces.face(r.st.font.Size))
	w, _ := r.dc.MeasureString(text)
	scale := fitScale(w, maxWidth)

	r.dc.Push()
	defer r.dc.Pop()
	r.dc.SetColor(r.st.fill)
	if scale != 1 {
		r.dc.ScaleAbout(scale, 1, x, y)
	}
	r.dc.DrawStringAnchored(text, x, y, r.st.align.anchor(), 0)
}

func (r *Raster) SetLineWidth(w float64)        { r.st.setLineWidth(w) }
func (r *Raster) SetStrokeStyle(c color.Color)  { r.st.stroke = c }
func (r *Raster) SetFillStyle(c color.Color)    { r.st.fill = c }
func (r *Raster) SetFont(f Font)                { r.st.font = f }
func (r *Raster) SetTextAlign(a TextAlign)      { r.st.align = a }
func (r *Raster) SetLineDash(pattern []float64) { r.st.setLineDash(pattern) }

// ClearRect resets the covered pixels to transparent.
func (r *Raster) ClearRect(x, y, w, h float64) {
	dst, ok := r.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(dst, rect.Intersect(dst.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) IsPointInPath(x, y float64) bool { return r.path.Contains(x, y) }

// Image returns the backing image. It is live: later drawing shows through.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the current image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Size returns the surface size in pixels.
func (r *Raster) Size() (int, int) { return r.width, r.height }
