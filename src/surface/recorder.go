package surface

import (
	"fmt"
	"image/color"
	"strings"
)

// Call is one recorded Surface method invocation. Colours are recorded in
// Text as "#rrggbb"; paint calls carry the style in effect.
type Call struct {
	Op   string
	Args []float64
	Text string
}

func (c Call) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, a := range c.Args {
		parts = append(parts, num(a))
	}
	if c.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", c.Text))
	}
	return c.Op + "(" + strings.Join(parts, ",") + ")"
}

// Recorder is a Surface that records calls instead of drawing. It keeps a
// real Path, so IsPointInPath answers like the drawing surfaces.
type Recorder struct {
	width  int
	height int
	calls  []Call
	path   Path
	st     style
}

// NewRecorder returns an empty recorder of the given size.
func NewRecorder(width, height int) (*Recorder, error) {
	if err := checkSize("recorder", width, height); err != nil {
		return nil, err
	}
	return &Recorder{width: width, height: height, st: defaultStyle()}, nil
}

func (r *Recorder) record(op string, text string, args ...float64) {
	r.calls = append(r.calls, Call{Op: op, Args: args, Text: text})
}

func (r *Recorder) BeginPath() {
	r.path.Reset()
	r.record("beginPath", "")
}

func (r *Recorder) MoveTo(x, y float64) {
	r.path.MoveTo(x, y)
	r.record("moveTo", "", x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.path.LineTo(x, y)
	r.record("lineTo", "", x, y)
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	r.path.Arc(x, y, radius, startAngle, endAngle, ccw)
	dir := 0.0
	if ccw {
		dir = 1
	}
	r.record("arc", "", x, y, radius, startAngle, endAngle, dir)
}

func (r *Recorder) ClosePath() {
	r.path.Close()
	r.record("closePath", "")
}

func (r *Recorder) Stroke() {
	paint, _ := cssColor(r.st.stroke)
	r.record("stroke", paint, append([]float64{r.st.lineWidth}, r.st.dash...)...)
}

func (r *Recorder) Fill() {
	paint, _ := cssColor(r.st.fill)
	r.record("fill", paint)
}

func (r *Recorder) FillText(text string, x, y, maxWidth float64) {
	r.record("fillText", text, x, y, maxWidth, r.st.font.Size, float64(r.st.align))
}

func (r *Recorder) SetLineWidth(w float64) {
	r.st.setLineWidth(w)
	r.record("lineWidth", "", w)
}

func (r *Recorder) SetStrokeStyle(c color.Color) {
	r.st.stroke = c
	paint, _ := cssColor(c)
	r.record("strokeStyle", paint)
}

func (r *Recorder) SetFillStyle(c color.Color) {
	r.st.fill = c
	paint, _ := cssColor(c)
	r.record("fillStyle", paint)
}

func (r *Recorder) SetFont(f Font) {
	r.st.font = f
	r.record("font", f.String())
}

func (r *Recorder) SetTextAlign(a TextAlign) {
	r.st.align = a
	r.record("textAlign", a.String())
}

func (r *Recorder) SetLineDash(pattern []float64) {
	r.st.setLineDash(pattern)
	r.record("setLineDash", "", pattern...)
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record("clearRect", "", x, y, w, h)
}

func (r *Recorder) IsPointInPath(x, y float64) bool { return r.path.Contains(x, y) }

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call { return append([]Call(nil), r.calls...) }

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls; style and path state are kept.
func (r *Recorder) Reset() { r.calls = nil }

// Size returns the surface size.
func (r *Recorder) Size() (int, int) { return r.width, r.height }
