package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVG accumulates drawing as SVG elements. Each Stroke or Fill becomes one
// <path>, each FillText one <text>.
type SVG struct {
	body   bytes.Buffer
	canvas *svg.SVG
	width  int
	height int
	path   Path
	st     style
	faces  faceCache

	// Background is painted by partial clears.
	Background color.Color
}

// NewSVG returns an empty width x height SVG surface. Partial clears paint
// Background (white by default); clearing the whole surface drops all
// elements.
func NewSVG(width, height int) (*SVG, error) {
	if err := checkSize("svg", width, height); err != nil {
		return nil, err
	}
	s := &SVG{width: width, height: height, st: defaultStyle(), Background: color.White}
	s.canvas = svg.New(&s.body)
	return s, nil
}

func (s *SVG) BeginPath()          { s.path.Reset() }
func (s *SVG) MoveTo(x, y float64) { s.path.MoveTo(x, y) }
func (s *SVG) LineTo(x, y float64) { s.path.LineTo(x, y) }
func (s *SVG) ClosePath()          { s.path.Close() }

func (s *SVG) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	s.path.Arc(x, y, radius, startAngle, endAngle, ccw)
}

func (s *SVG) Stroke() {
	if s.path.Empty() {
		return
	}
	paint, opacity := cssColor(s.st.stroke)
	css := []string{
		"fill:none",
		"stroke:" + paint,
		"stroke-width:" + num(s.st.lineWidth),
	}
	if opacity < 1 {
		css = append(css, "stroke-opacity:"+num(opacity))
	}
	if len(s.st.dash) > 0 {
		parts := make([]string, len(s.st.dash))
		for i, d := range s.st.dash {
			parts[i] = num(d)
		}
		css = append(css, "stroke-dasharray:"+strings.Join(parts, ","))
	}
	s.canvas.Path(pathData(&s.path), strings.Join(css, ";"))
}

func (s *SVG) Fill() {
	if s.path.Empty() {
		return
	}
	paint, opacity := cssColor(s.st.fill)
	css := []string{"fill:" + paint, "fill-rule:nonzero", "stroke:none"}
	if opacity < 1 {
		css = append(css, "fill-opacity:"+num(opacity))
	}
	s.canvas.Path(pathData(&s.path), strings.Join(css, ";"))
}

// FillText writes the <text> element itself: svgo's Text only takes whole
// pixel coordinates.
func (s *SVG) FillText(text string, x, y, maxWidth float64) {
	if text == "" {
		return
	}
	anchor := map[TextAlign]string{AlignLeft: "start", AlignCenter: "middle", AlignRight: "end"}[s.st.align]
	paint, _ := cssColor(s.st.fill)
	attrs := []string{
		`x="` + num(x) + `"`,
		`y="` + num(y) + `"`,
		`text-anchor="` + anchor + `"`,
		`font-size="` + num(s.st.font.Size) + `"`,
	}
	if s.st.font.Family != "" {
		attrs = append(attrs, `font-family="`+s.st.font.Family+`"`)
	}
	if w := s.faces.measure(s.st.font, text); fitScale(w, maxWidth) != 1 {
		attrs = append(attrs, `textLength="`+num(maxWidth)+`"`, `lengthAdjust="spacingAndGlyphs"`)
	}
	attrs = append(attrs, `style="fill:`+paint+`"`)
	w := s.canvas.Writer
	fmt.Fprintf(w, "<text %s>", strings.Join(attrs, " "))
	_ = xml.EscapeText(w, []byte(text))
	fmt.Fprintln(w, "</text>")
}

func (s *SVG) SetLineWidth(w float64)        { s.st.setLineWidth(w) }
func (s *SVG) SetStrokeStyle(c color.Color)  { s.st.stroke = c }
func (s *SVG) SetFillStyle(c color.Color)    { s.st.fill = c }
func (s *SVG) SetFont(f Font)                { s.st.font = f }
func (s *SVG) SetTextAlign(a TextAlign)      { s.st.align = a }
func (s *SVG) SetLineDash(pattern []float64) { s.st.setLineDash(pattern) }

func (s *SVG) ClearRect(x, y, w, h float64) {
	if covers(x, y, w, h, s.width, s.height) {
		s.body.Reset()
		return
	}
	paint, _ := cssColor(s.Background)
	s.canvas.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(w)), int(math.Ceil(h)), "fill:"+paint)
}

func (s *SVG) IsPointInPath(x, y float64) bool { return s.path.Contains(x, y) }

// WriteTo writes the complete SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	out := svg.New(&doc)
	out.Start(s.width, s.height, `font-family="Go,Helvetica,Arial,sans-serif"`)
	doc.Write(s.body.Bytes())
	out.End()
	return doc.WriteTo(w)
}

// pathData renders the recorded path as SVG path data. Arcs are split into
// quarter turns so every A command is unambiguous.
func pathData(p *Path) string {
	var b strings.Builder
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			fmt.Fprintf(&b, "M%s %s", num(s.X), num(s.Y))
		case segLine:
			fmt.Fprintf(&b, "L%s %s", num(s.X), num(s.Y))
		case segClose:
			b.WriteString("Z")
		case segArc:
			if s.R == 0 || s.Sweep == 0 {
				continue
			}
			n := arcParts(s.Sweep, math.Pi/2)
			flag := 0
			if s.Sweep > 0 {
				flag = 1
			}
			for i := 1; i <= n; i++ {
				a := s.Start + s.Sweep*float64(i)/float64(n)
				fmt.Fprintf(&b, "A%s %s 0 0 %d %s %s", num(s.R), num(s.R), flag,
					num(s.X+s.R*math.Cos(a)), num(s.Y+s.R*math.Sin(a)))
			}
		}
	}
	return b.String()
}

// num formats coordinates with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
