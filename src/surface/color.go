package surface

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]drawing.Color{
	"black":       drawing.ColorBlack,
	"white":       drawing.ColorWhite,
	"red":         drawing.ColorRed,
	"green":       drawing.ColorGreen,
	"blue":        drawing.ColorBlue,
	"transparent": drawing.ColorTransparent,
}

// ParseColor accepts CSS hex colours ("#000", "#1f77b4", with or without the
// leading '#') and a handful of colour names.
func ParseColor(s string) (drawing.Color, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[raw]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(raw, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid colour %q", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return drawing.Color{}, fmt.Errorf("invalid colour %q", s)
		}
	}
	return drawing.ColorFromHex(hex), nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) drawing.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// toDrawing converts any colour to go-chart's straight-alpha colour.
func toDrawing(c color.Color) drawing.Color {
	if c == nil {
		return drawing.ColorTransparent
	}
	if dc, ok := c.(drawing.Color); ok {
		return dc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// cssColor renders c as an SVG paint value plus its opacity.
func cssColor(c color.Color) (string, float64) {
	d := toDrawing(c)
	return fmt.Sprintf("#%02x%02x%02x", d.R, d.G, d.B), float64(d.A) / 255
}
