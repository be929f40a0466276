package surface

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/polechart/src/logger"
)

var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
)

// regularFont parses the embedded Go regular face once. The parsed font is
// safe for concurrent use; faces created from it are not.
func regularFont() *opentype.Font {
	goRegularOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			logger.Warnf("parse Go regular font: %v; falling back to 7x13 bitmap face", err)
			return
		}
		goRegular = f
	})
	return goRegular
}

// faceCache holds faces by pixel size for one surface.
type faceCache struct {
	faces map[float64]font.Face
}

func (c *faceCache) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	var face font.Face = basicfont.Face7x13
	if otf := regularFont(); otf != nil && size > 0 {
		f, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
		if err != nil {
			logger.Warnf("font face %gpx: %v", size, err)
		} else {
			face = f
		}
	}
	if c.faces == nil {
		c.faces = make(map[float64]font.Face)
	}
	c.faces[size] = face
	return face
}

// measure returns the advance width of s in pixels.
func (c *faceCache) measure(f Font, s string) float64 {
	d := &font.Drawer{Face: c.face(f.Size)}
	return fixedToFloat(d.MeasureString(s))
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// fitScale returns the horizontal scale that condenses text of width w into
// maxWidth, or 1 when no condensing is needed.
func fitScale(w, maxWidth float64) float64 {
	if maxWidth > 0 && w > maxWidth {
		return maxWidth / w
	}
	return 1
}
