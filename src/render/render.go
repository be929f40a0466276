// Package render draws charts headlessly and encodes them to files. It picks
// a surface per output format and runs batches of independent charts
// concurrently.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	pole "github.com/iafilius/polechart/src/chart"
	"github.com/iafilius/polechart/src/surface"
)

// Format names an output encoding and the surface that produces it.
type Format string

const (
	// FormatPNG rasterises with fogleman/gg.
	FormatPNG Format = "png"
	// FormatSVG writes a vector document with svgo.
	FormatSVG Format = "svg"
	// FormatGoChartPNG and FormatGoChartSVG drive go-chart's renderers.
	FormatGoChartPNG Format = "gochart-png"
	FormatGoChartSVG Format = "gochart-svg"
)

var formats = map[Format]string{
	FormatPNG:        ".png",
	FormatSVG:        ".svg",
	FormatGoChartPNG: ".png",
	FormatGoChartSVG: ".svg",
}

// Formats lists the supported format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// Ext is the file extension for the format, including the dot.
func (f Format) Ext() string { return formats[f] }

// Canvas is a chart bound to a fresh surface of one format.
type Canvas struct {
	Format     Format
	Controller *pole.Controller

	surface surface.Surface
	encode  func(io.Writer) error
}

// NewCanvas creates a width x height surface for format and a controller on it.
func NewCanvas(format Format, width, height int) (*Canvas, error) {
	c := &Canvas{Format: format}
	switch format {
	case FormatPNG:
		r, err := surface.NewRaster(width, height)
		if err != nil {
			return nil, err
		}
		c.surface, c.encode = r, r.EncodePNG
	case FormatSVG:
		s, err := surface.NewSVG(width, height)
		if err != nil {
			return nil, err
		}
		c.surface = s
		c.encode = func(w io.Writer) error {
			_, err := s.WriteTo(w)
			return err
		}
	case FormatGoChartPNG, FormatGoChartSVG:
		provider := chart.PNG
		if format == FormatGoChartSVG {
			provider = chart.SVG
		}
		g, err := surface.NewGoChart(width, height, provider)
		if err != nil {
			return nil, err
		}
		c.surface, c.encode = g, g.Save
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	ctl, err := pole.NewController(c.surface, width, height)
	if err != nil {
		return nil, err
	}
	c.Controller = ctl
	return c, nil
}

// Surface exposes the drawing surface, e.g. for the raster image.
func (c *Canvas) Surface() surface.Surface { return c.surface }

// Draw renders data with opts.
func (c *Canvas) Draw(opts pole.Options, data []any) error {
	return c.Controller.Draw(opts, data)
}

// Encode writes the current drawing in the canvas format.
func (c *Canvas) Encode(w io.Writer) error {
	if err := c.encode(w); err != nil {
		return fmt.Errorf("%s encode: %w", c.Format, err)
	}
	return nil
}

// Render draws data once and writes the encoded result to w.
func Render(w io.Writer, format Format, width, height int, opts pole.Options, data []any) (*Canvas, error) {
	c, err := NewCanvas(format, width, height)
	if err != nil {
		return nil, err
	}
	if err := c.Draw(opts, data); err != nil {
		return nil, err
	}
	if err := c.Encode(w); err != nil {
		return nil, err
	}
	return c, nil
}

// RenderFile renders into path, creating its directory. The file is only
// written once encoding succeeded.
func RenderFile(path string, format Format, width, height int, opts pole.Options, data []any) (*Canvas, error) {
	var buf bytes.Buffer
	c, err := Render(&buf, format, width, height, opts, data)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create out dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return c, nil
}
