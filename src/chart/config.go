package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/polechart/src/surface"
)

// Defaults applied field by field when an option is omitted.
const (
	DefaultAxisTitle   = "Pole"
	DefaultAxisKeyPath = "pole.poleName"
	DefaultAxisHeight  = 30.0
	DefaultLineWidth   = 1.0
	DefaultColor       = "#000"
	DefaultOffsetLeft  = 100.0

	DefaultRowTitle    = "Row"
	DefaultRowMin      = 0.0
	DefaultRowMax      = 100.0
	DefaultPointRadius = 6.0
	DefaultPointArc    = 2 * math.Pi

	DefaultGridSpacing     = 40.0
	DefaultGridLineColor   = "#ccc"
	DefaultGridBorderColor = "#000"
)

// PercentageFunc maps a value onto a row. span is max-min. The result is
// not clamped: 0 is the row bottom, 1 its top.
type PercentageFunc func(value, span, min float64) float64

// Linear is the default transform, (value-min)/span.
func Linear(value, span, min float64) float64 { return (value - min) / span }

// Inverted puts min at the top of the row and max at the bottom.
func Inverted(value, span, min float64) float64 { return 1 - Linear(value, span, min) }

var (
	percentagesMu sync.RWMutex
	percentages   = map[string]PercentageFunc{
		"linear":   Linear,
		"inverted": Inverted,
	}
)

// RegisterPercentage makes fn selectable by name from RowOptions.Percentage.
func RegisterPercentage(name string, fn PercentageFunc) {
	percentagesMu.Lock()
	defer percentagesMu.Unlock()
	percentages[strings.ToLower(name)] = fn
}

// PercentageNames lists the registered transform names, sorted.
func PercentageNames() []string {
	percentagesMu.RLock()
	defer percentagesMu.RUnlock()
	names := make([]string, 0, len(percentages))
	for n := range percentages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupPercentage(name string) (PercentageFunc, bool) {
	percentagesMu.RLock()
	defer percentagesMu.RUnlock()
	fn, ok := percentages[strings.ToLower(name)]
	return fn, ok
}

// GridStyle selects how row guide lines are drawn.
type GridStyle int

const (
	GridDashed GridStyle = iota
	GridDotted
)

func (g GridStyle) String() string {
	if g == GridDotted {
		return "dotted"
	}
	return "dashed"
}

// ParseGridStyle accepts "dashed" (or "") and "dotted".
func ParseGridStyle(s string) (GridStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dashed":
		return GridDashed, nil
	case "dotted":
		return GridDotted, nil
	}
	return GridDashed, fmt.Errorf("unknown grid style %q", s)
}

// Options is caller-supplied chart configuration. Empty strings and nil
// numbers mean "use the default".
type Options struct {
	Axis AxisOptions  `toml:"axis"`
	Rows []RowOptions `toml:"rows"`
	// RowsAreaHeight overrides the plot area height; zero means everything
	// above the axis strip.
	RowsAreaHeight *float64    `toml:"rows_area_height,omitempty"`
	OffsetLeft     *float64    `toml:"offset_left,omitempty"`
	Grid           GridOptions `toml:"grid"`
}

type AxisOptions struct {
	Title       string   `toml:"title,omitempty"`
	KeyPath     string   `toml:"key_path,omitempty"`
	Height      *float64 `toml:"height,omitempty"`
	LineWidth   *float64 `toml:"line_width,omitempty"`
	StrokeStyle string   `toml:"stroke_style,omitempty"`
	FillStyle   string   `toml:"fill_style,omitempty"`
}

type RowOptions struct {
	Title   string   `toml:"title,omitempty"`
	KeyPath string   `toml:"key_path,omitempty"`
	Min     *float64 `toml:"min,omitempty"`
	Max     *float64 `toml:"max,omitempty"`
	// Percentage names a registered transform; PercentageFn wins when set.
	Percentage   string         `toml:"percentage,omitempty"`
	PercentageFn PercentageFunc `toml:"-"`
	PointRadius  *float64       `toml:"point_radius,omitempty"`
	PointArc     *float64       `toml:"point_arc,omitempty"`
	LineWidth    *float64       `toml:"line_width,omitempty"`
	StrokeStyle  string         `toml:"stroke_style,omitempty"`
	FillStyle    string         `toml:"fill_style,omitempty"`
}

type GridOptions struct {
	Style       string   `toml:"style,omitempty"`
	Spacing     *float64 `toml:"spacing,omitempty"`
	LineColor   string   `toml:"line_color,omitempty"`
	BorderColor string   `toml:"border_color,omitempty"`
}

// Float returns a pointer to v, for filling Options literals.
func Float(v float64) *float64 { return &v }

// Config is a fully defaulted and validated configuration.
type Config struct {
	Axis           AxisConfig
	Rows           []RowConfig
	RowsAreaHeight float64
	OffsetLeft     float64
	Grid           GridConfig
}

type AxisConfig struct {
	Title       string
	KeyPath     string
	Height      float64
	LineWidth   float64
	StrokeStyle drawing.Color
	FillStyle   drawing.Color
}

type RowConfig struct {
	Title          string
	KeyPath        string
	Min            float64
	Max            float64
	PercentageName string
	PercentageFn   PercentageFunc
	PointRadius    float64
	PointArc       float64
	LineWidth      float64
	StrokeStyle    drawing.Color
	FillStyle      drawing.Color
}

type GridConfig struct {
	Style       GridStyle
	Spacing     float64
	LineColor   drawing.Color
	BorderColor drawing.Color
}

// Percentage applies the row transform to v.
func (r RowConfig) Percentage(v float64) float64 {
	return r.PercentageFn(v, r.Max-r.Min, r.Min)
}

// DefaultGrid is the grid used when no grid options are given.
func DefaultGrid() GridConfig {
	return GridConfig{
		Style:       GridDashed,
		Spacing:     DefaultGridSpacing,
		LineColor:   surface.MustParseColor(DefaultGridLineColor),
		BorderColor: surface.MustParseColor(DefaultGridBorderColor),
	}
}

// ConfigError reports an option that cannot be used.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// Merge applies defaults to opts and validates the result. It does not know
// the surface size; Controller.Configure checks that separately.
func Merge(opts Options) (Config, error) {
	var m merger
	cfg := Config{
		Axis:           m.axis(opts.Axis),
		RowsAreaHeight: m.number("rows_area_height", opts.RowsAreaHeight, 0, atLeastZero),
		OffsetLeft:     m.number("offset_left", opts.OffsetLeft, DefaultOffsetLeft, atLeastZero),
		Grid:           m.grid(opts.Grid),
	}
	if len(opts.Rows) == 0 {
		m.fail("rows", "at least one row is required")
	}
	for i, ro := range opts.Rows {
		cfg.Rows = append(cfg.Rows, m.row(fmt.Sprintf("rows[%d]", i), ro))
	}
	if m.err != nil {
		return Config{}, m.err
	}
	return cfg, nil
}

// merger keeps the first error so each merge step reads straight through.
type merger struct {
	err error
}

func (m *merger) fail(field, format string, args ...interface{}) {
	if m.err == nil {
		m.err = &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
	}
}

type bound int

const (
	anyFinite bound = iota
	atLeastZero
	aboveZero
)

func (m *merger) number(field string, p *float64, def float64, b bound) float64 {
	if p == nil {
		return def
	}
	v := *p
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		m.fail(field, "must be finite, got %v", v)
	case b == atLeastZero && v < 0:
		m.fail(field, "must not be negative, got %g", v)
	case b == aboveZero && v <= 0:
		m.fail(field, "must be positive, got %g", v)
	}
	return v
}

func (m *merger) color(field, s, def string) drawing.Color {
	if s == "" {
		s = def
	}
	c, err := surface.ParseColor(s)
	if err != nil {
		m.fail(field, "%v", err)
	}
	return c
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (m *merger) axis(o AxisOptions) AxisConfig {
	ac := AxisConfig{
		Title:       orDefault(o.Title, DefaultAxisTitle),
		KeyPath:     orDefault(o.KeyPath, DefaultAxisKeyPath),
		Height:      m.number("axis.height", o.Height, DefaultAxisHeight, aboveZero),
		LineWidth:   m.number("axis.line_width", o.LineWidth, DefaultLineWidth, aboveZero),
		StrokeStyle: m.color("axis.stroke_style", o.StrokeStyle, DefaultColor),
		FillStyle:   m.color("axis.fill_style", o.FillStyle, DefaultColor),
	}
	// Tick and label sizes come from the height left under the baseline.
	if ac.Height <= ac.LineWidth {
		m.fail("axis.height", "must exceed line_width (%g), got %g", ac.LineWidth, ac.Height)
	}
	return ac
}

func (m *merger) row(field string, o RowOptions) RowConfig {
	rc := RowConfig{
		Title:       orDefault(o.Title, DefaultRowTitle),
		KeyPath:     o.KeyPath,
		Min:         m.number(field+".min", o.Min, DefaultRowMin, anyFinite),
		Max:         m.number(field+".max", o.Max, DefaultRowMax, anyFinite),
		PointRadius: m.number(field+".point_radius", o.PointRadius, DefaultPointRadius, atLeastZero),
		PointArc:    m.number(field+".point_arc", o.PointArc, DefaultPointArc, anyFinite),
		LineWidth:   m.number(field+".line_width", o.LineWidth, DefaultLineWidth, aboveZero),
		StrokeStyle: m.color(field+".stroke_style", o.StrokeStyle, DefaultColor),
		FillStyle:   m.color(field+".fill_style", o.FillStyle, DefaultColor),
	}
	if strings.TrimSpace(rc.KeyPath) == "" {
		m.fail(field+".key_path", "must not be empty")
	}
	if rc.Min >= rc.Max {
		m.fail(field, "min (%g) must be less than max (%g)", rc.Min, rc.Max)
	}
	switch {
	case o.PercentageFn != nil:
		rc.PercentageFn = o.PercentageFn
		rc.PercentageName = "custom"
	default:
		rc.PercentageName = strings.ToLower(orDefault(o.Percentage, "linear"))
		fn, ok := lookupPercentage(rc.PercentageName)
		if !ok {
			m.fail(field+".percentage", "unknown transform %q (known: %s)", o.Percentage, strings.Join(PercentageNames(), ", "))
			fn = Linear
		}
		rc.PercentageFn = fn
	}
	return rc
}

func (m *merger) grid(o GridOptions) GridConfig {
	style, err := ParseGridStyle(o.Style)
	if err != nil {
		m.fail("grid.style", "%v", err)
	}
	return GridConfig{
		Style:       style,
		Spacing:     m.number("grid.spacing", o.Spacing, DefaultGridSpacing, aboveZero),
		LineColor:   m.color("grid.line_color", o.LineColor, DefaultGridLineColor),
		BorderColor: m.color("grid.border_color", o.BorderColor, DefaultGridBorderColor),
	}
}
