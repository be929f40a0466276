package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/iafilius/polechart/src/logger"
	"github.com/iafilius/polechart/src/surface"
)

// State is the controller lifecycle.
type State int

const (
	StateEmpty State = iota
	StateDrawn
)

func (s State) String() string {
	if s == StateDrawn {
		return "drawn"
	}
	return "empty"
}

// Cursor is the pointer shape a host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// ErrNotDrawn is returned by Clear before anything was drawn.
var ErrNotDrawn = errors.New("chart: nothing drawn")

// Hit describes the marker under the pointer.
type Hit struct {
	Row      int
	Category int
	// Index is the position of the point within its category.
	Index    int
	RowTitle string
	Label    string
	X        float64
	Point    SeriesPoint
}

// Controller owns one surface, the configuration and data of the last draw
// and the geometry needed to answer pointer queries. It is not safe for
// concurrent use.
type Controller struct {
	s      surface.Surface
	width  float64
	height float64

	cfg        Config
	configured bool
	data       []any

	state  State
	ticks  []TickPoint
	series [][]RowSeries
	span   float64
}

// NewController binds a controller to s, which is width x height pixels.
func NewController(s surface.Surface, width, height int) (*Controller, error) {
	if s == nil {
		return nil, &surface.SurfaceError{Op: "controller", Reason: "nil surface"}
	}
	if width <= 0 || height <= 0 {
		return nil, &surface.SurfaceError{Op: "controller", Reason: fmt.Sprintf("invalid size %dx%d", width, height)}
	}
	return &Controller{s: s, width: float64(width), height: float64(height)}, nil
}

// Configure replaces the configuration. On error the previous one is kept.
func (c *Controller) Configure(opts Options) error {
	cfg, err := Merge(opts)
	if err != nil {
		return err
	}
	switch {
	case cfg.Axis.Height >= c.height:
		return &ConfigError{Field: "axis.height", Reason: fmt.Sprintf("%g does not fit surface height %g", cfg.Axis.Height, c.height)}
	case cfg.OffsetLeft >= c.width:
		return &ConfigError{Field: "offset_left", Reason: fmt.Sprintf("%g does not fit surface width %g", cfg.OffsetLeft, c.width)}
	case cfg.RowsAreaHeight > c.height:
		return &ConfigError{Field: "rows_area_height", Reason: fmt.Sprintf("%g exceeds surface height %g", cfg.RowsAreaHeight, c.height)}
	}
	c.cfg = cfg
	c.configured = true
	return nil
}

// Draw configures, clears the previous drawing and renders data: the axis
// strip along the bottom, the rows above it.
func (c *Controller) Draw(opts Options, data []any) error {
	defer logger.TimeTrack(time.Now(), "draw")
	if err := c.Configure(opts); err != nil {
		return err
	}
	if c.state == StateDrawn {
		c.clear()
	}
	c.data = data

	scaleTop := c.height - c.cfg.Axis.Height
	axisBounds := Rect{X: c.cfg.OffsetLeft, Y: scaleTop, W: c.width - c.cfg.OffsetLeft, H: c.cfg.Axis.Height}
	plotHeight := scaleTop
	if c.cfg.RowsAreaHeight > 0 {
		plotHeight = c.cfg.RowsAreaHeight
	}

	axis := DrawAxis(c.s, axisBounds, c.cfg.Axis)
	c.ticks = axis.Ticks(data)
	c.span = axis.Span(len(data))
	comp := Compose(c.s, Rect{W: c.width, H: plotHeight}, ComposeOptions{
		OffsetLeft:   c.cfg.OffsetLeft,
		Rows:         c.cfg.Rows,
		ScaleAreaTop: scaleTop,
		Grid:         c.cfg.Grid,
	})
	c.series = comp.Render(c.ticks, data)
	c.state = StateDrawn
	logger.Debugf("drew %d categories x %d rows (row height %g)", len(c.ticks), len(c.series), comp.RowHeight())
	return nil
}

// Clear erases the surface. The configuration is kept, so Draw can follow.
func (c *Controller) Clear() error {
	if c.state != StateDrawn {
		return ErrNotDrawn
	}
	c.clear()
	return nil
}

func (c *Controller) clear() {
	c.s.ClearRect(0, 0, c.width, c.height)
	c.ticks = nil
	c.series = nil
	c.span = 0
	c.state = StateEmpty
}

// HitTestPoint reports whether (x, y) falls inside the marker of row drawn
// at at. The marker path is built on the surface and tested there.
func (c *Controller) HitTestPoint(row int, at Point, x, y float64) bool {
	if row < 0 || row >= len(c.cfg.Rows) {
		return false
	}
	rc := c.cfg.Rows[row]
	c.s.BeginPath()
	c.s.MoveTo(at.X, at.Y)
	c.s.Arc(at.X, at.Y, rc.PointRadius, 0, rc.PointArc, true)
	return c.s.IsPointInPath(x, y)
}

// PointAt returns the first marker, in row then category order, containing
// (x, y).
func (c *Controller) PointAt(x, y float64) (Hit, bool) {
	for ri, row := range c.series {
		for ci, rs := range row {
			for pi, p := range rs.Points {
				if !c.HitTestPoint(ri, Point{X: rs.X, Y: p.Y}, x, y) {
					continue
				}
				return Hit{
					Row:      ri,
					Category: ci,
					Index:    pi,
					RowTitle: c.cfg.Rows[ri].Title,
					Label:    rs.Label,
					X:        rs.X,
					Point:    p,
				}, true
			}
		}
	}
	return Hit{}, false
}

// PointerMove returns CursorPointer while (x, y) is over any marker.
func (c *Controller) PointerMove(x, y float64) Cursor {
	if _, ok := c.PointAt(x, y); ok {
		return CursorPointer
	}
	return CursorDefault
}

// CategoryAt returns the category whose column contains (x, y). A column is
// one tick span wide, centred on its tick, and spans the surface height.
func (c *Controller) CategoryAt(x, y float64) (int, bool) {
	half := c.span / 2
	for i, t := range c.ticks {
		c.s.BeginPath()
		c.s.MoveTo(t.X-half, 0)
		c.s.LineTo(t.X+half, 0)
		c.s.LineTo(t.X+half, c.height)
		c.s.LineTo(t.X-half, c.height)
		c.s.ClosePath()
		if c.s.IsPointInPath(x, y) {
			return i, true
		}
	}
	return 0, false
}

func (c *Controller) State() State { return c.state }

// Ticks returns a copy of the last drawn tick positions.
func (c *Controller) Ticks() []TickPoint { return append([]TickPoint(nil), c.ticks...) }

// Series returns a copy of the last drawn points, indexed [row][category].
func (c *Controller) Series() [][]RowSeries { return cloneSeries(c.series) }

// Config returns the active configuration and whether one was set.
func (c *Controller) Config() (Config, bool) {
	cfg := c.cfg
	cfg.Rows = append([]RowConfig(nil), c.cfg.Rows...)
	return cfg, c.configured
}

// Data returns the records of the last draw.
func (c *Controller) Data() []any { return c.data }

// Size returns the surface size the controller lays out against.
func (c *Controller) Size() (float64, float64) { return c.width, c.height }
