package chart

import "github.com/iafilius/polechart/src/surface"

// titleFontSize is the pixel size of row titles.
const titleFontSize = 12.0

// ComposeOptions lays out the rows of the plot area.
type ComposeOptions struct {
	// OffsetLeft is the width of the title gutter; rows start after it.
	OffsetLeft float64
	Rows       []RowConfig
	// ScaleAreaTop is the y of the axis baseline.
	ScaleAreaTop float64
	Grid         GridConfig
}

// Composer stacks the configured rows inside the plot area.
type Composer struct {
	s         surface.Surface
	bounds    Rect
	opts      ComposeOptions
	rowHeight float64
}

// Compose divides bounds into equal rows and draws each row's title and
// grid. Only the first row gets a top border. Every row but the last gets a
// bottom border; the last one only when the plot area stops short of the
// axis by more than 1% of a row.
func Compose(s surface.Surface, bounds Rect, opts ComposeOptions) *Composer {
	c := &Composer{s: s, bounds: bounds, opts: opts}
	n := len(opts.Rows)
	if n == 0 {
		return c
	}
	c.rowHeight = bounds.H / float64(n)

	textWidth := opts.OffsetLeft * 0.8
	s.SetTextAlign(surface.AlignRight)
	s.SetFont(surface.Font{Size: titleFontSize, Family: axisFamily})
	lastBottom := c.LastBottomBorder()
	for i, row := range opts.Rows {
		rb := c.RowBounds(i)
		s.SetFillStyle(row.FillStyle)
		s.FillText(row.Title, bounds.X+textWidth, (c.rowHeight+titleFontSize)/2+rb.Y, textWidth)
		DrawRowGrid(s, rb, GridBorders{Top: i == 0, Bottom: i < n-1 || lastBottom}, opts.Grid)
	}
	return c
}

// RowHeight is the plot height divided by the row count.
func (c *Composer) RowHeight() float64 { return c.rowHeight }

// RowBounds returns the rectangle of row i, right of the title gutter.
func (c *Composer) RowBounds(i int) Rect {
	return Rect{
		X: c.bounds.X + c.opts.OffsetLeft,
		Y: c.bounds.Y + c.rowHeight*float64(i),
		W: c.bounds.W - c.opts.OffsetLeft,
		H: c.rowHeight,
	}
}

// LastBottomBorder reports whether the last row draws its bottom border.
// With no gap the axis baseline already closes the plot.
func (c *Composer) LastBottomBorder() bool {
	return c.opts.ScaleAreaTop-c.bounds.Bottom() > c.rowHeight*0.01
}

// Render plots every row against ticks and returns the points indexed
// [row][category].
func (c *Composer) Render(ticks []TickPoint, data []any) [][]RowSeries {
	out := make([][]RowSeries, len(c.opts.Rows))
	for i, row := range c.opts.Rows {
		out[i] = NewRowSeries(c.s, c.RowBounds(i), row).Render(ticks, data)
	}
	return out
}
