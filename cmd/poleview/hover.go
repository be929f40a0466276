package main

import (
	"github.com/iafilius/polechart/src/chart"
)

// hoverState is what the overlay shows for one pointer position, in image
// pixels.
type hoverState struct {
	cursor chart.Cursor
	hit    chart.Hit
	hasHit bool

	category    int
	hasCategory bool
	// colLeft and colRight bound the hovered category column.
	colLeft, colRight float64
}

// tooltip is the hovered point, else the hovered category label.
func (h hoverState) tooltip(ticks []chart.TickPoint) string {
	if h.hasHit {
		return h.hit.String()
	}
	if h.hasCategory && h.category < len(ticks) {
		return ticks[h.category].Label
	}
	return ""
}

func hoverAt(ctl *chart.Controller, x, y float64) hoverState {
	h := hoverState{cursor: ctl.PointerMove(x, y)}
	if h.cursor == chart.CursorPointer {
		h.hit, h.hasHit = ctl.PointAt(x, y)
	}
	if cat, ok := ctl.CategoryAt(x, y); ok {
		ticks := ctl.Ticks()
		cfg, _ := ctl.Config()
		// Ticks sit at OffsetLeft + span*(i+1).
		half := (ticks[0].X - cfg.OffsetLeft) / 2
		h.category, h.hasCategory = cat, true
		h.colLeft, h.colRight = ticks[cat].X-half, ticks[cat].X+half
	}
	return h
}
