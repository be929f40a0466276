package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/polechart/src/chart"
)

// chartOverlay sits on top of the chart image. It highlights the category
// column under the pointer, shows a tooltip for the marker under it and
// switches to a pointer cursor over markers.
type chartOverlay struct {
	widget.BaseWidget
	v        *viewer
	mouse    fyne.Position
	hovering bool
	hover    hoverState
}

func newChartOverlay(v *viewer) *chartOverlay {
	o := &chartOverlay{v: v}
	o.ExtendBaseWidget(o)
	return o
}

func (o *chartOverlay) CreateRenderer() fyne.WidgetRenderer {
	// transparent background so the whole area receives hover events
	bg := canvas.NewRectangle(color.Transparent)
	column := canvas.NewRectangle(color.NRGBA{R: 120, G: 120, B: 120, A: 40})
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.NRGBA{A: 170})
	return &overlayRenderer{
		o: o, bg: bg, column: column, labelBG: labelBG, label: label,
		objs: []fyne.CanvasObject{bg, column, labelBG, label},
	}
}

type overlayRenderer struct {
	o       *chartOverlay
	bg      *canvas.Rectangle
	column  *canvas.Rectangle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func hide(objs ...fyne.CanvasObject) {
	for _, obj := range objs {
		obj.Resize(fyne.NewSize(0, 0))
		obj.Move(fyne.NewPos(-1000, -1000))
	}
}

func (r *overlayRenderer) Destroy() {}

func (r *overlayRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	o := r.o
	imgW, imgH := o.v.imageSize()
	if !o.hovering || imgW == 0 {
		hide(r.column, r.labelBG, r.label)
		return
	}

	if o.hover.hasCategory {
		left := imageToViewX(o.hover.colLeft, imgW, imgH, size)
		right := imageToViewX(o.hover.colRight, imgW, imgH, size)
		_, drawY, _, drawH, _ := computeContainRect(imgW, imgH, size.Width, size.Height)
		r.column.Resize(fyne.NewSize(right-left, drawH))
		r.column.Move(fyne.NewPos(left, drawY))
	} else {
		hide(r.column)
	}

	text := o.hover.tooltip(o.v.ticks())
	if text == "" {
		hide(r.labelBG, r.label)
		return
	}
	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: text}}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	box := fyne.NewSize(ts.Width+2*pad, ts.Height+2*pad)
	at := tooltipPos(o.mouse, box, size)
	r.labelBG.Resize(box)
	r.labelBG.Move(at)
	r.label.Resize(ts)
	r.label.Move(fyne.NewPos(at.X+pad, at.Y+pad))
}

func (r *overlayRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *overlayRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *overlayRenderer) Refresh() {
	r.Layout(r.o.Size())
	r.column.FillColor = theme.Color(theme.ColorNameHover)
	r.bg.Refresh()
	r.column.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

func (o *chartOverlay) update(pos fyne.Position) {
	o.mouse = pos
	o.hover = hoverState{}
	imgW, imgH := o.v.imageSize()
	if x, y, ok := viewToImage(pos, imgW, imgH, o.Size()); ok && o.v.ctl != nil {
		o.hover = hoverAt(o.v.ctl, x, y)
	}
	o.Refresh()
}

func (o *chartOverlay) MouseMoved(ev *desktop.MouseEvent) {
	o.hovering = true
	o.update(ev.Position)
}

func (o *chartOverlay) MouseIn(ev *desktop.MouseEvent) {
	o.hovering = true
	o.update(ev.Position)
}

func (o *chartOverlay) MouseOut() {
	o.hovering = false
	o.hover = hoverState{}
	o.Refresh()
}

// Cursor follows the last PointerMove result.
func (o *chartOverlay) Cursor() desktop.Cursor {
	if o.hover.cursor == chart.CursorPointer {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

var (
	_ desktop.Hoverable  = (*chartOverlay)(nil)
	_ desktop.Cursorable = (*chartOverlay)(nil)
)
