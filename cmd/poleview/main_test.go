package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/iafilius/polechart/src/chart"
	"github.com/iafilius/polechart/src/render"
	"github.com/iafilius/polechart/src/surface"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }

func TestComputeContainRect(t *testing.T) {
	cases := []struct {
		imgW, imgH, viewW, viewH          float32
		drawX, drawY, drawW, drawH, scale float32
	}{
		{400, 300, 400, 300, 0, 0, 400, 300, 1},
		{400, 300, 800, 300, 200, 0, 400, 300, 1},
		{400, 300, 800, 900, 0, 150, 800, 600, 2},
		{400, 300, 200, 300, 0, 75, 200, 150, 0.5},
	}
	for _, c := range cases {
		x, y, w, h, s := computeContainRect(c.imgW, c.imgH, c.viewW, c.viewH)
		if !near(x, c.drawX) || !near(y, c.drawY) || !near(w, c.drawW) || !near(h, c.drawH) || !near(s, c.scale) {
			t.Fatalf("contain(%v,%v in %v,%v) = %v,%v %vx%v s=%v", c.imgW, c.imgH, c.viewW, c.viewH, x, y, w, h, s)
		}
	}
	if _, _, _, _, s := computeContainRect(0, 300, 800, 600); s != 0 {
		t.Fatalf("empty image should not scale")
	}
}

func TestViewToImage(t *testing.T) {
	view := fyne.NewSize(800, 900) // image drawn at (0,150) scaled 2x
	x, y, ok := viewToImage(fyne.NewPos(500, 690), 400, 300, view)
	if !ok || math.Abs(x-250) > 1e-3 || math.Abs(y-270) > 1e-3 {
		t.Fatalf("got %v,%v ok=%v want 250,270", x, y, ok)
	}
	if _, _, ok := viewToImage(fyne.NewPos(500, 100), 400, 300, view); ok {
		t.Fatalf("letterbox area should be outside the image")
	}
	if got := imageToViewX(250, 400, 300, view); !near(got, 500) {
		t.Fatalf("imageToViewX = %v want 500", got)
	}
}

func TestTooltipPos(t *testing.T) {
	view := fyne.NewSize(400, 300)
	box := fyne.NewSize(100, 40)
	if p := tooltipPos(fyne.NewPos(10, 10), box, view); p.X != 18 || p.Y != 18 {
		t.Fatalf("tooltip should sit below-right of the pointer, got %v", p)
	}
	if p := tooltipPos(fyne.NewPos(390, 290), box, view); p.X != 300 || p.Y != 260 {
		t.Fatalf("tooltip should be pushed inside the view, got %v", p)
	}
	if p := tooltipPos(fyne.NewPos(5, 5), fyne.NewSize(500, 400), view); p.X != 0 || p.Y != 0 {
		t.Fatalf("oversized tooltip should pin to the origin, got %v", p)
	}
}

func drawnController(t *testing.T) *chart.Controller {
	t.Helper()
	rec, err := surface.NewRecorder(400, 300)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	ctl, err := chart.NewController(rec, 400, 300)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	opts := chart.Options{
		Axis: chart.AxisOptions{KeyPath: "name"},
		Rows: []chart.RowOptions{{Title: "Speed", KeyPath: "v"}},
	}
	data := []any{
		map[string]any{"name": "A", "v": 0.0},
		map[string]any{"name": "B", "v": 100.0},
		map[string]any{"name": "C", "v": 50.0},
	}
	if err := ctl.Draw(opts, data); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return ctl
}

func TestHoverAt(t *testing.T) {
	ctl := drawnController(t)
	ticks := ctl.Ticks()

	h := hoverAt(ctl, 325, 135)
	if !h.hasHit || h.cursor != chart.CursorPointer || h.hit.Label != "C" {
		t.Fatalf("expected a hit on C, got %+v", h)
	}
	if !h.hasCategory || h.category != 2 || h.colLeft != 287.5 || h.colRight != 362.5 {
		t.Fatalf("unexpected column %+v", h)
	}
	if got := h.tooltip(ticks); got != "Speed @ C: 50.0 (50%)" {
		t.Fatalf("tooltip = %q", got)
	}

	h = hoverAt(ctl, 250, 200)
	if h.hasHit || h.cursor != chart.CursorDefault {
		t.Fatalf("no marker near (250,200), got %+v", h)
	}
	if got := h.tooltip(ticks); got != "B" {
		t.Fatalf("column tooltip = %q want B", got)
	}

	h = hoverAt(ctl, 20, 100)
	if h.hasCategory || h.tooltip(ticks) != "" {
		t.Fatalf("title gutter should show nothing, got %+v", h)
	}
}

func TestOverlayCursor(t *testing.T) {
	o := &chartOverlay{}
	if o.Cursor() != desktop.DefaultCursor {
		t.Fatalf("idle overlay should use the default cursor")
	}
	o.hover.cursor = chart.CursorPointer
	if o.Cursor() != desktop.PointerCursor {
		t.Fatalf("cursor over a marker should be a pointer")
	}
}

func TestViewerLoadAndExport(t *testing.T) {
	dir := t.TempDir()
	data := `[{"name":"A","v":10},{"name":"B","v":20}]`
	if err := os.WriteFile(filepath.Join(dir, "poles.json"), []byte(data), 0644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	cfgPath := filepath.Join(dir, "chart.toml")
	cfg := "width = 400\nheight = 300\ndata = \"poles.json\"\n[axis]\nkey_path = \"name\"\n[[rows]]\nkey_path = \"v\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	v := &viewer{configPath: cfgPath}
	if err := v.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if w, h := v.imageSize(); w != 400 || h != 300 {
		t.Fatalf("raster size %vx%v", w, h)
	}
	if len(v.ticks()) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(v.ticks()))
	}
	first := v.ctl

	// A reload at the same size keeps the controller.
	if err := v.load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v.ctl != first {
		t.Fatalf("same-size reload should reuse the controller")
	}

	out, err := v.export(render.FormatSVG)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(out, "chart.svg") {
		t.Fatalf("unexpected export path %s", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("export not written: %v", err)
	}

	// A broken config keeps the previous chart.
	if err := os.WriteFile(cfgPath, []byte("[[rows]]\n"), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := v.load(); err == nil {
		t.Fatalf("broken config should fail")
	}
	if v.ctl != first || v.ctl.State() != chart.StateDrawn {
		t.Fatalf("previous chart should survive a failed reload")
	}
}
