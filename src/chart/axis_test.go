package chart

import (
	"math"
	"testing"

	"github.com/iafilius/polechart/src/surface"
)

func newRecorder(t *testing.T, w, h int) *surface.Recorder {
	t.Helper()
	rec, err := surface.NewRecorder(w, h)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	return rec
}

func callsOf(rec *surface.Recorder, op string) []surface.Call {
	var out []surface.Call
	for _, c := range rec.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func labelled(labels ...string) []any {
	data := make([]any, len(labels))
	for i, l := range labels {
		data[i] = map[string]any{"label": l}
	}
	return data
}

func testAxisConfig(t *testing.T) AxisConfig {
	t.Helper()
	cfg, err := Merge(Options{Axis: AxisOptions{KeyPath: "label"}, Rows: []RowOptions{{KeyPath: "v"}}})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	return cfg.Axis
}

func TestAxisTicks_ExactSpacing(t *testing.T) {
	bounds := Rect{X: 37, Y: 270, W: 313, H: 30}
	for n := 1; n <= 9; n++ {
		rec := newRecorder(t, 400, 300)
		labels := make([]string, n)
		for i := range labels {
			labels[i] = string(rune('a' + i))
		}
		ticks := DrawAxis(rec, bounds, testAxisConfig(t)).Ticks(labelled(labels...))
		if len(ticks) != n {
			t.Fatalf("n=%d: got %d ticks", n, len(ticks))
		}
		for i, tk := range ticks {
			want := bounds.X + (bounds.W/float64(n+1))*float64(i+1)
			if tk.X != want {
				t.Fatalf("n=%d tick %d: x=%v want %v", n, i, tk.X, want)
			}
			if tk.Label != labels[i] {
				t.Fatalf("n=%d tick %d: label=%q want %q", n, i, tk.Label, labels[i])
			}
		}
	}
}

func TestAxisTicks_NoCategoriesDrawsOnlyBaseline(t *testing.T) {
	rec := newRecorder(t, 400, 300)
	ticks := DrawAxis(rec, Rect{X: 100, Y: 270, W: 300, H: 30}, testAxisConfig(t)).Ticks(nil)
	if ticks == nil || len(ticks) != 0 {
		t.Fatalf("expected empty, non-nil ticks, got %#v", ticks)
	}
	if rec.Count("stroke") != 1 || rec.Count("fillText") != 0 {
		t.Fatalf("expected only the baseline, got %v", rec.Ops())
	}
	lt := callsOf(rec, "lineTo")
	if len(lt) != 1 || lt[0].Args[0] != 400 || lt[0].Args[1] != 270 {
		t.Fatalf("baseline should run along the strip top, got %v", lt)
	}
}

func TestAxisTicks_TextGeometry(t *testing.T) {
	rec := newRecorder(t, 400, 300)
	bounds := Rect{X: 100, Y: 270, W: 300, H: 30}
	DrawAxis(rec, bounds, testAxisConfig(t)).Ticks(labelled("a", "b", "c"))

	texts := callsOf(rec, "fillText")
	if len(texts) != 4 {
		t.Fatalf("expected title + 3 labels, got %d", len(texts))
	}
	// surplus 29: tick 8.7, font 14.5, baseline 271+8.7+5.8+14.5
	const eps = 1e-9
	title := texts[0]
	if title.Text != "Pole" || title.Args[0] != 100 || math.Abs(title.Args[1]-300) > eps || title.Args[2] != 75/1.5 {
		t.Fatalf("unexpected title call %v", title)
	}
	if math.Abs(title.Args[3]-14.5) > eps || title.Args[4] != float64(surface.AlignLeft) {
		t.Fatalf("title font/align wrong: %v", title)
	}
	for i, c := range texts[1:] {
		if c.Args[0] != 100+75*float64(i+1) || math.Abs(c.Args[2]-60) > eps || c.Args[4] != float64(surface.AlignCenter) {
			t.Fatalf("label %d call %v", i, c)
		}
	}
	// One move/line pair per tick after the baseline.
	moves := callsOf(rec, "moveTo")
	lines := callsOf(rec, "lineTo")
	if len(moves) != 4 || len(lines) != 4 {
		t.Fatalf("expected baseline + 3 ticks, got %d moves %d lines", len(moves), len(lines))
	}
	if moves[1].Args[1] != 271 || math.Abs(lines[1].Args[1]-(271+8.7)) > eps {
		t.Fatalf("tick mark should run from startY down the tick length: %v %v", moves[1], lines[1])
	}
}

func TestAxisTicks_UnresolvedLabelKeepsTick(t *testing.T) {
	rec := newRecorder(t, 400, 300)
	data := []any{
		map[string]any{"label": "a"},
		map[string]any{"other": 1},
		map[string]any{"label": 7},
	}
	ticks := DrawAxis(rec, Rect{X: 0, Y: 0, W: 400, H: 30}, testAxisConfig(t)).Ticks(data)
	if len(ticks) != 3 {
		t.Fatalf("expected 3 ticks, got %d", len(ticks))
	}
	if ticks[1].Label != "" || ticks[1].X != 200 {
		t.Fatalf("unresolved label should leave an empty label at its slot, got %+v", ticks[1])
	}
	if ticks[2].Label != "7" {
		t.Fatalf("numeric label should render as text, got %q", ticks[2].Label)
	}
}
