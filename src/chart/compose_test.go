package chart

import (
	"testing"
)

func testRows(t *testing.T, n int) []RowConfig {
	t.Helper()
	opts := Options{}
	for i := 0; i < n; i++ {
		opts.Rows = append(opts.Rows, RowOptions{Title: string(rune('A' + i)), KeyPath: "v"})
	}
	cfg, err := Merge(opts)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	return cfg.Rows
}

func TestCompose_RowPartition(t *testing.T) {
	rec := newRecorder(t, 400, 330)
	c := Compose(rec, Rect{W: 400, H: 300}, ComposeOptions{OffsetLeft: 100, Rows: testRows(t, 3), ScaleAreaTop: 300, Grid: DefaultGrid()})
	if c.RowHeight() != 100 {
		t.Fatalf("row height = %v want 100", c.RowHeight())
	}
	for i := 0; i < 3; i++ {
		rb := c.RowBounds(i)
		if rb.Y != 100*float64(i) || rb.H != 100 || rb.X != 100 || rb.W != 300 {
			t.Fatalf("row %d bounds %v", i, rb)
		}
	}

	titles := callsOf(rec, "fillText")
	if len(titles) != 3 {
		t.Fatalf("expected 3 titles, got %d", len(titles))
	}
	for i, tc := range titles {
		wantY := (100.0+12)/2 + 100*float64(i)
		if tc.Text != string(rune('A'+i)) || tc.Args[0] != 80 || tc.Args[1] != wantY || tc.Args[2] != 80 || tc.Args[3] != 12 {
			t.Fatalf("title %d call %v", i, tc)
		}
	}
}

func TestCompose_UnevenPartitionIsExact(t *testing.T) {
	rec := newRecorder(t, 400, 300)
	c := Compose(rec, Rect{W: 400, H: 270}, ComposeOptions{OffsetLeft: 100, Rows: testRows(t, 7), ScaleAreaTop: 270, Grid: DefaultGrid()})
	if c.RowHeight() != 270.0/7 {
		t.Fatalf("row height = %v want %v", c.RowHeight(), 270.0/7)
	}
	rh := 270.0 / 7
	if got := c.RowBounds(6).Y; got != rh*6 {
		t.Fatalf("last row y = %v", got)
	}
}

func TestCompose_Borders(t *testing.T) {
	cases := []struct {
		name     string
		scaleTop float64
		want     bool
	}{
		{"flush with axis", 300, false},
		{"gap of exactly 1%", 301, false},
		{"gap above 1%", 301.5, true},
		{"large gap", 350, true},
	}
	for _, tc := range cases {
		rec := newRecorder(t, 400, 400)
		c := Compose(rec, Rect{W: 400, H: 300}, ComposeOptions{OffsetLeft: 100, Rows: testRows(t, 3), ScaleAreaTop: tc.scaleTop, Grid: DefaultGrid()})
		if got := c.LastBottomBorder(); got != tc.want {
			t.Fatalf("%s: LastBottomBorder=%v want %v", tc.name, got, tc.want)
		}
		// Borders are the solid strokes: y=1 on the first row, bottoms at 99, 199 (and 299).
		var borderYs []float64
		for _, m := range callsOf(rec, "moveTo") {
			y := m.Args[1]
			if y == 1 || y == 99 || y == 199 || y == 299 {
				borderYs = append(borderYs, y)
			}
		}
		want := 3
		if tc.want {
			want = 4
		}
		if len(borderYs) != want {
			t.Fatalf("%s: border lines at %v, want %d", tc.name, borderYs, want)
		}
	}
}

func TestCompose_RenderIndexesRowsThenCategories(t *testing.T) {
	rec := newRecorder(t, 400, 300)
	rows := testRows(t, 2)
	rows[1].KeyPath = "w"
	c := Compose(rec, Rect{W: 400, H: 200}, ComposeOptions{OffsetLeft: 100, Rows: rows, ScaleAreaTop: 200, Grid: DefaultGrid()})
	ticks := []TickPoint{{Label: "a", X: 200}, {Label: "b", X: 300}}
	data := []any{
		map[string]any{"v": 0, "w": 100},
		map[string]any{"v": 100},
	}
	got := c.Render(ticks, data)
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 2 {
		t.Fatalf("unexpected shape %+v", got)
	}
	if got[0][0].Points[0].Y != 100 || got[0][1].Points[0].Y != 0 {
		t.Fatalf("row 0 points %+v", got[0])
	}
	if got[1][0].Points[0].Y != 100 || len(got[1][1].Points) != 0 {
		t.Fatalf("row 1 should sit below row 0 and skip b, got %+v", got[1])
	}
}
