package keypath

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestResolve_NestedMaps(t *testing.T) {
	rec := map[string]any{
		"pole": map[string]any{"poleName": "P-17", "height": 12.5},
	}
	v, err := Resolve(rec, "pole.poleName")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindText || v.Text != "P-17" {
		t.Fatalf("got %+v want text P-17", v)
	}
	v, err = Resolve(rec, "pole.height")
	if err != nil || v.Kind != KindScalar || v.Scalar != 12.5 {
		t.Fatalf("got %+v, %v want scalar 12.5", v, err)
	}
}

func TestResolve_Series(t *testing.T) {
	rec := map[string]any{"samples": []any{1.0, 2, int64(3)}}
	v, err := Resolve(rec, "samples")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindSeries || len(v.Series) != 3 || v.Series[2] != 3 {
		t.Fatalf("got %+v want series [1 2 3]", v)
	}

	empty, err := Resolve(map[string]any{"samples": []any{}}, "samples")
	if err != nil || empty.Kind != KindSeries || len(empty.Series) != 0 {
		t.Fatalf("empty list should be an empty series, got %+v, %v", empty, err)
	}

	mixed, err := Resolve(map[string]any{"samples": []any{1.0, "x"}}, "samples")
	if err != nil || mixed.Kind != KindOther {
		t.Fatalf("mixed list should be KindOther, got %+v, %v", mixed, err)
	}
}

func TestResolve_ListIndex(t *testing.T) {
	rec := map[string]any{"samples": []any{4.0, 5.0}}
	v, err := Resolve(rec, "samples.1")
	if err != nil || v.Kind != KindScalar || v.Scalar != 5 {
		t.Fatalf("got %+v, %v want scalar 5", v, err)
	}
	if _, err := Resolve(rec, "samples.2"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, err := Resolve(rec, "samples.first"); err == nil {
		t.Fatalf("expected non-numeric index error")
	}
}

func TestResolve_AccessErrors(t *testing.T) {
	rec := map[string]any{"v": 3.0, "pole": map[string]any{}}
	cases := []struct {
		path    string
		segment string
	}{
		{"missing", "missing"},
		{"v.deeper", "deeper"},
		{"pole.poleName", "poleName"},
		{"", ""},
	}
	for _, c := range cases {
		v, err := Resolve(rec, c.path)
		var ae *AccessError
		if !errors.As(err, &ae) {
			t.Fatalf("path %q: expected *AccessError, got %v", c.path, err)
		}
		if ae.Segment != c.segment || ae.Path != c.path {
			t.Fatalf("path %q: got segment %q path %q", c.path, ae.Segment, ae.Path)
		}
		if v.Kind != KindMissing {
			t.Fatalf("path %q: failed resolution should be KindMissing, got %v", c.path, v.Kind)
		}
	}
}

func TestResolve_NilIsMissing(t *testing.T) {
	v, err := Resolve(map[string]any{"v": nil}, "v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindMissing {
		t.Fatalf("nil leaf should be missing, got %v", v.Kind)
	}
	if _, err := Resolve(map[string]any{"v": nil}, "v.x"); err == nil {
		t.Fatalf("indexing through nil should fail")
	}
}

type pole struct {
	Name    string    `json:"poleName"`
	Heights []float64 `json:"heights"`
	Tilt    float32
}

func TestResolve_StructsAndTypedMaps(t *testing.T) {
	rec := map[string]any{"pole": &pole{Name: "A1", Heights: []float64{1, 2}, Tilt: 0.5}}
	if v, err := Resolve(rec, "pole.poleName"); err != nil || v.Text != "A1" {
		t.Fatalf("json tag lookup: got %+v, %v", v, err)
	}
	if v, err := Resolve(rec, "pole.Name"); err != nil || v.Text != "A1" {
		t.Fatalf("field name lookup: got %+v, %v", v, err)
	}
	if v, err := Resolve(rec, "pole.heights"); err != nil || v.Kind != KindSeries || len(v.Series) != 2 {
		t.Fatalf("typed slice: got %+v, %v", v, err)
	}
	if v, err := Resolve(rec, "pole.Tilt"); err != nil || v.Kind != KindScalar || v.Scalar != 0.5 {
		t.Fatalf("float32 field: got %+v, %v", v, err)
	}

	typed := map[string]map[string]int{"load": {"max": 7}}
	if v, err := Resolve(typed, "load.max"); err != nil || v.Scalar != 7 {
		t.Fatalf("typed maps: got %+v, %v", v, err)
	}
}

func TestResolve_JSONNumber(t *testing.T) {
	rec := map[string]any{"v": json.Number("42.5")}
	v, err := Resolve(rec, "v")
	if err != nil || v.Kind != KindScalar || v.Scalar != 42.5 {
		t.Fatalf("got %+v, %v", v, err)
	}
}

func TestValueLabel(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Value{Kind: KindText, Text: "P-1"}, "P-1"},
		{Value{Kind: KindScalar, Scalar: 12}, "12"},
		{Value{Kind: KindScalar, Scalar: 0.25}, "0.25"},
		{Value{Kind: KindMissing}, ""},
		{Value{Kind: KindOther, Raw: true}, "true"},
	}
	for _, c := range cases {
		if got := c.v.Label(); got != c.want {
			t.Fatalf("Label(%+v) = %q want %q", c.v, got, c.want)
		}
	}
}
