// Package keypath resolves dotted key paths ("pole.poleName", "samples.0")
// against loosely typed records such as decoded JSON or spreadsheet rows.
//
// Resolution never coerces: the caller decides what to do with the Kind of
// the returned Value.
package keypath

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind tags the shape of a resolved value.
type Kind int

const (
	KindMissing Kind = iota
	KindScalar
	KindSeries
	KindText
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSeries:
		return "series"
	case KindText:
		return "text"
	case KindOther:
		return "other"
	}
	return "missing"
}

// Value is the tagged result of Resolve. Only the field matching Kind is set;
// Raw always holds the value found at the end of the path.
type Value struct {
	Kind   Kind
	Scalar float64
	Series []float64
	Text   string
	Raw    any
}

// Label renders the value as an axis label. Scalars use the shortest exact
// decimal form; series and other shapes fall back to fmt.
func (v Value) Label() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindScalar:
		return strconv.FormatFloat(v.Scalar, 'f', -1, 64)
	case KindMissing:
		return ""
	}
	return fmt.Sprint(v.Raw)
}

// AccessError reports a path segment that could not be followed.
type AccessError struct {
	Path    string
	Segment string
	Reason  string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("keypath %q: segment %q: %s", e.Path, e.Segment, e.Reason)
}

// Resolve walks record one dot-separated segment at a time and classifies
// the value at the end of path.
func Resolve(record any, path string) (Value, error) {
	cur := record
	for _, seg := range strings.Split(path, ".") {
		next, err := step(cur, seg)
		if err != nil {
			return Value{Kind: KindMissing}, &AccessError{Path: path, Segment: seg, Reason: err.Error()}
		}
		cur = next
	}
	return classify(cur), nil
}

// step follows one segment. Common decoded-JSON shapes are handled without
// reflection.
func step(cur any, seg string) (any, error) {
	switch c := cur.(type) {
	case nil:
		return nil, fmt.Errorf("cannot index nil")
	case map[string]any:
		v, ok := c[seg]
		if !ok {
			return nil, fmt.Errorf("no such key")
		}
		return v, nil
	case []any:
		i, err := index(seg, len(c))
		if err != nil {
			return nil, err
		}
		return c[i], nil
	}

	rv := reflect.ValueOf(cur)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot index nil")
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key type %s is not string", rv.Type().Key())
		}
		v := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, fmt.Errorf("no such key")
		}
		return v.Interface(), nil
	case reflect.Slice, reflect.Array:
		i, err := index(seg, rv.Len())
		if err != nil {
			return nil, err
		}
		return rv.Index(i).Interface(), nil
	case reflect.Struct:
		if f, ok := structField(rv, seg); ok {
			return f.Interface(), nil
		}
		return nil, fmt.Errorf("no such field")
	}
	return nil, fmt.Errorf("cannot index %s", rv.Kind())
}

func index(seg string, n int) (int, error) {
	i, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("not a list index")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index out of range [0,%d)", n)
	}
	return i, nil
}

// structField matches an exported field by name or by its json tag.
func structField(rv reflect.Value, seg string) (reflect.Value, bool) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if f.Name == seg || (tag != "" && tag == seg) {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func classify(v any) Value {
	if f, ok := number(v); ok {
		return Value{Kind: KindScalar, Scalar: f, Raw: v}
	}
	switch x := v.(type) {
	case nil:
		return Value{Kind: KindMissing}
	case string:
		return Value{Kind: KindText, Text: x, Raw: v}
	case []float64:
		return Value{Kind: KindSeries, Series: append([]float64(nil), x...), Raw: v}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		series := make([]float64, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			f, ok := number(rv.Index(i).Interface())
			if !ok {
				return Value{Kind: KindOther, Raw: v}
			}
			series = append(series, f)
		}
		return Value{Kind: KindSeries, Series: series, Raw: v}
	}
	return Value{Kind: KindOther, Raw: v}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
