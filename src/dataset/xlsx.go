package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// listSuffix marks a header whose cells hold ';'-separated numbers.
const listSuffix = "[]"

// LoadXLSX reads one sheet (the first when sheet is empty). The first row
// holds key paths: "pole.name" builds nested records, "speeds[]" turns
// "1;2.5;3" into a list of numbers. Blank rows are skipped.
func LoadXLSX(path, sheet string) ([]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []any{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	records := make([]any, 0, len(rows)-1)
	for rowIdx, row := range rows[1:] {
		rec := map[string]any{}
		hasData := false
		for colIdx, cellValue := range row {
			if colIdx >= len(headers) || headers[colIdx] == "" || strings.TrimSpace(cellValue) == "" {
				continue
			}
			hasData = true
			key := headers[colIdx]
			var v any
			if strings.HasSuffix(key, listSuffix) {
				key = strings.TrimSuffix(key, listSuffix)
				v, err = parseList(cellValue)
			} else {
				v = parseValue(cellValue)
			}
			if err == nil {
				err = setPath(rec, key, v)
			}
			if err != nil {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				return nil, fmt.Errorf("%s!%s: %w", sheet, cellName, err)
			}
		}
		if hasData {
			records = append(records, rec)
		}
	}
	return records, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func parseList(s string) ([]any, error) {
	var out []any
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("list element %q is not a number", part)
		}
		out = append(out, f)
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

// setPath stores v under a dotted key, creating nested maps on the way.
func setPath(rec map[string]any, key string, v any) error {
	segs := strings.Split(key, ".")
	cur := rec
	for _, seg := range segs[:len(segs)-1] {
		switch next := cur[seg].(type) {
		case nil:
			m := map[string]any{}
			cur[seg] = m
			cur = m
		case map[string]any:
			cur = next
		default:
			return fmt.Errorf("key %q: %q already holds a value", key, seg)
		}
	}
	last := segs[len(segs)-1]
	if _, ok := cur[last].(map[string]any); ok {
		return fmt.Errorf("key %q: already holds nested keys", key)
	}
	cur[last] = v
	return nil
}
