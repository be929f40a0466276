package chart

import (
	"fmt"
	"math"
	"strconv"
)

// FormatValue renders a plotted value compactly: fewer decimals the larger
// the magnitude.
func FormatValue(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av == 0:
		return "0"
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// FormatPercentage renders a row percentage as "50%".
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(math.Round(p*1000)/10, 'f', -1, 64) + "%"
}

// String is the tooltip text for the hit, e.g. "Speed @ km12: 42.0 (42%)".
func (h Hit) String() string {
	return fmt.Sprintf("%s @ %s: %s (%s)", h.RowTitle, h.Label, FormatValue(h.Point.Value), FormatPercentage(h.Point.Percentage))
}
