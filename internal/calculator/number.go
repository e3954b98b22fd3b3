package calculator

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber coerces a table cell to a float. Blank, non-numeric and NaN
// cells report ok=false; infinities are kept.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
