package calculator

import "math"

// PctChange returns the simple return between consecutive values:
// (v[t] - v[t-1]) / v[t-1]. A zero base gives ±Inf; 0/0 (NaN) is dropped.
func PctChange(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		r := (values[i] - values[i-1]) / values[i-1]
		if math.IsNaN(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
