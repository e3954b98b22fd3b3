package calculator

import "math"

// MaxDrawdown returns the largest fall from the running peak, as a fraction
// of that peak. Values must be in chronological order; at least two are
// required.
func MaxDrawdown(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, ErrInsufficientData
	}
	peak := math.Inf(-1)
	worst := math.NaN()
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := (peak - v) / peak
		if math.IsNaN(dd) {
			continue
		}
		if math.IsNaN(worst) || dd > worst {
			worst = dd
		}
	}
	if math.IsNaN(worst) {
		return 0, ErrInsufficientData
	}
	return worst, nil
}
