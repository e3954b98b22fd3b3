package calculator

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a statistic is undefined for the
// number of observations given.
var ErrInsufficientData = errors.New("not enough data")

// TradingDaysPerYear scales daily volatility to an annual figure.
const TradingDaysPerYear = 252

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// SampleStdDev returns the sample standard deviation (n-1 denominator).
// At least two values are required.
func SampleStdDev(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, ErrInsufficientData
	}
	mean, _ := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1)), nil
}

// AnnualizedVolatility scales the sample deviation of daily returns by
// sqrt(TradingDaysPerYear).
func AnnualizedVolatility(returns []float64) (float64, error) {
	sd, err := SampleStdDev(returns)
	if err != nil {
		return 0, err
	}
	return sd * math.Sqrt(TradingDaysPerYear), nil
}
