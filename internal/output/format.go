package output

import (
	"math"
	"strconv"
	"strings"

	"github.com/guregu/null/v6"
)

// csvFloat renders a nullable float the way the published dataset has always
// spelled numbers: shortest round-trip digits, a trailing ".0" on integral
// values, exponent form below 1e-4 or from 1e16 up. Null is an empty cell.
type csvFloat struct{ null.Float }

func (f csvFloat) MarshalCSV() (string, error) {
	if !f.Valid {
		return "", nil
	}
	return FormatFloat(f.Float64), nil
}

// csvString renders a nullable string; null is an empty cell.
type csvString struct{ null.String }

func (s csvString) MarshalCSV() (string, error) {
	if !s.Valid {
		return "", nil
	}
	return s.String, nil
}

// FormatFloat formats v for a CSV cell.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if v != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
