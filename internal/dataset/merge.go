package dataset

import (
	"sort"
	"time"
)

// Merge concatenates tables under the union of their columns. Columns keep
// the order in which they were first seen; cells for columns a table lacks
// are null. The row count is the sum of the inputs' row counts.
func Merge(tables ...*Table) *Table {
	out := &Table{}
	pos := make(map[string]int)
	total := 0
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := pos[c]; !ok {
				pos[c] = len(out.Columns)
				out.Columns = append(out.Columns, c)
			}
		}
		total += len(t.Rows)
	}

	out.Rows = make([]Row, 0, total)
	for _, t := range tables {
		target := make([]int, len(t.Columns))
		for i, c := range t.Columns {
			target[i] = pos[c]
		}
		for _, r := range t.Rows {
			values := make([]string, len(out.Columns))
			for i, v := range r.Values {
				if i < len(target) {
					values[target[i]] = v
				}
			}
			out.Rows = append(out.Rows, Row{Values: values, Date: r.Date})
		}
	}
	return out
}

// SortBySymbolDate orders rows by symbol, then date. Rows without a date go
// last within their symbol; ties keep their input order.
func SortBySymbolDate(t *Table) {
	sym := t.ColumnIndex(ColSymbol)
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if sa, sb := a.Value(sym), b.Value(sym); sa != sb {
			return sa < sb
		}
		return dateLess(a.Date.Valid, a.Date.Time, b.Date.Valid, b.Date.Time)
	})
}

func dateLess(aValid bool, a time.Time, bValid bool, b time.Time) bool {
	switch {
	case aValid && bValid:
		return a.Before(b)
	case aValid:
		return true
	default:
		return false
	}
}
