// Package dataset holds the in-memory price table shared by every build stage.
//
// Cells are carried as the exact text read from the source files; an empty
// string is a null. Only the Date column is typed, through Row.Date, so that
// sorting and rendering do not depend on how each file spelled its dates.
package dataset

import "github.com/guregu/null/v6"

// Canonical column names.
const (
	ColDate          = "Date"
	ColOpen          = "Open"
	ColHigh          = "High"
	ColLow           = "Low"
	ColClose         = "Close"
	ColVolume        = "Volume"
	ColSymbol        = "symbol"
	ColAdjustedClose = "adjusted_close"
)

// AdjustedCloseCandidates lists the accepted adjusted-close spellings in
// priority order. Matching is exact.
var AdjustedCloseCandidates = []string{"Adj Close", "Adj_Close", "AdjClose", "Adjusted Close", "adjusted_close"}

// Row is one price row. Values is aligned with the owning table's Columns.
type Row struct {
	Values []string
	Date   null.Time
}

// Table is a rectangular set of rows under a shared column list.
type Table struct {
	Columns []string
	Rows    []Row
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at column i of row r, or "" when i is out of range.
func (r Row) Value(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = Row{Values: append([]string(nil), r.Values...), Date: r.Date}
	}
	return out
}

// AppendColumn adds a column at the end, filling each row with value(row).
func (t *Table) AppendColumn(name string, value func(Row) string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i].Values = append(t.Rows[i].Values, value(t.Rows[i]))
	}
}

// RenameColumn relabels the column at index i. Values are untouched.
func (t *Table) RenameColumn(i int, name string) {
	t.Columns[i] = name
}

// Symbols returns the distinct symbols in table order.
func (t *Table) Symbols() []string {
	idx := t.ColumnIndex(ColSymbol)
	if idx < 0 {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		s := r.Value(idx)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
