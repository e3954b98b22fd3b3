// Package aggregator merges normalized tables into the combined price table
// and derives its split-adjusted view.
package aggregator

import (
	"log"

	"StockDataset/internal/dataset"
)

// AdjustmentKind says where adjusted_close came from.
type AdjustmentKind string

const (
	// FromColumn: an existing adjusted-close column was relabelled.
	FromColumn AdjustmentKind = "column"
	// FromClose: copied from Close. This is NOT a split adjustment.
	FromClose AdjustmentKind = "close_copy"
	// Missing: neither column existed; every value is null.
	Missing AdjustmentKind = "missing"
)

// AdjustmentSource describes how the split-adjusted table was produced.
type AdjustmentSource struct {
	Kind   AdjustmentKind
	Column string // matched candidate when Kind is FromColumn
}

// Approximate reports whether consumers must treat adjusted_close as a
// stand-in rather than a real split-adjusted price.
func (s AdjustmentSource) Approximate() bool {
	return s.Kind != FromColumn
}

// Combine concatenates tables and sorts the result by symbol and date.
func Combine(tables []*dataset.Table) *dataset.Table {
	combined := dataset.Merge(tables...)
	dataset.SortBySymbolDate(combined)
	return combined
}

// SplitAdjusted returns a copy of t carrying an adjusted_close column. The
// input table is not modified.
func SplitAdjusted(t *dataset.Table) (*dataset.Table, AdjustmentSource) {
	out := t.Clone()
	schema := dataset.Resolve(out.Columns)

	switch {
	case dataset.Has(schema.AdjustedClose):
		out.RenameColumn(schema.AdjustedClose, dataset.ColAdjustedClose)
		log.Printf("[INFO] using existing adjusted column: %s", schema.AdjustedCloseName)
		return out, AdjustmentSource{Kind: FromColumn, Column: schema.AdjustedCloseName}

	case dataset.Has(schema.Close):
		closeIdx := schema.Close
		out.AppendColumn(dataset.ColAdjustedClose, func(r dataset.Row) string { return r.Value(closeIdx) })
		log.Printf("[WARN] no adjusted column found, adjusted_close copies Close (not split-adjusted)")
		return out, AdjustmentSource{Kind: FromClose}

	default:
		out.AppendColumn(dataset.ColAdjustedClose, func(dataset.Row) string { return "" })
		log.Printf("[WARN] no Close column found, adjusted_close set to null")
		return out, AdjustmentSource{Kind: Missing}
	}
}
