package recorder

import (
	"math"
	"strings"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"StockDataset/internal/calculator"
	"StockDataset/internal/dataset"
	"StockDataset/internal/model"
)

// PriceRecords types the rows of a price table. Cells that do not parse as
// numbers become nulls; the source text is not kept.
func PriceRecords(t *dataset.Table) []model.PriceRecord {
	s := dataset.Resolve(t.Columns)
	if dataset.Has(t.ColumnIndex(dataset.ColAdjustedClose)) {
		s.AdjustedClose = t.ColumnIndex(dataset.ColAdjustedClose)
	}

	out := make([]model.PriceRecord, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = model.PriceRecord{
			Symbol:        r.Value(s.Symbol),
			Date:          r.Date,
			Open:          parseDecimal(r.Value(s.Open)),
			High:          parseDecimal(r.Value(s.High)),
			Low:           parseDecimal(r.Value(s.Low)),
			Close:         parseDecimal(r.Value(s.Close)),
			Volume:        parseVolume(r.Value(s.Volume)),
			AdjustedClose: parseDecimal(r.Value(s.AdjustedClose)),
		}
	}
	return out
}

func parseDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func parseVolume(s string) null.Int {
	v, ok := calculator.ParseNumber(s)
	if !ok || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) >= 1<<53 {
		return null.Int{}
	}
	return null.IntFrom(int64(v))
}
