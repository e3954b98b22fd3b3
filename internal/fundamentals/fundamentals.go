// Package fundamentals computes per-symbol summary statistics from the
// combined price table.
package fundamentals

import (
	"sort"

	"github.com/guregu/null/v6"

	"StockDataset/internal/calculator"
	"StockDataset/internal/dataset"
	"StockDataset/internal/model"
)

// Compute returns one Fundamentals row per symbol, in table order. A table
// without a Close column yields no rows.
func Compute(t *dataset.Table) []model.Fundamentals {
	schema := dataset.Resolve(t.Columns)
	if !dataset.Has(schema.Close) {
		return nil
	}

	var out []model.Fundamentals
	for _, g := range groupBySymbol(t, schema.Symbol) {
		out = append(out, computeGroup(g.symbol, g.rows, schema))
	}
	return out
}

type group struct {
	symbol string
	rows   []dataset.Row
}

// groupBySymbol keeps groups in order of first appearance.
func groupBySymbol(t *dataset.Table, symIdx int) []group {
	var groups []group
	pos := make(map[string]int)
	for _, r := range t.Rows {
		s := r.Value(symIdx)
		i, ok := pos[s]
		if !ok {
			i = len(groups)
			pos[s] = i
			groups = append(groups, group{symbol: s})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

func computeGroup(symbol string, rows []dataset.Row, schema dataset.Schema) model.Fundamentals {
	rows = append([]dataset.Row(nil), rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Date, rows[j].Date
		if a.Valid && b.Valid {
			return a.Time.Before(b.Time)
		}
		return a.Valid && !b.Valid
	})

	// Rows without a numeric close are dropped before anything else is measured.
	var closes, volumes []float64
	for _, r := range rows {
		c, ok := calculator.ParseNumber(r.Value(schema.Close))
		if !ok {
			continue
		}
		closes = append(closes, c)
		if dataset.Has(schema.Volume) {
			if v, ok := calculator.ParseNumber(r.Value(schema.Volume)); ok {
				volumes = append(volumes, v)
			}
		}
	}

	returns := calculator.PctChange(closes)
	f := model.Fundamentals{Symbol: symbol}
	f.MeanClose = nullable(calculator.Mean(closes))
	f.StdClose = nullable(calculator.SampleStdDev(closes))
	f.AvgDailyReturn = nullable(calculator.Mean(returns))
	f.AnnualizedVolatility = nullable(calculator.AnnualizedVolatility(returns))
	f.MaxDrawdown = nullable(calculator.MaxDrawdown(closes))
	f.AvgVolume = nullable(calculator.Mean(volumes))
	return f
}

func nullable(v float64, err error) null.Float {
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom(v)
}
