package fundamentals

import (
	"math"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDataset/internal/dataset"
)

func day(d int) null.Time {
	return null.TimeFrom(time.Date(2022, 6, d, 0, 0, 0, 0, time.UTC))
}

func prices(symbol string, closes ...string) []dataset.Row {
	rows := make([]dataset.Row, len(closes))
	for i, c := range closes {
		rows[i] = dataset.Row{Values: []string{"", c, "1000", symbol}, Date: day(i + 1)}
	}
	return rows
}

var columns = []string{"Date", "Close", "Volume", "symbol"}

func TestComputeSyntheticSeries(t *testing.T) {
	tbl := &dataset.Table{Columns: columns, Rows: prices("SYN", "100", "110", "99", "120")}

	got := Compute(tbl)
	require.Len(t, got, 1)
	f := got[0]

	assert.Equal(t, "SYN", f.Symbol)
	assert.InDelta(t, 107.25, f.MeanClose.Float64, 1e-9)

	returns := []float64{0.10, -0.10, 21.0 / 99.0}
	mean := (returns[0] + returns[1] + returns[2]) / 3
	assert.InDelta(t, mean, f.AvgDailyReturn.Float64, 1e-12)

	var ss float64
	for _, r := range returns {
		ss += (r - mean) * (r - mean)
	}
	assert.InDelta(t, math.Sqrt(ss/2)*math.Sqrt(252), f.AnnualizedVolatility.Float64, 1e-12)
	assert.InDelta(t, 0.1, f.MaxDrawdown.Float64, 1e-12)
	assert.InDelta(t, 1000, f.AvgVolume.Float64, 1e-12)
	assert.True(t, f.StdClose.Valid)
}

func TestComputeSortsEachGroupByDate(t *testing.T) {
	rows := prices("SYN", "100", "110", "99", "120")
	rows[0], rows[3] = rows[3], rows[0]
	tbl := &dataset.Table{Columns: columns, Rows: rows}

	f := Compute(tbl)[0]
	assert.InDelta(t, 0.1, f.MaxDrawdown.Float64, 1e-12)
}

func TestComputeSparseGroups(t *testing.T) {
	t.Run("single close", func(t *testing.T) {
		f := Compute(&dataset.Table{Columns: columns, Rows: prices("ONE", "50")})[0]
		assert.InDelta(t, 50, f.MeanClose.Float64, 1e-12)
		assert.False(t, f.StdClose.Valid)
		assert.False(t, f.AvgDailyReturn.Valid)
		assert.False(t, f.AnnualizedVolatility.Valid)
		assert.False(t, f.MaxDrawdown.Valid)
	})

	t.Run("no numeric close at all", func(t *testing.T) {
		f := Compute(&dataset.Table{Columns: columns, Rows: prices("NIL", "", "n/a")})[0]
		assert.Equal(t, "NIL", f.Symbol)
		assert.False(t, f.MeanClose.Valid)
		assert.False(t, f.MaxDrawdown.Valid)
		assert.False(t, f.AvgVolume.Valid, "volume only counts rows that kept a close")
	})

	t.Run("null closes are dropped before returns", func(t *testing.T) {
		f := Compute(&dataset.Table{Columns: columns, Rows: prices("GAP", "100", "", "110")})[0]
		assert.InDelta(t, 0.10, f.AvgDailyReturn.Float64, 1e-12)
		assert.False(t, f.AnnualizedVolatility.Valid, "one return has no deviation")
		assert.InDelta(t, 0.0, f.MaxDrawdown.Float64, 1e-12)
	})
}

func TestComputeVolume(t *testing.T) {
	t.Run("missing Volume column", func(t *testing.T) {
		tbl := &dataset.Table{
			Columns: []string{"Date", "Close", "symbol"},
			Rows: []dataset.Row{
				{Values: []string{"", "1", "A"}, Date: day(1)},
				{Values: []string{"", "2", "A"}, Date: day(2)},
			},
		}
		f := Compute(tbl)[0]
		assert.False(t, f.AvgVolume.Valid)
		assert.True(t, f.MeanClose.Valid)
	})

	t.Run("non numeric volumes are ignored", func(t *testing.T) {
		rows := prices("V", "1", "2", "3")
		rows[1].Values[2] = "x"
		rows[2].Values[2] = "2000"
		f := Compute(&dataset.Table{Columns: columns, Rows: rows})[0]
		assert.InDelta(t, 1500, f.AvgVolume.Float64, 1e-12)
	})
}

func TestComputeWithoutCloseColumn(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Date", "Open", "symbol"},
		Rows:    []dataset.Row{{Values: []string{"", "1", "A"}, Date: day(1)}},
	}
	assert.Empty(t, Compute(tbl))
}

func TestComputeKeepsSymbolOrder(t *testing.T) {
	var rows []dataset.Row
	rows = append(rows, prices("AAA", "1", "2")...)
	rows = append(rows, prices("BBB", "3", "4")...)
	rows = append(rows, prices("CCC", "5")...)

	got := Compute(&dataset.Table{Columns: columns, Rows: rows})
	require.Len(t, got, 3)
	assert.Equal(t, "AAA", got[0].Symbol)
	assert.Equal(t, "BBB", got[1].Symbol)
	assert.Equal(t, "CCC", got[2].Symbol)
}
