package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDataset/internal/dataset"
	"StockDataset/internal/model"
)

func day(y int, m time.Month, d int) null.Time {
	return null.TimeFrom(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestPriceRecords(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume", "OpenInt", "symbol", "adjusted_close"},
		Rows: []dataset.Row{
			{Values: []string{"2005-02-25", "11.1", "11.3", "11.0", "11.2", "1200", "0", "AAPL", "11.2"}, Date: day(2005, 2, 25)},
			{Values: []string{"bad", "", "x", "1e3", "12", "12.5", "0", "AAPL", ""}},
		},
	}

	recs := PriceRecords(tbl)
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, "AAPL", first.Symbol)
	assert.True(t, first.Date.Valid)
	assert.True(t, first.Close.Valid)
	assert.True(t, first.Close.Decimal.Equal(decimal.RequireFromString("11.2")))
	assert.Equal(t, null.IntFrom(1200), first.Volume)
	assert.True(t, first.AdjustedClose.Valid)

	second := recs[1]
	assert.False(t, second.Date.Valid)
	assert.False(t, second.Open.Valid)
	assert.False(t, second.High.Valid)
	assert.True(t, second.Low.Decimal.Equal(decimal.NewFromInt(1000)))
	assert.False(t, second.Volume.Valid, "fractional volume is not an integer count")
	assert.False(t, second.AdjustedClose.Valid)
}

func TestPriceRecordsUsesRawAdjustedColumn(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Date", "Close", "Adj Close", "symbol"},
		Rows:    []dataset.Row{{Values: []string{"2020-01-02", "10", "9.5", "X"}, Date: day(2020, 1, 2)}},
	}
	recs := PriceRecords(tbl)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].AdjustedClose.Decimal.Equal(decimal.RequireFromString("9.5")))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(&model.RunSummary{RunID: "x"}))
	assert.NoError(t, r.RecordPrices("x", nil))
	assert.NoError(t, r.RecordSecurities("x", nil))
	assert.NoError(t, r.RecordFundamentals("x", nil))
	assert.NoError(t, r.Close())
}

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "pricedata.db"))
	require.NoError(t, err)
	defer r.Close()

	now := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	require.NoError(t, r.RecordRun(&model.RunSummary{
		RunID: "run-1", StartedAt: now, FinishedAt: now.Add(time.Second),
		Files: 3, Loaded: 2, Skipped: []string{"bad.txt"}, Rows: 10, Symbols: 2,
		AdjustedSource: "close_copy",
	}))

	prices := []model.PriceRecord{
		{Symbol: "AAPL", Date: day(2005, 2, 25), Close: decimal.NewNullDecimal(decimal.RequireFromString("11.2")), Volume: null.IntFrom(1200)},
		{Symbol: "AAPL"},
	}
	require.NoError(t, r.RecordPrices("run-1", prices))

	var (
		n     int
		date  null.String
		cls   decimal.NullDecimal
		vol   null.Int
	)
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM prices`).Scan(&n))
	assert.Equal(t, 2, n)
	require.NoError(t, r.db.QueryRow(`SELECT date, close, volume FROM prices ORDER BY id LIMIT 1`).Scan(&date, &cls, &vol))
	assert.Equal(t, "2005-02-25", date.String)
	assert.True(t, cls.Decimal.Equal(decimal.RequireFromString("11.2")))
	assert.Equal(t, int64(1200), vol.Int64)

	t.Run("dataset tables are replaced on the next run", func(t *testing.T) {
		require.NoError(t, r.RecordPrices("run-2", prices[:1]))
		require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM prices`).Scan(&n))
		assert.Equal(t, 1, n)

		secs := []model.Security{
			{Symbol: "AAPL", Type: model.SecurityStock, SourceFile: "aapl.us.txt", Sector: null.StringFrom("Technology")},
			{Symbol: "SPY", Type: model.SecurityETF, SourceFile: "spy.us.txt"},
		}
		require.NoError(t, r.RecordSecurities("run-2", secs))
		require.NoError(t, r.RecordSecurities("run-2", secs[1:]))
		require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM securities`).Scan(&n))
		assert.Equal(t, 1, n)
	})

	t.Run("fundamentals keep nulls", func(t *testing.T) {
		require.NoError(t, r.RecordFundamentals("run-2", []model.Fundamentals{
			{Symbol: "AAPL", MeanClose: null.FloatFrom(11.2)},
		}))
		var mean, dd null.Float
		require.NoError(t, r.db.QueryRow(`SELECT mean_close, max_drawdown FROM fundamentals WHERE symbol = 'AAPL'`).Scan(&mean, &dd))
		assert.Equal(t, 11.2, mean.Float64)
		assert.False(t, dd.Valid)
	})

	t.Run("runs accumulate", func(t *testing.T) {
		require.NoError(t, r.RecordRun(&model.RunSummary{RunID: "run-2", StartedAt: now, FinishedAt: now}))
		require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n))
		assert.Equal(t, 2, n)
	})
}
