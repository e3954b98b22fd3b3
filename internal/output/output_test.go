package output

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDataset/internal/dataset"
	"StockDataset/internal/model"
)

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		107.25:      "107.25",
		100:         "100.0",
		0:           "0.0",
		-3:          "-3.0",
		0.1:         "0.1",
		0.00012:     "0.00012",
		0.00001:     "1e-05",
		1.5e-7:      "1.5e-07",
		1234567.5:   "1234567.5",
		1e16:        "1e+16",
		math.Inf(1): "inf",
	}
	for v, want := range cases {
		assert.Equal(t, want, FormatFloat(v), "%v", v)
	}
	assert.Equal(t, "-inf", FormatFloat(math.Inf(-1)))
	assert.Equal(t, "", FormatFloat(math.NaN()))
}

func TestNewWriterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewWriter(dir)
	require.NoError(t, err)
	info, err := os.Stat(w.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriterPrices(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	tbl := &dataset.Table{
		Columns: []string{"Date", "Close", "symbol"},
		Rows: []dataset.Row{{
			Values: []string{"2005-02-25", "11.2", "AAPL"},
			Date:   null.TimeFrom(time.Date(2005, 2, 25, 0, 0, 0, 0, time.UTC)),
		}},
	}
	path, err := w.Prices(PricesFile, tbl)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir, PricesFile), path)
	assert.Equal(t, "Date,Close,symbol\n2005-02-25,11.2,AAPL\n", read(t, path))
}

func TestWriterSecurities(t *testing.T) {
	secs := []model.Security{
		{Symbol: "AAPL", Type: model.SecurityStock, SourceFile: "aapl.us.txt",
			CompanyName: null.StringFrom("Apple Inc."), Sector: null.StringFrom("Technology")},
		{Symbol: "SPY", Type: model.SecurityETF, SourceFile: "spy.us.txt"},
	}

	t.Run("basic fields only", func(t *testing.T) {
		w, err := NewWriter(t.TempDir())
		require.NoError(t, err)
		path, err := w.Securities(secs, false)
		require.NoError(t, err)
		assert.Equal(t, "symbol,type,source_file\nAAPL,Stock,aapl.us.txt\nSPY,ETF,spy.us.txt\n", read(t, path))
	})

	t.Run("with enrichment columns", func(t *testing.T) {
		w, err := NewWriter(t.TempDir())
		require.NoError(t, err)
		path, err := w.Securities(secs, true)
		require.NoError(t, err)
		assert.Equal(t,
			"symbol,type,source_file,company_name,sector,industry\n"+
				"AAPL,Stock,aapl.us.txt,Apple Inc.,Technology,\n"+
				"SPY,ETF,spy.us.txt,,,\n",
			read(t, path))
	})
}

func TestWriterFundamentals(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	path, err := w.Fundamentals([]model.Fundamentals{
		{
			Symbol:         "SYN",
			MeanClose:      null.FloatFrom(107.25),
			StdClose:       null.FloatFrom(9.5),
			AvgDailyReturn: null.FloatFrom(0.5),
			MaxDrawdown:    null.FloatFrom(0.1),
			AvgVolume:      null.FloatFrom(1000),
		},
		{Symbol: "ONE", MeanClose: null.FloatFrom(50)},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"symbol,mean_close,std_close,avg_daily_return,annualized_volatility,max_drawdown,avg_volume\n"+
			"SYN,107.25,9.5,0.5,,0.1,1000.0\n"+
			"ONE,50.0,,,,,\n",
		read(t, path))
}
