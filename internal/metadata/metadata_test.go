package metadata

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDataset/internal/collector"
	"StockDataset/internal/loader"
	"StockDataset/internal/model"
)

func TestTypeFromDir(t *testing.T) {
	assert.Equal(t, model.SecurityETF, TypeFromDir("ETFs"))
	assert.Equal(t, model.SecurityETF, TypeFromDir("my_etf_files"))
	assert.Equal(t, model.SecurityStock, TypeFromDir("Stocks"))
	assert.Equal(t, model.SecurityStock, TypeFromDir("stock"))
	assert.Equal(t, model.SecurityUnknown, TypeFromDir("data"))
	assert.Equal(t, model.SecurityUnknown, TypeFromDir(""))
}

func TestBuildSecurities(t *testing.T) {
	t.Run("one row per symbol, first file wins", func(t *testing.T) {
		files := []string{
			filepath.Join("root", "data", "stocks", "aapl.us.txt"),
			filepath.Join("root", "data", "ETFs", "spy.us.txt"),
			filepath.Join("root", "ETFs", "AAPL_2010.csv"),
			filepath.Join("root", "misc", "xyz.csv"),
		}

		got := BuildSecurities(files)

		assert.Equal(t, []model.Security{
			{Symbol: "AAPL", Type: model.SecurityStock, SourceFile: "aapl.us.txt"},
			{Symbol: "SPY", Type: model.SecurityETF, SourceFile: "spy.us.txt"},
			{Symbol: "XYZ", Type: model.SecurityUnknown, SourceFile: "xyz.csv"},
		}, got)
	})

	t.Run("only the first MaxFiles files count", func(t *testing.T) {
		var files []string
		for i := 0; i < loader.MaxFiles+10; i++ {
			files = append(files, filepath.Join("Stocks", fmt.Sprintf("s%03d.us.txt", i)))
		}

		got := BuildSecurities(files)
		require.Len(t, got, loader.MaxFiles)
		assert.Equal(t, "S199", got[len(got)-1].Symbol)
	})
}

func TestEnrich(t *testing.T) {
	secs := func() []model.Security {
		return []model.Security{{Symbol: "AAPL"}, {Symbol: "SPY"}, {Symbol: "ZZZ"}}
	}

	t.Run("disabled source leaves securities untouched", func(t *testing.T) {
		s := secs()
		assert.False(t, Enrich(context.Background(), collector.NewNoopSource(), s))
		assert.Equal(t, secs(), s)
	})

	t.Run("per-symbol failures leave nulls", func(t *testing.T) {
		src := &collector.MockSource{
			Profiles: map[string]*model.CompanyProfile{
				"AAPL": {Name: null.StringFrom("Apple Inc."), Sector: null.StringFrom("Technology"), Industry: null.StringFrom("Consumer Electronics")},
				"SPY":  {Name: null.StringFrom("SPDR S&P 500 ETF Trust")},
			},
			Errs: map[string]error{"ZZZ": errors.New("connection reset")},
		}
		s := secs()

		assert.True(t, Enrich(context.Background(), src, s))
		assert.Equal(t, []string{"AAPL", "SPY", "ZZZ"}, src.Calls)
		assert.Equal(t, "Apple Inc.", s[0].CompanyName.String)
		assert.Equal(t, "Consumer Electronics", s[0].Industry.String)
		assert.Equal(t, "SPDR S&P 500 ETF Trust", s[1].CompanyName.String)
		assert.False(t, s[1].Sector.Valid)
		assert.False(t, s[2].CompanyName.Valid)
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		src := &collector.MockSource{}
		assert.True(t, Enrich(ctx, src, secs()))
		assert.Empty(t, src.Calls)
	})
}
