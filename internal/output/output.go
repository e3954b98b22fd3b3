// Package output writes the four dataset files.
package output

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"StockDataset/internal/dataset"
	"StockDataset/internal/model"
)

// Output file names.
const (
	PricesFile              = "prices.csv"
	SplitAdjustedPricesFile = "prices-split-adjusted.csv"
	SecuritiesFile          = "securities.csv"
	FundamentalsFile        = "fundamentals.csv"
)

type securityRow struct {
	Symbol     string `csv:"symbol"`
	Type       string `csv:"type"`
	SourceFile string `csv:"source_file"`
}

type enrichedSecurityRow struct {
	Symbol      string    `csv:"symbol"`
	Type        string    `csv:"type"`
	SourceFile  string    `csv:"source_file"`
	CompanyName csvString `csv:"company_name"`
	Sector      csvString `csv:"sector"`
	Industry    csvString `csv:"industry"`
}

type fundamentalsRow struct {
	Symbol               string   `csv:"symbol"`
	MeanClose            csvFloat `csv:"mean_close"`
	StdClose             csvFloat `csv:"std_close"`
	AvgDailyReturn       csvFloat `csv:"avg_daily_return"`
	AnnualizedVolatility csvFloat `csv:"annualized_volatility"`
	MaxDrawdown          csvFloat `csv:"max_drawdown"`
	AvgVolume            csvFloat `csv:"avg_volume"`
}

// Writer writes dataset files into one directory.
type Writer struct {
	Dir string
}

// NewWriter creates dir if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{Dir: dir}, nil
}

// Prices writes a price table under name.
func (w *Writer) Prices(name string, t *dataset.Table) (string, error) {
	return w.create(name, func(f *os.File) error {
		return dataset.WriteCSV(f, t)
	})
}

// Securities writes securities.csv. Enrichment columns are present only when
// enriched is true.
func (w *Writer) Securities(secs []model.Security, enriched bool) (string, error) {
	var rows any
	if enriched {
		rs := make([]enrichedSecurityRow, len(secs))
		for i, s := range secs {
			rs[i] = enrichedSecurityRow{
				Symbol:      s.Symbol,
				Type:        string(s.Type),
				SourceFile:  s.SourceFile,
				CompanyName: csvString{s.CompanyName},
				Sector:      csvString{s.Sector},
				Industry:    csvString{s.Industry},
			}
		}
		rows = rs
	} else {
		rs := make([]securityRow, len(secs))
		for i, s := range secs {
			rs[i] = securityRow{Symbol: s.Symbol, Type: string(s.Type), SourceFile: s.SourceFile}
		}
		rows = rs
	}
	return w.create(SecuritiesFile, func(f *os.File) error {
		return gocsv.Marshal(rows, f)
	})
}

// Fundamentals writes fundamentals.csv.
func (w *Writer) Fundamentals(funds []model.Fundamentals) (string, error) {
	rows := make([]fundamentalsRow, len(funds))
	for i, f := range funds {
		rows[i] = fundamentalsRow{
			Symbol:               f.Symbol,
			MeanClose:            csvFloat{f.MeanClose},
			StdClose:             csvFloat{f.StdClose},
			AvgDailyReturn:       csvFloat{f.AvgDailyReturn},
			AnnualizedVolatility: csvFloat{f.AnnualizedVolatility},
			MaxDrawdown:          csvFloat{f.MaxDrawdown},
			AvgVolume:            csvFloat{f.AvgVolume},
		}
	}
	return w.create(FundamentalsFile, func(f *os.File) error {
		return gocsv.Marshal(rows, f)
	})
}

func (w *Writer) create(name string, write func(*os.File) error) (string, error) {
	path := filepath.Join(w.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	log.Printf("[INFO] saved %s", path)
	return path, nil
}
