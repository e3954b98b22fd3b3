package recorder

import "StockDataset/internal/model"

// Recorder mirrors a finished build into queryable storage. The CSV files
// stay authoritative; the dataset tables hold only the latest run.
type Recorder interface {
	RecordRun(run *model.RunSummary) error
	RecordPrices(runID string, prices []model.PriceRecord) error
	RecordSecurities(runID string, secs []model.Security) error
	RecordFundamentals(runID string, funds []model.Fundamentals) error
	Close() error
}
