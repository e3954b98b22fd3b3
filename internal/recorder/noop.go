package recorder

import "StockDataset/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *model.RunSummary) error                       { return nil }
func (n *NoopRecorder) RecordPrices(_ string, _ []model.PriceRecord) error        { return nil }
func (n *NoopRecorder) RecordSecurities(_ string, _ []model.Security) error       { return nil }
func (n *NoopRecorder) RecordFundamentals(_ string, _ []model.Fundamentals) error { return nil }
func (n *NoopRecorder) Close() error                                              { return nil }
