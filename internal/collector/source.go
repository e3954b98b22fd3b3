package collector

import (
	"context"
	"errors"

	"StockDataset/internal/model"
)

// ErrNotFound is returned when a provider knows nothing about a symbol.
var ErrNotFound = errors.New("symbol not found")

// ProfileSource looks up company name, sector and industry by ticker.
type ProfileSource interface {
	FetchProfile(ctx context.Context, symbol string) (*model.CompanyProfile, error)
	// Available is false when no provider is configured; callers skip
	// enrichment entirely instead of calling FetchProfile.
	Available() bool
	Name() string
}

// NoopSource is used when enrichment is disabled.
type NoopSource struct{}

func NewNoopSource() *NoopSource { return &NoopSource{} }

func (*NoopSource) Name() string    { return "none" }
func (*NoopSource) Available() bool { return false }

func (*NoopSource) FetchProfile(context.Context, string) (*model.CompanyProfile, error) {
	return nil, ErrNotFound
}
