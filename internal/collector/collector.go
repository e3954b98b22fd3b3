package collector

import (
	"context"
	"log"
	"strings"
	"time"

	"StockDataset/internal/model"
)

// Options selects and configures a profile source.
type Options struct {
	Provider string // "", "none", "yahoo" or "eodhd"
	APIKey   string
	BaseURL  string
	Proxy    string
	Timeout  time.Duration
}

// NewSource returns the source named by opts.Provider. Unknown providers and
// an EODHD source without an API key fall back to NoopSource.
func NewSource(opts Options) ProfileSource {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", "none":
		return NewNoopSource()
	case "yahoo":
		return NewYahooSource(opts.BaseURL, opts.Proxy, opts.Timeout)
	case "eodhd":
		if opts.APIKey == "" {
			log.Printf("[WARN] eodhd enrichment needs an api key, enrichment disabled")
			return NewNoopSource()
		}
		return NewEODHDSource(opts.BaseURL, opts.APIKey, opts.Proxy, opts.Timeout)
	default:
		log.Printf("[WARN] unknown enrichment provider %q, enrichment disabled", opts.Provider)
		return NewNoopSource()
	}
}

// MockSource returns fixed profiles for development and testing.
type MockSource struct {
	Profiles map[string]*model.CompanyProfile
	Errs     map[string]error
	Calls    []string
}

func (m *MockSource) Name() string    { return "mock" }
func (m *MockSource) Available() bool { return true }

func (m *MockSource) FetchProfile(_ context.Context, symbol string) (*model.CompanyProfile, error) {
	m.Calls = append(m.Calls, symbol)
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if p, ok := m.Profiles[symbol]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}
