package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"StockDataset/internal/model"
)

// DefaultEODHDURL is the EODHD API host.
const DefaultEODHDURL = "https://eodhd.com"

// EODHDSource implements ProfileSource using the EODHD fundamentals API.
type EODHDSource struct {
	BaseURL  string
	APIKey   string
	Exchange string // EODHD exchange suffix, "US" for the US listings
	Client   *http.Client
}

// NewEODHDSource creates an EODHD profile source with optional proxy support.
func NewEODHDSource(baseURL, apiKey, proxyURL string, timeout time.Duration) *EODHDSource {
	if baseURL == "" {
		baseURL = DefaultEODHDURL
	}
	return &EODHDSource{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Exchange: "US",
		Client:   newHTTPClient(proxyURL, timeout),
	}
}

func (s *EODHDSource) Name() string    { return "eodhd" }
func (s *EODHDSource) Available() bool { return s.APIKey != "" }

// eodhdGeneral is the "General" section of /api/fundamentals.
type eodhdGeneral struct {
	Code     string `json:"Code"`
	Name     string `json:"Name"`
	Sector   string `json:"Sector"`
	Industry string `json:"Industry"`
}

func (s *EODHDSource) FetchProfile(ctx context.Context, symbol string) (*model.CompanyProfile, error) {
	q := url.Values{}
	q.Set("api_token", s.APIKey)
	q.Set("fmt", "json")
	q.Set("filter", "General")
	endpoint := fmt.Sprintf("%s/api/fundamentals/%s.%s?%s",
		s.BaseURL, url.PathEscape(symbol), s.Exchange, q.Encode())

	var general eodhdGeneral
	if err := getJSON(ctx, s.Client, endpoint, nil, &general); err != nil {
		return nil, fmt.Errorf("eodhd %s: %w", symbol, err)
	}
	return &model.CompanyProfile{
		Name:     nonEmpty(general.Name),
		Sector:   nonEmpty(general.Sector),
		Industry: nonEmpty(general.Industry),
	}, nil
}
