package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/guregu/null/v6"

	"StockDataset/internal/model"
)

const (
	// DefaultYahooURL is the public Yahoo Finance API host.
	DefaultYahooURL = "https://query1.finance.yahoo.com"
	// DefaultYahooCookieURL hands out the session cookie the crumb is bound to.
	DefaultYahooCookieURL = "https://fc.yahoo.com"
)

var yahooHeader = http.Header{"User-Agent": []string{"Mozilla/5.0"}}

// YahooSource implements ProfileSource using the Yahoo Finance quoteSummary
// API. quoteSummary needs a session cookie plus a matching crumb token; both
// are fetched on first use and refreshed once when Yahoo answers 401.
type YahooSource struct {
	BaseURL   string
	CookieURL string
	Client    *http.Client

	mu    sync.Mutex
	crumb string
}

// NewYahooSource creates a Yahoo profile source with optional proxy support.
func NewYahooSource(baseURL, proxyURL string, timeout time.Duration) *YahooSource {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	client := newHTTPClient(proxyURL, timeout)
	client.Jar, _ = cookiejar.New(nil)
	return &YahooSource{
		BaseURL:   baseURL,
		CookieURL: DefaultYahooCookieURL,
		Client:    client,
	}
}

func (s *YahooSource) Name() string    { return "yahoo" }
func (s *YahooSource) Available() bool { return true }

// yahooSummary is the subset of the quoteSummary response we read.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
			Price struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"price"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (s *YahooSource) FetchProfile(ctx context.Context, symbol string) (*model.CompanyProfile, error) {
	summary, err := s.quoteSummary(ctx, symbol)
	if errors.Is(err, errUnauthorized) {
		s.resetCrumb()
		summary, err = s.quoteSummary(ctx, symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, err)
	}
	if e := summary.QuoteSummary.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNotFound)
		}
		return nil, fmt.Errorf("yahoo api error: %s", e.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNotFound)
	}

	res := summary.QuoteSummary.Result[0]
	name := res.Price.LongName
	if name == "" {
		name = res.Price.ShortName
	}
	return &model.CompanyProfile{
		Name:     nonEmpty(name),
		Sector:   nonEmpty(res.AssetProfile.Sector),
		Industry: nonEmpty(res.AssetProfile.Industry),
	}, nil
}

func (s *YahooSource) quoteSummary(ctx context.Context, symbol string) (*yahooSummary, error) {
	crumb, err := s.sessionCrumb(ctx)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	q := url.Values{}
	q.Set("modules", "assetProfile,price")
	q.Set("crumb", crumb)
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", s.BaseURL, url.PathEscape(symbol), q.Encode())

	var summary yahooSummary
	if err := getJSON(ctx, s.Client, u, yahooHeader, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// sessionCrumb returns the cached crumb, running the cookie handshake first
// when there is none.
func (s *YahooSource) sessionCrumb(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.crumb != "" {
		return s.crumb, nil
	}

	// The cookie endpoint answers with an error status but still sets the cookie.
	resp, err := s.get(ctx, s.CookieURL)
	if err != nil {
		return "", fmt.Errorf("cookie: %w", err)
	}
	resp.Body.Close()

	resp, err = s.get(ctx, s.BaseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("crumb: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK || crumb == "" {
		return "", fmt.Errorf("crumb: status %d", resp.StatusCode)
	}
	s.crumb = crumb
	return crumb, nil
}

func (s *YahooSource) resetCrumb() {
	s.mu.Lock()
	s.crumb = ""
	s.mu.Unlock()
}

func (s *YahooSource) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header = yahooHeader.Clone()
	return s.Client.Do(req)
}

func nonEmpty(s string) null.String {
	return null.NewString(s, s != "")
}
