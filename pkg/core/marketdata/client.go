package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://query2.finance.yahoo.com"
	defaultTimeout = 20 * time.Second

	// Modules requested per fetch. incomeStatementHistory must be present
	// for growth; assetProfile supplies the officer list.
	quoteSummaryModules = "price,summaryProfile,summaryDetail,assetProfile,incomeStatementHistory"
)

// Cache is the narrow caching contract the client needs. Satisfied by
// store.QuoteCache; nil disables caching.
type Cache interface {
	Get(ctx context.Context, ticker string) []byte
	Set(ctx context.Context, ticker string, payload []byte)
}

// Config holds provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string // optional, sent as X-Api-Key when set
	Timeout time.Duration
}

// LoadConfig reads provider settings from the environment.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("MARKET_DATA_BASE_URL"),
		APIKey:  os.Getenv("MARKET_DATA_API_KEY"),
		Timeout: defaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg
}

// Client calls the market-data provider. One attempt per call, no retries;
// the timeout bounds every request.
type Client struct {
	cfg    Config
	client *http.Client
	cache  Cache
}

// NewClient creates a provider client. cache may be nil.
func NewClient(cfg Config, cache Cache) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  cache,
	}
}

// FetchQuoteSummary retrieves the company snapshot for ticker.
func (c *Client) FetchQuoteSummary(ctx context.Context, ticker string) (*QuoteSummaryResult, error) {
	payload := []byte(nil)
	if c.cache != nil {
		payload = c.cache.Get(ctx, ticker)
		if payload != nil {
			fmt.Printf("[MARKET] cache hit for %s\n", ticker)
		}
	}

	if payload == nil {
		var err error
		payload, err = c.fetchRaw(ctx, ticker)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			c.cache.Set(ctx, ticker, payload)
		}
	}

	var body QuoteSummaryResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("decode quoteSummary for %s: %w", ticker, err)
	}
	if body.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("provider error for %s: %s (%s)",
			ticker, body.QuoteSummary.Error.Description, body.QuoteSummary.Error.Code)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("provider returned no result for %s", ticker)
	}
	return &body.QuoteSummary.Result[0], nil
}

func (c *Client) fetchRaw(ctx context.Context, ticker string) ([]byte, error) {
	q := url.Values{}
	q.Set("modules", quoteSummaryModules)
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.cfg.BaseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.APIKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("provider http %d for %s", res.StatusCode, ticker)
	}

	return io.ReadAll(res.Body)
}

// FetchProfileHTML retrieves the provider's HTML profile page for ticker.
// Used as a fallback source for the key-executives table when the JSON
// payload has no assetProfile module.
func (c *Client) FetchProfileHTML(ctx context.Context, ticker string) (string, error) {
	u := fmt.Sprintf("%s/quote/%s/profile", c.cfg.BaseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html")

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return "", fmt.Errorf("profile page http %d for %s", res.StatusCode, ticker)
	}

	html, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(html), nil
}
