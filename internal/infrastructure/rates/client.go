package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/currency"
)

const defaultTimeout = 30 * time.Second

// Client fetches exchange rate snapshots from the provider API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	base       string
}

// NewClient creates a new exchange rate provider client. base is the
// currency all rates are requested against (empty uses the provider default).
func NewClient(baseURL, apiKey, base string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		base:    base,
	}
}

// RatesResponse represents the provider's rates payload
type RatesResponse struct {
	Base        string                     `json:"base"`
	Rates       map[string]decimal.Decimal `json:"rates"`
	LastUpdated string                     `json:"lastUpdated"`
}

// ErrorResponse represents the provider's error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetLastUpdated parses and returns the lastUpdated timestamp. A missing or
// malformed value falls back to the fetch time supplied by the caller.
func (r *RatesResponse) GetLastUpdated(fallback time.Time) time.Time {
	if r.LastUpdated == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, r.LastUpdated)
	if err != nil {
		return fallback
	}
	return t
}

// Fetch retrieves the current rate table and wraps it in an immutable
// snapshot.
func (c *Client) Fetch(ctx context.Context) (*currency.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.base != "" {
		q := req.URL.Query()
		q.Set("base", c.base)
		req.URL.RawQuery = q.Encode()
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("rates request failed with status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("rates API error (status %d): %s - %s", resp.StatusCode, errResp.Error, errResp.Message)
	}

	var ratesResp RatesResponse
	if err := json.Unmarshal(body, &ratesResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rates response: %w", err)
	}

	if ratesResp.Base == "" || len(ratesResp.Rates) == 0 {
		return nil, fmt.Errorf("rates response missing base or rates")
	}

	now := time.Now().UTC()
	return currency.NewSnapshot(ratesResp.Base, ratesResp.Rates, ratesResp.GetLastUpdated(now)), nil
}
