package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fanilo/ariary-rates/internal/currency"
	"github.com/shopspring/decimal"
)

// DefaultFetchTimeout bounds a single remote rate fetch.
const DefaultFetchTimeout = 8 * time.Second

// NetworkError covers transport failures, timeouts, and non-success statuses.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("rate provider network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// DataError covers malformed or incomplete provider responses.
type DataError struct {
	Err error
}

func (e *DataError) Error() string { return fmt.Sprintf("rate provider data error: %v", e.Err) }
func (e *DataError) Unwrap() error { return e.Err }

// RateProvider fetches live base-relative rates for the supported currency set.
type RateProvider interface {
	// FetchLiveRates issues one idempotent read of live rates. The returned
	// map contains exactly the supported currency codes.
	FetchLiveRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// HTTPProvider reads rates from a JSON endpoint with a single bounded GET.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider builds a provider against url. A non-positive timeout falls
// back to DefaultFetchTimeout.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// FetchLiveRates performs the GET and extracts the supported currency subset.
// Extra currencies in the provider body are discarded; a missing supported
// currency fails the whole fetch.
func (p *HTTPProvider) FetchLiveRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &DataError{Err: fmt.Errorf("decode response: %w", err)}
	}

	rates := make(map[string]decimal.Decimal, len(currency.Supported))
	for _, code := range currency.Codes() {
		if code == currency.Base {
			rates[code] = decimal.NewFromInt(1)
			continue
		}
		rate, ok := body.Rates[code]
		if !ok {
			return nil, &DataError{Err: fmt.Errorf("missing rate for %s", code)}
		}
		rates[code] = rate
	}
	return rates, nil
}
