package provider

import (
	"context"
	"sync"

	"github.com/fanilo/ariary-rates/internal/currency"
	"github.com/shopspring/decimal"
)

// StubProvider is a static implementation for tests and local development.
// It returns the configured rate table (the built-in fallback table when
// unset), or Err when set, and counts how often it was called.
type StubProvider struct {
	mu    sync.Mutex
	Rates map[string]decimal.Decimal
	Err   error
	calls int
}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) FetchLiveRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	p.mu.Lock()
	p.calls++
	rates, err := p.Rates, p.Err
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if rates == nil {
		rates = currency.FallbackRates()
	}
	out := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		out[code] = rate
	}
	return out, nil
}

// Calls returns how many times FetchLiveRates was invoked.
func (p *StubProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
