package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource tags where a resolved rate set came from.
type RateSource string

const (
	SourceLive     RateSource = "live"
	SourceCache    RateSource = "cache"
	SourceFallback RateSource = "fallback"
)

// RateSnapshot is the single persisted rate-cache row. Saving a new snapshot
// overwrites the previous one; no snapshot history is kept.
type RateSnapshot struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// Age returns the elapsed time since the snapshot was fetched.
func (s *RateSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// ResolvedRates is the transient result of a rate resolution: the rate set to
// use for this request plus provenance metadata. FetchedAt and AgeMinutes are
// nil when the built-in fallback table was served.
type ResolvedRates struct {
	Base       string                     `json:"base"`
	Rates      map[string]decimal.Decimal `json:"rates"`
	Source     RateSource                 `json:"source"`
	FetchedAt  *time.Time                 `json:"fetched_at,omitempty"`
	AgeMinutes *int64                     `json:"age_minutes,omitempty"`
}

// ConversionRecord is one append-only history row. Immutable once created;
// ids are assigned monotonically by the store.
type ConversionRecord struct {
	ID           int64           `json:"id"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Amount       decimal.Decimal `json:"amount"`
	Result       decimal.Decimal `json:"result"`
	Rate         decimal.Decimal `json:"rate"`
	ConvertedAt  time.Time       `json:"converted_at"`
}
