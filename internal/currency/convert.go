package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const divPrecision = 12

// Convert converts amount between two currencies by bridging through the base:
// amount / rates[from] * rates[to].
//
// The amount arrives as the raw string from a live input field, so this is
// deliberately safe to call on every keystroke: an empty or non-numeric
// amount, a nil rate table, a missing currency entry, or a zero from-rate all
// yield zero rather than an error.
func Convert(amount, from, to string, rates map[string]decimal.Decimal) decimal.Decimal {
	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero
	}
	rate := EffectiveRate(from, to, rates)
	if rate.IsZero() {
		return decimal.Zero
	}
	return amt.Mul(rate)
}

// EffectiveRate returns the from→to rate implied by a base-relative table,
// i.e. rates[to] / rates[from]. Zero under the same guard conditions as
// Convert.
func EffectiveRate(from, to string, rates map[string]decimal.Decimal) decimal.Decimal {
	if rates == nil {
		return decimal.Zero
	}
	fromRate, ok := rates[strings.ToUpper(strings.TrimSpace(from))]
	if !ok || fromRate.IsZero() {
		return decimal.Zero
	}
	toRate, ok := rates[strings.ToUpper(strings.TrimSpace(to))]
	if !ok {
		return decimal.Zero
	}
	return toRate.DivRound(fromRate, divPrecision)
}

// FormatAmount renders a value for display: no decimals for zero-decimal
// currencies (MGA) or when rounded is set, two decimals otherwise. The
// currency symbol is prefixed; unknown codes get no symbol.
func FormatAmount(value decimal.Decimal, code string, rounded bool) string {
	cur, ok := Lookup(code)

	places := int32(2)
	if rounded || (ok && cur.ZeroDecimals) {
		places = 0
	}

	formatted := value.StringFixed(places)
	if !ok || cur.Symbol == "" {
		return formatted
	}
	return fmt.Sprintf("%s%s", cur.Symbol, formatted)
}
