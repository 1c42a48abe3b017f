package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Base is the reference currency all rates are expressed against.
const Base = "USD"

// Currency describes one supported currency and its display metadata.
type Currency struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Flag         string `json:"flag"`
	Symbol       string `json:"symbol"`
	ZeroDecimals bool   `json:"zero_decimals"`
}

// Supported is the fixed currency set, in display order. This is static
// configuration, not a managed entity.
var Supported = []Currency{
	{Code: "USD", Name: "US Dollar", Flag: "\U0001F1FA\U0001F1F8", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Flag: "\U0001F1EA\U0001F1FA", Symbol: "€"},
	{Code: "CNY", Name: "Chinese Yuan", Flag: "\U0001F1E8\U0001F1F3", Symbol: "¥"},
	{Code: "MGA", Name: "Malagasy Ariary", Flag: "\U0001F1F2\U0001F1EC", Symbol: "Ar", ZeroDecimals: true},
}

// FallbackRates is the built-in rate table served when there is no snapshot
// and the remote fetch fails. Values are relative to Base.
func FallbackRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.NewFromFloat(0.92),
		"CNY": decimal.NewFromFloat(7.25),
		"MGA": decimal.NewFromInt(4500),
	}
}

// Codes returns the supported currency codes in display order.
func Codes() []string {
	codes := make([]string, len(Supported))
	for i, c := range Supported {
		codes[i] = c.Code
	}
	return codes
}

// Lookup returns the currency for a code, case-insensitively.
func Lookup(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Supported {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// IsSupported reports whether code is in the supported set.
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}
