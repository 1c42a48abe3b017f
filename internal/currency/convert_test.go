package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.NewFromFloat(0.9),
		"CNY": decimal.NewFromFloat(7.2),
		"MGA": decimal.NewFromInt(4400),
	}
}

func TestConvertBridgesThroughBase(t *testing.T) {
	rates := testRates()

	// 100 USD -> EUR at 0.9
	result := Convert("100", "USD", "EUR", rates)
	assert.True(t, result.Equal(decimal.NewFromInt(90)), "got %s", result)

	// 90 EUR -> MGA: 90 / 0.9 * 4400 = 440000
	result = Convert("90", "EUR", "MGA", rates)
	assert.True(t, result.Equal(decimal.NewFromInt(440000)), "got %s", result)
}

func TestConvertRoundTrip(t *testing.T) {
	rates := testRates()
	tolerance := decimal.NewFromFloat(0.0001)

	for _, from := range Codes() {
		for _, to := range Codes() {
			if from == to {
				continue
			}
			forward := Convert("123.45", from, to, rates)
			back := Convert(forward.String(), to, from, rates)
			diff := back.Sub(decimal.RequireFromString("123.45")).Abs()
			assert.True(t, diff.LessThan(tolerance),
				"%s->%s->%s drifted by %s", from, to, from, diff)
		}
	}
}

func TestConvertIdentity(t *testing.T) {
	rates := testRates()
	for _, code := range Codes() {
		result := Convert("42.5", code, code, rates)
		assert.True(t, result.Equal(decimal.RequireFromString("42.5")), "%s: got %s", code, result)
	}
}

func TestConvertSilentZero(t *testing.T) {
	rates := testRates()

	cases := []struct {
		name   string
		amount string
		from   string
		to     string
		rates  map[string]decimal.Decimal
	}{
		{"empty amount", "", "USD", "EUR", rates},
		{"whitespace amount", "   ", "USD", "EUR", rates},
		{"non-numeric amount", "12abc", "USD", "EUR", rates},
		{"nil rates", "100", "USD", "EUR", nil},
		{"missing from", "100", "GBP", "EUR", rates},
		{"missing to", "100", "USD", "GBP", rates},
		{"zero from rate", "100", "USD", "EUR", map[string]decimal.Decimal{"USD": decimal.Zero, "EUR": decimal.NewFromFloat(0.9)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, Convert(tc.amount, tc.from, tc.to, tc.rates).IsZero())
		})
	}
}

func TestEffectiveRate(t *testing.T) {
	rates := testRates()

	rate := EffectiveRate("USD", "MGA", rates)
	assert.True(t, rate.Equal(decimal.NewFromInt(4400)), "got %s", rate)

	rate = EffectiveRate("EUR", "USD", rates)
	expected := decimal.NewFromInt(1).DivRound(decimal.NewFromFloat(0.9), divPrecision)
	assert.True(t, rate.Equal(expected), "got %s", rate)

	assert.True(t, EffectiveRate("USD", "EUR", nil).IsZero())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1234.57", FormatAmount(decimal.RequireFromString("1234.567"), "USD", false))
	assert.Equal(t, "$1235", FormatAmount(decimal.RequireFromString("1234.567"), "USD", true))
	// MGA is zero-decimal regardless of the rounded toggle.
	assert.Equal(t, "Ar4400", FormatAmount(decimal.NewFromInt(4400), "MGA", false))
	assert.Equal(t, "€0.00", FormatAmount(decimal.Zero, "EUR", false))
	// Unknown code: plain number, no symbol.
	assert.Equal(t, "10.00", FormatAmount(decimal.NewFromInt(10), "GBP", false))
}

func TestLookup(t *testing.T) {
	cur, ok := Lookup("mga")
	require.True(t, ok)
	assert.Equal(t, "MGA", cur.Code)
	assert.True(t, cur.ZeroDecimals)

	_, ok = Lookup("GBP")
	assert.False(t, ok)

	assert.Len(t, Codes(), 4)
	assert.True(t, IsSupported("usd"))
}
