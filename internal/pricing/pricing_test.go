package pricing_test

import (
	"testing"
	"time"

	"drukmart/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func testRate(rate float64) pricing.ExchangeRate {
	return pricing.ExchangeRate{Rate: rate, FetchedAt: time.Now()}
}

func TestConvertBase(t *testing.T) {
	// Exact product stays exact
	assert.Equal(t, 126.0, pricing.ConvertBase(10.50, testRate(12)))

	// Fractional results always round up
	assert.Equal(t, 127.0, pricing.ConvertBase(10.51, testRate(12)))
	assert.Equal(t, 1.0, pricing.ConvertBase(0.01, testRate(12)))

	// Never negative
	assert.Equal(t, 0.0, pricing.ConvertBase(-5, testRate(12)))
	assert.Equal(t, 0.0, pricing.ConvertBase(0, testRate(12)))
}

func TestTaxAmount(t *testing.T) {
	assert.Equal(t, 10.0, pricing.TaxAmount(100, 10))

	// Fractional tax rounds up
	assert.Equal(t, 11.0, pricing.TaxAmount(105, 10))

	// Rates above the clamp are treated as the clamp
	assert.Equal(t, 25.0, pricing.TaxAmount(100, 40))

	// Negative rates are treated as zero
	assert.Equal(t, 0.0, pricing.TaxAmount(100, -5))
}

func TestLogisticsAmount(t *testing.T) {
	assert.Equal(t, 25.0, pricing.LogisticsAmount(50, 0.5))
	assert.Equal(t, 26.0, pricing.LogisticsAmount(50.5, 0.51))
	assert.Equal(t, 0.0, pricing.LogisticsAmount(-50, 0.5))
	assert.Equal(t, 0.0, pricing.LogisticsAmount(50, -1))
}

func TestResolveTierPrice(t *testing.T) {
	tiers := []pricing.Tier{
		{MinQuantity: 1, UnitPrice: 10},
		{MinQuantity: 10, UnitPrice: 8},
		{MinQuantity: 50, UnitPrice: 6},
	}

	// Highest threshold the quantity reaches wins
	assert.Equal(t, 8.0, pricing.ResolveTierPrice(tiers, 12, 9.5))
	assert.Equal(t, 10.0, pricing.ResolveTierPrice(tiers, 1, 9.5))
	assert.Equal(t, 6.0, pricing.ResolveTierPrice(tiers, 50, 9.5))
	assert.Equal(t, 6.0, pricing.ResolveTierPrice(tiers, 500, 9.5))

	// No tier matched: fall back to the minimum listed price
	assert.Equal(t, 9.5, pricing.ResolveTierPrice(tiers[1:], 3, 9.5))
	assert.Equal(t, 9.5, pricing.ResolveTierPrice(nil, 3, 9.5))
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{nil, 0, false},
		{12.5, 12.5, true},
		{7, 7, true},
		{"10.50", 10.5, true},
		{"", 0, false},
		{"garbage", 0, false},
		{true, 0, false},
	}
	for _, c := range cases {
		got, ok := pricing.ParseAmount(c.in)
		assert.Equal(t, c.want, got, "value for %v", c.in)
		assert.Equal(t, c.ok, ok, "ok for %v", c.in)
	}
}

func TestLineTotal(t *testing.T) {
	bd := pricing.LineTotal(pricing.LineInput{
		BasePrice:    10.50,
		TaxRate:      10,
		LogisticRate: 50,
		UnitWeight:   0.5,
		Quantity:     2,
	}, testRate(12))

	// base 126, tax ceil(12.6)=13, logistics 25, unit 164, total 328
	assert.Equal(t, 126.0, bd.Base)
	assert.Equal(t, 13.0, bd.Tax)
	assert.Equal(t, 25.0, bd.Logistics)
	assert.Equal(t, 164.0, bd.Unit)
	assert.Equal(t, 328.0, bd.Total)
	assert.False(t, bd.Degraded())
}

func TestLineTotalDegraded(t *testing.T) {
	bd := pricing.LineTotal(pricing.LineInput{
		BasePrice:    "not-a-number",
		TaxRate:      nil,
		LogisticRate: "50",
		UnitWeight:   "0.5",
		Quantity:     3,
	}, testRate(12))

	// Base degraded to zero but logistics still priced
	assert.Equal(t, 0.0, bd.Base)
	assert.Equal(t, 0.0, bd.Tax)
	assert.Equal(t, 25.0, bd.Logistics)
	assert.Equal(t, 75.0, bd.Total)
	assert.True(t, bd.Degraded())
	assert.Contains(t, bd.Defaulted, "base_price")
	assert.Contains(t, bd.Defaulted, "tax_rate")
	assert.NotContains(t, bd.Defaulted, "logistic_rate")
}

func TestLineTotalMissingRate(t *testing.T) {
	bd := pricing.LineTotal(pricing.LineInput{
		BasePrice: 10,
		Quantity:  1,
	}, testRate(0))

	assert.Equal(t, 0.0, bd.Total)
	assert.Contains(t, bd.Defaulted, "exchange_rate")
}

func TestLineTotalQuantityFloor(t *testing.T) {
	// Quantities below one are priced as a single unit
	a := pricing.LineTotal(pricing.LineInput{BasePrice: 10, Quantity: 0}, testRate(12))
	b := pricing.LineTotal(pricing.LineInput{BasePrice: 10, Quantity: 1}, testRate(12))
	assert.Equal(t, b.Total, a.Total)
}

func TestOrderTotal(t *testing.T) {
	assert.Equal(t, 175.0, pricing.OrderTotal(100, 50, 25))
	assert.Equal(t, 176.0, pricing.OrderTotal(100.2, 50, 25))
	assert.Equal(t, 0.0, pricing.OrderTotal(0, 0, 0))
}
