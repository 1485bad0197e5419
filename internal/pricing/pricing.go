// Package pricing converts catalog pricing fields into charges in the local
// currency. It is pure computation: no I/O, no ambient state. The exchange
// rate is always passed in explicitly together with the time it was fetched,
// so callers own refreshing it.
//
// All monetary results use the same rounding rule: round up to the next whole
// unit, never round to nearest. Unparseable or missing inputs degrade to zero
// instead of failing, and every degraded field is reported back so callers
// can log it. Checkout is never blocked by bad catalog data.
package pricing

import (
	"math"
	"sort"
	"strconv"
	"time"
)

// MaxTaxRatePercent is the upper clamp applied to tax rates before use.
// Upstream feeds occasionally carry corrupt rates; anything above this is
// treated as this.
const MaxTaxRatePercent = 25

// ExchangeRate is the source-to-local currency rate together with the time
// it was fetched. Staleness handling belongs to the caller, not the engine.
type ExchangeRate struct {
	Rate      float64
	FetchedAt time.Time
}

// Tier is one bulk-pricing step: the unit price that applies once the
// ordered quantity reaches MinQuantity.
type Tier struct {
	MinQuantity int
	UnitPrice   float64
}

// LineInput carries the raw pricing fields for one line item. Fields are
// untyped because catalog feeds deliver numbers as strings, numbers, or
// nothing at all; ParseAmount normalizes them.
type LineInput struct {
	BasePrice    interface{}
	TaxRate      interface{}
	LogisticRate interface{}
	UnitWeight   interface{}
	Quantity     int
}

// Breakdown is the result of pricing a line. Unit is the per-unit composite
// (converted base + tax + logistics); Total is Unit multiplied by the
// quantity. Defaulted names every input that could not be parsed and was
// taken as zero.
type Breakdown struct {
	Base      float64  `json:"base"`
	Tax       float64  `json:"tax"`
	Logistics float64  `json:"logistics"`
	Unit      float64  `json:"unit"`
	Total     float64  `json:"total"`
	Defaulted []string `json:"defaulted,omitempty"`
}

// Degraded reports whether any input was defaulted during computation.
func (b Breakdown) Degraded() bool {
	return len(b.Defaulted) > 0
}

// ParseAmount converts a raw catalog value to a float64. It accepts numbers
// and numeric strings; anything else (nil, garbage, empty string) yields
// 0 and ok=false.
func ParseAmount(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// RoundUp applies the engine's rounding policy: clamp negatives to zero,
// then take the ceiling.
func RoundUp(v float64) float64 {
	return math.Ceil(math.Max(0, v))
}

// ConvertBase converts a source-currency base price into the local currency.
func ConvertBase(basePrice float64, rate ExchangeRate) float64 {
	return RoundUp(basePrice * rate.Rate)
}

// TaxAmount computes the tax on a local-currency base price. The rate is
// clamped to [0, MaxTaxRatePercent] before use.
func TaxAmount(localBase, taxRatePercent float64) float64 {
	clamped := math.Min(math.Max(taxRatePercent, 0), MaxTaxRatePercent)
	return RoundUp(localBase * clamped / 100)
}

// LogisticsAmount computes the weight-based logistics surcharge. Both
// operands are clamped to be non-negative.
func LogisticsAmount(logisticRate, unitWeight float64) float64 {
	return RoundUp(math.Max(logisticRate, 0) * math.Max(unitWeight, 0))
}

// ResolveTierPrice selects the bulk unit price for a quantity. Tiers are
// considered from the highest MinQuantity down and the first threshold that
// the quantity reaches wins. When no tier matches, minListedPrice is used.
func ResolveTierPrice(tiers []Tier, quantity int, minListedPrice float64) float64 {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity > sorted[j].MinQuantity
	})
	for _, t := range sorted {
		if quantity >= t.MinQuantity {
			return t.UnitPrice
		}
	}
	return minListedPrice
}

// LineTotal prices one line item. The per-unit composite is the converted
// base price plus tax plus logistics, each rounded up individually; the line
// total is that composite multiplied by the quantity.
func LineTotal(in LineInput, rate ExchangeRate) Breakdown {
	var bd Breakdown

	base, ok := ParseAmount(in.BasePrice)
	if !ok {
		// Unpriceable line: carry on at zero but flag it for review.
		bd.Defaulted = append(bd.Defaulted, "base_price")
	}
	taxRate, ok := ParseAmount(in.TaxRate)
	if !ok {
		bd.Defaulted = append(bd.Defaulted, "tax_rate")
	}
	logisticRate, ok := ParseAmount(in.LogisticRate)
	if !ok {
		bd.Defaulted = append(bd.Defaulted, "logistic_rate")
	}
	unitWeight, ok := ParseAmount(in.UnitWeight)
	if !ok {
		bd.Defaulted = append(bd.Defaulted, "unit_weight")
	}
	if rate.Rate <= 0 {
		bd.Defaulted = append(bd.Defaulted, "exchange_rate")
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	bd.Base = ConvertBase(base, rate)
	bd.Tax = TaxAmount(bd.Base, taxRate)
	bd.Logistics = LogisticsAmount(logisticRate, unitWeight)
	bd.Unit = RoundUp(bd.Base + bd.Tax + bd.Logistics)
	bd.Total = RoundUp(bd.Unit * float64(qty))
	return bd
}

// OrderTotal combines an item subtotal with shipping and tax amounts.
func OrderTotal(subtotal, shippingCost, taxAmount float64) float64 {
	return RoundUp(subtotal + shippingCost + taxAmount)
}
