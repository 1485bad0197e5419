// Package catalog talks to the third-party product catalog. Documents from
// the catalog are loosely shaped: the same logical value can arrive under
// two or three alternate key spellings depending on which upstream endpoint
// produced it. Each accessor here resolves one field through its ordered
// fallback chain, so the rest of the codebase never touches raw keys.
package catalog

import (
	"strconv"

	"drukmart/internal/pricing"
)

// Product is a raw catalog document.
type Product map[string]interface{}

// first returns the first present, non-nil value among the given keys.
func (p Product) first(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ID resolves the product identifier: id, then product_id, then item_id.
func (p Product) ID() string {
	v, _ := p.first("id", "product_id", "item_id")
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64; upstream ids are integral.
		return formatID(s)
	}
	return ""
}

// Name resolves the display name: name, then title.
func (p Product) Name() string {
	if v, ok := p.first("name", "title"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// TaxRate resolves the tax percentage: tax_rate, then taxRate.
func (p Product) TaxRate() interface{} {
	v, _ := p.first("tax_rate", "taxRate")
	return v
}

// LogisticRate resolves the per-weight logistics rate: logistic_rate,
// then logisticRate, then logistic.
func (p Product) LogisticRate() interface{} {
	v, _ := p.first("logistic_rate", "logisticRate", "logistic")
	return v
}

// UnitWeight resolves the unit weight: unit_weight, then unitWeight,
// then weight.
func (p Product) UnitWeight() interface{} {
	v, _ := p.first("unit_weight", "unitWeight", "weight")
	return v
}

// Tiers parses the optional bulk price list. Entries carry beginAmount and
// price, both frequently as strings; unparseable entries are skipped.
func (p Product) Tiers() []pricing.Tier {
	v, ok := p.first("prices")
	if !ok {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var tiers []pricing.Tier
	for _, e := range list {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		minQty, okMin := pricing.ParseAmount(entry["beginAmount"])
		price, okPrice := pricing.ParseAmount(entry["price"])
		if !okMin || !okPrice {
			continue
		}
		tiers = append(tiers, pricing.Tier{MinQuantity: int(minQty), UnitPrice: price})
	}
	return tiers
}

// UnitPrice resolves the base unit price for a quantity: the direct price
// field first, a matching bulk tier if one applies, then price_min as the
// last resort. A product with none of these is unpriceable and yields
// 0, false so the caller can flag it.
func (p Product) UnitPrice(quantity int) (float64, bool) {
	price, priced := 0.0, false
	if v, ok := p.first("price"); ok {
		if f, okParse := pricing.ParseAmount(v); okParse {
			price, priced = f, true
		}
	}
	if tiers := p.Tiers(); len(tiers) > 0 {
		if tierPrice := pricing.ResolveTierPrice(tiers, quantity, price); tierPrice > 0 {
			price, priced = tierPrice, true
		}
	}
	if !priced {
		if v, ok := p.first("price_min"); ok {
			if f, okParse := pricing.ParseAmount(v); okParse {
				price, priced = f, true
			}
		}
	}
	return price, priced
}

func formatID(f float64) string {
	if f < 0 {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}
