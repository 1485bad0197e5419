// Package cart holds a user's selected line items and derives their running
// total through the pricing engine. A cart is ephemeral, single-node state:
// it is never persisted and is lost on restart, mirroring how the storefront
// client keeps its cart on the device.
package cart

import (
	"sync"

	"drukmart/internal/catalog"
	"drukmart/internal/pricing"

	"github.com/google/uuid"
)

// Line is one cart entry. Pricing fields are snapshots captured when the
// line was added, so later catalog changes do not reprice an existing cart.
// ID is cart-scoped, not a database key.
type Line struct {
	ID           string   `json:"id"`
	ProductID    string   `json:"product_id"`
	ProductName  string   `json:"product_name"`
	Color        string   `json:"color"`
	Size         string   `json:"size"`
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unit_price"`
	TaxRate      float64  `json:"tax_rate"`
	LogisticRate float64  `json:"logistic_rate"`
	UnitWeight   float64  `json:"unit_weight"`
	Defaulted    []string `json:"defaulted,omitempty"` // Pricing fields that degraded to zero at add time
}

// LineFromCatalog builds a Line from a raw catalog document, resolving the
// alternate field spellings and recording every field that had to default.
func LineFromCatalog(p catalog.Product, color, size string, quantity int) Line {
	line := Line{
		ProductID:   p.ID(),
		ProductName: p.Name(),
		Color:       color,
		Size:        size,
		Quantity:    quantity,
	}

	unitPrice, priced := p.UnitPrice(quantity)
	line.UnitPrice = unitPrice
	if !priced {
		line.Defaulted = append(line.Defaulted, "base_price")
	}
	if v, ok := pricing.ParseAmount(p.TaxRate()); ok {
		line.TaxRate = v
	} else {
		line.Defaulted = append(line.Defaulted, "tax_rate")
	}
	if v, ok := pricing.ParseAmount(p.LogisticRate()); ok {
		line.LogisticRate = v
	} else {
		line.Defaulted = append(line.Defaulted, "logistic_rate")
	}
	if v, ok := pricing.ParseAmount(p.UnitWeight()); ok {
		line.UnitWeight = v
	} else {
		line.Defaulted = append(line.Defaulted, "unit_weight")
	}
	return line
}

// Cart is a set of lines keyed by (product, color, size). Safe for
// concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges the line into the cart. If a line with the same product, color
// and size already exists its quantity is incremented; otherwise the line is
// appended with a fresh cart-scoped ID. The affected line's ID is returned.
func (c *Cart) Add(line Line) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID &&
			c.lines[i].Color == line.Color &&
			c.lines[i].Size == line.Size {
			c.lines[i].Quantity += line.Quantity
			return c.lines[i].ID
		}
	}

	line.ID = uuid.New().String()
	c.lines = append(c.lines, line)
	return line.ID
}

// Remove deletes the line with the given cart-scoped ID. It reports whether
// a line was removed.
func (c *Cart) Remove(lineID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets the quantity on a line. Zero is allowed; the line
// stays in the cart and prices to zero. Negative quantities are rejected.
func (c *Cart) UpdateQuantity(lineID string, quantity int) bool {
	if quantity < 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Total recomputes the cart total from scratch on every call; nothing is
// cached. Lines with quantity zero contribute nothing.
func (c *Cart) Total(rate pricing.ExchangeRate) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		if l.Quantity == 0 {
			continue
		}
		bd := pricing.LineTotal(pricing.LineInput{
			BasePrice:    l.UnitPrice,
			TaxRate:      l.TaxRate,
			LogisticRate: l.LogisticRate,
			UnitWeight:   l.UnitWeight,
			Quantity:     l.Quantity,
		}, rate)
		total += bd.Total
	}
	return total
}
