package cart_test

import (
	"encoding/json"
	"testing"
	"time"

	"drukmart/internal/cart"
	"drukmart/internal/catalog"
	"drukmart/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func rate12() pricing.ExchangeRate {
	return pricing.ExchangeRate{Rate: 12, FetchedAt: time.Now()}
}

func TestCartAddMergesSameVariant(t *testing.T) {
	c := cart.New()

	id1 := c.Add(cart.Line{ProductID: "prod-1", Color: "red", Size: "M", Quantity: 2, UnitPrice: 10})
	id2 := c.Add(cart.Line{ProductID: "prod-1", Color: "red", Size: "M", Quantity: 3, UnitPrice: 10})

	assert.Equal(t, id1, id2)
	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartAddDistinctVariants(t *testing.T) {
	c := cart.New()

	c.Add(cart.Line{ProductID: "prod-1", Color: "red", Size: "M", Quantity: 1})
	c.Add(cart.Line{ProductID: "prod-1", Color: "blue", Size: "M", Quantity: 1})
	c.Add(cart.Line{ProductID: "prod-1", Color: "red", Size: "L", Quantity: 1})

	assert.Len(t, c.Lines(), 3)
	assert.Equal(t, 3, c.ItemCount())
}

func TestCartRemove(t *testing.T) {
	c := cart.New()
	id := c.Add(cart.Line{ProductID: "prod-1", Quantity: 1})

	assert.True(t, c.Remove(id))
	assert.False(t, c.Remove(id))
	assert.Empty(t, c.Lines())
}

func TestCartUpdateQuantity(t *testing.T) {
	c := cart.New()
	id := c.Add(cart.Line{ProductID: "prod-1", Quantity: 2, UnitPrice: 10})

	assert.True(t, c.UpdateQuantity(id, 7))
	assert.Equal(t, 7, c.Lines()[0].Quantity)

	// Zero is allowed and zeroes the line's contribution
	assert.True(t, c.UpdateQuantity(id, 0))
	assert.Equal(t, 0.0, c.Total(rate12()))

	// Negative is rejected
	assert.False(t, c.UpdateQuantity(id, -1))
	assert.False(t, c.UpdateQuantity("unknown", 3))
}

func TestCartTotalRecomputed(t *testing.T) {
	c := cart.New()
	// 10.50 * 12 = 126 base, tax 10% -> 13, logistics 50*0.5 -> 25, unit 164
	id := c.Add(cart.Line{
		ProductID: "prod-1", Quantity: 2,
		UnitPrice: 10.50, TaxRate: 10, LogisticRate: 50, UnitWeight: 0.5,
	})
	assert.Equal(t, 328.0, c.Total(rate12()))

	// Total follows quantity changes with no caching
	c.UpdateQuantity(id, 3)
	assert.Equal(t, 492.0, c.Total(rate12()))

	c.Clear()
	assert.Equal(t, 0.0, c.Total(rate12()))
}

func TestLineFromCatalog(t *testing.T) {
	var p catalog.Product
	assert.NoError(t, json.Unmarshal([]byte(`{
		"id": "prod-9",
		"name": "Wool Jacket",
		"price": "10.50",
		"taxRate": "10",
		"logistic_rate": 50,
		"weight": "0.5"
	}`), &p))

	line := cart.LineFromCatalog(p, "red", "M", 2)
	assert.Equal(t, "prod-9", line.ProductID)
	assert.Equal(t, "Wool Jacket", line.ProductName)
	assert.Equal(t, 10.5, line.UnitPrice)
	assert.Equal(t, 10.0, line.TaxRate)
	assert.Equal(t, 50.0, line.LogisticRate)
	assert.Equal(t, 0.5, line.UnitWeight)
	assert.Empty(t, line.Defaulted)
}

func TestLineFromCatalogFlagsDefaults(t *testing.T) {
	var p catalog.Product
	assert.NoError(t, json.Unmarshal([]byte(`{"id": "prod-9", "name": "Mystery Box"}`), &p))

	line := cart.LineFromCatalog(p, "", "", 1)
	assert.Equal(t, 0.0, line.UnitPrice)
	assert.Contains(t, line.Defaulted, "base_price")
	assert.Contains(t, line.Defaulted, "tax_rate")
	assert.Contains(t, line.Defaulted, "logistic_rate")
	assert.Contains(t, line.Defaulted, "unit_weight")
}

func TestStoreForUser(t *testing.T) {
	store := cart.NewStore()

	a := store.ForUser("user-a")
	a.Add(cart.Line{ProductID: "prod-1", Quantity: 1})

	// Same cart on re-access, distinct carts per user
	assert.Len(t, store.ForUser("user-a").Lines(), 1)
	assert.Empty(t, store.ForUser("user-b").Lines())

	store.Drop("user-a")
	assert.Empty(t, store.ForUser("user-a").Lines())
}
