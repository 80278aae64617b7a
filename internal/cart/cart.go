// Package cart implements the in-memory cart aggregate for one cashier
// session. Lines keep insertion order and totals are recomputed from the
// pricing engine on every read.
package cart

import (
	"sync"

	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/pricing"
)

// Cart owns its lines for the duration of one active sale. It is safe for
// concurrent use; the checkout machine freezes it while a payment is in
// flight.
type Cart struct {
	mu     sync.Mutex
	lines  []models.CartLine
	frozen bool
}

func New() *Cart {
	return &Cart{}
}

// Add inserts a new line for the product or merges into the existing one.
// A merge increments the quantity and re-derives the unit price from the
// product's selling price against the new cumulative quantity.
func (c *Cart) Add(product *models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return
	}

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			newQty := c.lines[i].Quantity + quantity
			c.lines[i].Quantity = newQty
			c.lines[i].CurrentPrice = pricing.UnitPriceWithBulkDiscount(product.SellingPrice, newQty)

			return
		}
	}

	c.lines = append(c.lines, models.CartLine{
		ProductID:     product.ID,
		Name:          product.Name,
		Quantity:      quantity,
		CurrentPrice:  pricing.UnitPriceWithBulkDiscount(product.SellingPrice, quantity),
		OriginalPrice: product.SellingPrice,
		CostPrice:     product.CostPrice,
	})
}

// UpdateLine applies a quantity change, a manual price override, or both.
// Invalid values (quantity < 1, price < 0, price above the line's original
// price) are silently ignored; an override is a discount, never a markup. The
// price is re-derived from the bulk discount tiers only when the quantity
// changes; an explicit override sticks until the next quantity change.
func (c *Cart) UpdateLine(productID string, req *models.UpdateLineRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return
	}

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}

		if req.Price != nil && *req.Price >= 0 && *req.Price <= c.lines[i].OriginalPrice {
			c.lines[i].CurrentPrice = *req.Price
		}

		if req.Quantity != nil && *req.Quantity >= 1 {
			c.lines[i].Quantity = *req.Quantity
			c.lines[i].CurrentPrice = pricing.UnitPriceWithBulkDiscount(c.lines[i].OriginalPrice, *req.Quantity)
		}

		return
	}
}

// Remove deletes the line if present. Removing an unknown id is a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)

			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return
	}

	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)

	return lines
}

// Totals delegates to the pricing engine against the current lines.
func (c *Cart) Totals(taxRate float64) models.CartTotals {
	return pricing.ComputeTotals(c.Lines(), taxRate)
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines) == 0
}

// Freeze blocks all mutations while a checkout is in flight. It returns false
// if the cart is already frozen.
func (c *Cart) Freeze() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return false
	}

	c.frozen = true

	return true
}

// Unfreeze re-enables mutations after a failed or cancelled checkout.
func (c *Cart) Unfreeze() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frozen = false
}

// Reset unfreezes and empties the cart after a completed sale.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frozen = false
	c.lines = nil
}
