// Package pricing holds the pure calculation engine behind the cart: bulk
// discount tiers, line totals, tax and profit. Every function is deterministic
// and reads no global state.
package pricing

import (
	"math"

	"github.com/The-Charles-Factor/pos22/internal/models"
)

// Bulk discount tiers. Thresholds are inclusive lower bounds and only the
// highest applicable tier applies.
const (
	bulkTierHighQty    = 10
	bulkTierHighFactor = 0.90
	bulkTierLowQty     = 5
	bulkTierLowFactor  = 0.95
)

// UnitPriceWithBulkDiscount returns the discounted unit price for the given
// quantity. The result never exceeds basePrice.
func UnitPriceWithBulkDiscount(basePrice float64, quantity int) float64 {
	switch {
	case quantity >= bulkTierHighQty:
		return basePrice * bulkTierHighFactor
	case quantity >= bulkTierLowQty:
		return basePrice * bulkTierLowFactor
	default:
		return basePrice
	}
}

// LineTotal is the extended price of one cart line.
func LineTotal(price float64, quantity int) float64 {
	return price * float64(quantity)
}

// RoundCents rounds half away from zero at the cent.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals derives subtotal, tax, grand total and profit from the given
// lines. Rounding is applied once per figure, at the end. An empty line list
// yields all-zero totals for any rate.
func ComputeTotals(lines []models.CartLine, taxRate float64) models.CartTotals {
	var subtotal, profit float64

	for _, line := range lines {
		subtotal += LineTotal(line.CurrentPrice, line.Quantity)
		profit += (line.CurrentPrice - line.CostPrice) * float64(line.Quantity)
	}

	tax := subtotal * taxRate

	return models.CartTotals{
		Subtotal:    RoundCents(subtotal),
		TaxAmount:   RoundCents(tax),
		TotalAmount: RoundCents(subtotal + tax),
		TotalProfit: RoundCents(profit),
	}
}

// ChangeDue returns the change owed for a cash tender. A zero tender means
// "not yet entered", not a shortfall, so the result is never negative.
func ChangeDue(total, cashTendered float64) float64 {
	if cashTendered == 0 {
		return 0
	}

	return math.Max(0, RoundCents(cashTendered-total))
}

// ProfitMargin is the selling margin as a percentage of the selling price.
func ProfitMargin(sellingPrice, costPrice float64) float64 {
	if sellingPrice == 0 {
		return 0
	}

	return (sellingPrice - costPrice) / sellingPrice * 100
}
