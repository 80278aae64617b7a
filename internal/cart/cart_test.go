package cart_test

import (
	"testing"

	"github.com/The-Charles-Factor/pos22/internal/cart"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hammer() *models.Product {
	return &models.Product{
		ID:            "1",
		Code:          "PROD001",
		Name:          "Premium Hammer",
		CostPrice:     8.50,
		SellingPrice:  15.99,
		StockQuantity: 24,
		IsActive:      true,
	}
}

func drill() *models.Product {
	return &models.Product{
		ID:            "2",
		Code:          "PROD002",
		Name:          "Power Drill",
		CostPrice:     45.00,
		SellingPrice:  89.99,
		StockQuantity: 12,
		IsActive:      true,
	}
}

func TestAdd(t *testing.T) {
	t.Run("New Line Keeps Original Price", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 2)

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, 15.99, lines[0].CurrentPrice)
		assert.Equal(t, 15.99, lines[0].OriginalPrice)
	})

	t.Run("Merge Recomputes Against Cumulative Quantity", func(t *testing.T) {
		c := cart.New()
		p := &models.Product{ID: "1", Name: "Widget", SellingPrice: 10.00, CostPrice: 4.00}

		c.Add(p, 3)
		c.Add(p, 4)

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 7, lines[0].Quantity)
		// one merged line in the 5% tier, not two separately discounted lines
		assert.InDelta(t, 9.50, lines[0].CurrentPrice, 0.0001)
	})

	t.Run("Merge Crosses Into Higher Tier", func(t *testing.T) {
		c := cart.New()
		p := &models.Product{ID: "1", Name: "Widget", SellingPrice: 10.00, CostPrice: 4.00}

		c.Add(p, 5)
		require.InDelta(t, 9.50, c.Lines()[0].CurrentPrice, 0.0001)

		c.Add(p, 5)

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 10, lines[0].Quantity)
		assert.InDelta(t, 9.00, lines[0].CurrentPrice, 0.0001)
	})

	t.Run("Insertion Order Preserved On Merge", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 1)
		c.Add(drill(), 1)
		c.Add(hammer(), 1)

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "1", lines[0].ProductID)
		assert.Equal(t, "2", lines[1].ProductID)
	})

	t.Run("Zero Quantity Defaults To One", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 0)

		require.Len(t, c.Lines(), 1)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})
}

func TestUpdateLine(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	t.Run("Quantity Change Recomputes Price", func(t *testing.T) {
		c := cart.New()
		p := &models.Product{ID: "1", Name: "Widget", SellingPrice: 10.00, CostPrice: 4.00}
		c.Add(p, 2)

		c.UpdateLine("1", &models.UpdateLineRequest{Quantity: intPtr(10)})

		line := c.Lines()[0]
		assert.Equal(t, 10, line.Quantity)
		assert.InDelta(t, 9.00, line.CurrentPrice, 0.0001)
	})

	t.Run("Manual Price Override Is Sticky", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 2)

		c.UpdateLine("1", &models.UpdateLineRequest{Price: floatPtr(12.00)})
		assert.Equal(t, 12.00, c.Lines()[0].CurrentPrice)

		// the override survives an unrelated remove of another product
		c.Remove("99")
		assert.Equal(t, 12.00, c.Lines()[0].CurrentPrice)

		// but the next quantity change re-derives from the original price
		c.UpdateLine("1", &models.UpdateLineRequest{Quantity: intPtr(5)})
		assert.InDelta(t, 15.19, c.Lines()[0].CurrentPrice, 0.01)
	})

	t.Run("Invalid Quantity Is Silently Ignored", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 2)

		c.UpdateLine("1", &models.UpdateLineRequest{Quantity: intPtr(0)})
		assert.Equal(t, 2, c.Lines()[0].Quantity)

		c.UpdateLine("1", &models.UpdateLineRequest{Quantity: intPtr(-3)})
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("Negative Price Is Silently Ignored", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 2)

		c.UpdateLine("1", &models.UpdateLineRequest{Price: floatPtr(-1.00)})
		assert.Equal(t, 15.99, c.Lines()[0].CurrentPrice)
	})

	t.Run("Override Above Original Price Is Silently Ignored", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 2)

		// an override is a discount, never a markup
		c.UpdateLine("1", &models.UpdateLineRequest{Price: floatPtr(20.00)})
		assert.Equal(t, 15.99, c.Lines()[0].CurrentPrice)
		assert.LessOrEqual(t, c.Lines()[0].CurrentPrice, c.Lines()[0].OriginalPrice)

		// matching the original price exactly is still allowed
		c.UpdateLine("1", &models.UpdateLineRequest{Price: floatPtr(15.99)})
		assert.Equal(t, 15.99, c.Lines()[0].CurrentPrice)
	})

	t.Run("Unknown Product Is A No-Op", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 2)

		c.UpdateLine("missing", &models.UpdateLineRequest{Quantity: intPtr(5)})
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})
}

func TestRemoveAndClear(t *testing.T) {
	t.Run("Remove Existing Line", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 1)
		c.Add(drill(), 1)

		c.Remove("1")

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "2", lines[0].ProductID)
	})

	t.Run("Remove Nonexistent Line Leaves Cart Unchanged", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 1)

		c.Remove("missing")

		assert.Len(t, c.Lines(), 1)
	})

	t.Run("Clear Empties Cart", func(t *testing.T) {
		c := cart.New()
		c.Add(hammer(), 1)
		c.Add(drill(), 1)

		c.Clear()

		assert.True(t, c.IsEmpty())
	})
}

func TestTotals(t *testing.T) {
	c := cart.New()
	c.Add(hammer(), 2)

	totals := c.Totals(0.16)

	assert.InDelta(t, 31.98, totals.Subtotal, 0.001)
	assert.InDelta(t, 5.12, totals.TaxAmount, 0.001)
	assert.InDelta(t, 37.10, totals.TotalAmount, 0.001)
	assert.InDelta(t, 14.98, totals.TotalProfit, 0.001)
}

func TestFreeze(t *testing.T) {
	c := cart.New()
	c.Add(hammer(), 2)

	require.True(t, c.Freeze())
	assert.False(t, c.Freeze(), "second freeze must be rejected")

	c.Add(drill(), 1)
	c.Remove("1")
	c.Clear()

	assert.Len(t, c.Lines(), 1, "mutations must be rejected while frozen")

	c.Unfreeze()
	c.Add(drill(), 1)
	assert.Len(t, c.Lines(), 2)

	require.True(t, c.Freeze())
	c.Reset()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Freeze(), "reset must leave the cart unfrozen")
}
