package models

// CartLine is one live product entry in the cart. CurrentPrice starts at the
// product's selling price with any bulk discount applied and never exceeds
// OriginalPrice.
type CartLine struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	CurrentPrice  float64 `json:"current_price"`
	OriginalPrice float64 `json:"original_price"`
	CostPrice     float64 `json:"cost_price"`
}

// CartTotals is derived from the lines on every read, never stored.
type CartTotals struct {
	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
	TotalProfit float64 `json:"total_profit"`
}

type CartView struct {
	Lines  []CartLine `json:"lines"`
	Totals CartTotals `json:"totals"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateLineRequest carries an optional quantity change and an optional manual
// price override (an authorized discount).
type UpdateLineRequest struct {
	Quantity *int     `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}
