package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
)

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
)

type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// PaymentInput is the method plus its method-specific fields. Card details are
// only checked for non-emptiness, never sent to a real processor.
type PaymentInput struct {
	Method      PaymentMethod `json:"method" validate:"required,oneof=cash card mobile_money"`
	CashAmount  float64       `json:"cash_amount,omitempty"`
	CardDetails *CardDetails  `json:"card_details,omitempty"`
}

// SaleItem is the immutable snapshot of a cart line taken at checkout time.
type SaleItem struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	OriginalPrice float64 `json:"original_price"`
	Discount      float64 `json:"discount"`
	TotalPrice    float64 `json:"total_price"`
	CostPrice     float64 `json:"cost_price"`
	Profit        float64 `json:"profit"`
}

// Sale is the system of record for one completed transaction. It is never
// updated after creation.
type Sale struct {
	ID             string        `json:"id"`
	Items          []SaleItem    `json:"items"`
	Subtotal       float64       `json:"subtotal"`
	TaxAmount      float64       `json:"tax_amount"`
	DiscountAmount float64       `json:"discount_amount"`
	TotalAmount    float64       `json:"total_amount"`
	TotalProfit    float64       `json:"total_profit"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	CashAmount     float64       `json:"cash_amount"`
	ChangeAmount   float64       `json:"change_amount"`
	CashierName    string        `json:"cashier_name"`
	Status         SaleStatus    `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

type CheckoutRequest struct {
	Payment       PaymentInput `json:"payment" validate:"required"`
	CustomerEmail string       `json:"customer_email,omitempty" validate:"omitempty,email"`
}

type CheckoutResponse struct {
	Sale     *Sale    `json:"sale"`
	Progress []string `json:"progress,omitempty"`
}
