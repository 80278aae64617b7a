package models

import "time"

type Product struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	PLU           string    `json:"plu"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	CostPrice     float64   `json:"cost_price"`
	SellingPrice  float64   `json:"selling_price"`
	StockQuantity int       `json:"stock_quantity"`
	MinStockLevel int       `json:"min_stock_level"`
	Supplier      string    `json:"supplier"`
	ProfitMargin  float64   `json:"profit_margin"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Code          string  `json:"code" validate:"required,min=3,max=50"`
	PLU           string  `json:"plu" validate:"required,min=2,max=20"`
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category" validate:"required"`
	CostPrice     float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	MinStockLevel int     `json:"min_stock_level" validate:"gte=0"`
	Supplier      string  `json:"supplier,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	CostPrice     *float64 `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	SellingPrice  *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	MinStockLevel *int     `json:"min_stock_level,omitempty" validate:"omitempty,gte=0"`
	Supplier      *string  `json:"supplier,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}
