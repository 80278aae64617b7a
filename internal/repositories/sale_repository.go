package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/utils"
)

// SaleRepository is the append-only sales log. Sales are immutable once
// written and listed newest-first.
type SaleRepository interface {
	AppendSale(ctx context.Context, sale *models.Sale) error
	GetSaleByID(ctx context.Context, id string) (*models.Sale, error)
	ListSales(ctx context.Context, page, size int) ([]*models.Sale, int, error)
	ListSalesSince(ctx context.Context, since time.Time) ([]*models.Sale, error)
}

type saleRepository struct {
	DB *sql.DB
}

func NewSaleRepo(db *sql.DB) SaleRepository {
	return &saleRepository{DB: db}
}

const saleColumns = `id, items, subtotal, tax_amount, discount_amount, total_amount, total_profit,
	payment_method, cash_amount, change_amount, cashier_name, status, created_at`

func (r *saleRepository) AppendSale(ctx context.Context, sale *models.Sale) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal sale items: %w", err)
	}

	query := `
		INSERT INTO sales (id, items, subtotal, tax_amount, discount_amount, total_amount, total_profit,
			payment_method, cash_amount, change_amount, cashier_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.DB.ExecContext(dbCtx, query, sale.ID, items, sale.Subtotal, sale.TaxAmount,
		sale.DiscountAmount, sale.TotalAmount, sale.TotalProfit, sale.PaymentMethod,
		sale.CashAmount, sale.ChangeAmount, sale.CashierName, sale.Status, sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	return nil
}

func scanSale(row interface{ Scan(...any) error }) (*models.Sale, error) {
	sale := &models.Sale{}

	var items []byte

	err := row.Scan(&sale.ID, &items, &sale.Subtotal, &sale.TaxAmount, &sale.DiscountAmount,
		&sale.TotalAmount, &sale.TotalProfit, &sale.PaymentMethod, &sale.CashAmount,
		&sale.ChangeAmount, &sale.CashierName, &sale.Status, &sale.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &sale.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sale items: %w", err)
	}

	return sale, nil
}

func (r *saleRepository) GetSaleByID(ctx context.Context, id string) (*models.Sale, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	sale, err := scanSale(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get the sale: %w", err)
	}

	return sale, nil
}

func (r *saleRepository) ListSales(ctx context.Context, page, size int) ([]*models.Sale, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM sales`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var sales []*models.Sale

	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

func (r *saleRepository) ListSalesSince(ctx context.Context, since time.Time) ([]*models.Sale, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + saleColumns + ` FROM sales WHERE created_at >= $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, since)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var sales []*models.Sale

	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}

		sales = append(sales, sale)
	}

	return sales, rows.Err()
}
