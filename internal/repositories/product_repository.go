package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProductByScanKey(ctx context.Context, key string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, category, search string, page, size int) ([]*models.Product, int, error)
	ListLowStock(ctx context.Context) ([]*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	AdjustStock(ctx context.Context, productID string, delta int) error
	StockCounts(ctx context.Context) (lowStock, outOfStock, active int, err error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, code, plu, name, description, category, cost_price, selling_price,
	stock_quantity, min_stock_level, supplier, profit_margin, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}

	err := row.Scan(&p.ID, &p.Code, &p.PLU, &p.Name, &p.Description, &p.Category,
		&p.CostPrice, &p.SellingPrice, &p.StockQuantity, &p.MinStockLevel,
		&p.Supplier, &p.ProfitMargin, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (id, code, plu, name, description, category, cost_price, selling_price,
				stock_quantity, min_stock_level, supplier, profit_margin, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.Code, product.PLU, product.Name,
		product.Description, product.Category, product.CostPrice, product.SellingPrice,
		product.StockQuantity, product.MinStockLevel, product.Supplier, product.ProfitMargin,
		product.IsActive).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return product, nil
}

// GetProductByScanKey resolves a scanner input against either the product
// code or the PLU.
func (r *productRepository) GetProductByScanKey(ctx context.Context, key string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1 OR plu = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, key))
	if err != nil {
		return nil, fmt.Errorf("querying product by scan key: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, description = $2, category = $3, cost_price = $4,
			selling_price = $5, stock_quantity = $6, min_stock_level = $7, supplier = $8,
			profit_margin = $9, is_active = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Category,
		product.CostPrice, product.SellingPrice, product.StockQuantity, product.MinStockLevel,
		product.Supplier, product.ProfitMargin, product.IsActive, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, category, search string, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := ` WHERE ($1 = '' OR category = $1)
		AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR code ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`+filter, category, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT ` + productColumns + ` FROM products` + filter + ` ORDER BY name LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(dbCtx, query, category, search, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) ListLowStock(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products
		WHERE stock_quantity <= min_stock_level AND is_active = TRUE
		ORDER BY stock_quantity`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *productRepository) ListCategories(ctx context.Context) ([]string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var categories []string

	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// AdjustStock applies a relative stock change in one atomic statement. Stock
// never goes below zero.
func (r *productRepository) AdjustStock(ctx context.Context, productID string, delta int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET stock_quantity = GREATEST(stock_quantity + $2, 0), updated_at = NOW() WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, productID, delta)
	if err != nil {
		return fmt.Errorf("adjusting stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) StockCounts(ctx context.Context) (int, int, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT
		COUNT(*) FILTER (WHERE stock_quantity <= min_stock_level AND stock_quantity > 0),
		COUNT(*) FILTER (WHERE stock_quantity = 0),
		COUNT(*) FILTER (WHERE is_active)
		FROM products`

	var low, out, active int
	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&low, &out, &active); err != nil {
		return 0, 0, 0, err
	}

	return low, out, active, nil
}
