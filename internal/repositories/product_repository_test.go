package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/The-Charles-Factor/pos22/internal/models"
	repository "github.com/The-Charles-Factor/pos22/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRows = []string{
	"id", "code", "plu", "name", "description", "category", "cost_price", "selling_price",
	"stock_quantity", "min_stock_level", "supplier", "profit_margin", "is_active", "created_at", "updated_at",
}

func productRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(productRows).
		AddRow("p-1", "HAM-001", "1001", "Claw Hammer", "16oz claw hammer", "Tools",
			8.50, 15.99, 40, 5, "Jua Kali Supplies", 46.84, true, now, now)
}

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo)
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("CreateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			product := &models.Product{
				ID:           "p-1",
				Code:         "HAM-001",
				PLU:          "1001",
				Name:         "Claw Hammer",
				Category:     "Tools",
				CostPrice:    8.50,
				SellingPrice: 15.99,
				IsActive:     true,
			}

			mock.ExpectQuery(`INSERT INTO products`).
				WithArgs(product.ID, product.Code, product.PLU, product.Name, product.Description,
					product.Category, product.CostPrice, product.SellingPrice, product.StockQuantity,
					product.MinStockLevel, product.Supplier, product.ProfitMargin, product.IsActive).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreateProduct(ctx, product)

			// Assert
			require.NoError(t, err)
			assert.WithinDuration(t, now, product.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`INSERT INTO products`).
				WillReturnError(errors.New("database insertion error"))

			// Act
			err := repo.CreateProduct(ctx, &models.Product{ID: "p-err"})

			// Assert
			assert.Error(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
				WithArgs("p-1").
				WillReturnRows(productRow(now))

			// Act
			product, err := repo.GetProductByID(ctx, "p-1")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "Claw Hammer", product.Name)
			assert.Equal(t, 15.99, product.SellingPrice)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
				WithArgs("missing").
				WillReturnError(sql.ErrNoRows)

			// Act
			product, err := repo.GetProductByID(ctx, "missing")

			// Assert
			assert.Error(t, err)
			assert.Nil(t, product)
			assert.True(t, errors.Is(err, sql.ErrNoRows))
		})
	})

	t.Run("GetProductByScanKey", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT .+ FROM products WHERE code = \$1 OR plu = \$1`).
			WithArgs("1001").
			WillReturnRows(productRow(now))

		// Act
		product, err := repo.GetProductByScanKey(ctx, "1001")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "p-1", product.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AdjustStock", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`UPDATE products SET stock_quantity = GREATEST\(stock_quantity \+ \$2, 0\)`).
				WithArgs("p-1", -2).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.AdjustStock(ctx, "p-1", -2)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Unknown Product", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`UPDATE products SET stock_quantity = GREATEST\(stock_quantity \+ \$2, 0\)`).
				WithArgs("missing", -1).
				WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.AdjustStock(ctx, "missing", -1)

			// Assert
			assert.True(t, errors.Is(err, sql.ErrNoRows))
		})
	})

	t.Run("ListProducts", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WithArgs("Tools", "").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .+ FROM products .+ ORDER BY name LIMIT \$3 OFFSET \$4`).
			WithArgs("Tools", "", 20, 0).
			WillReturnRows(productRow(now))

		// Act
		products, total, err := repo.ListProducts(ctx, "Tools", "", 1, 20)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, "Claw Hammer", products[0].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListLowStock", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT .+ FROM products\s+WHERE stock_quantity <= min_stock_level AND is_active = TRUE`).
			WillReturnRows(productRow(now))

		// Act
		products, err := repo.ListLowStock(ctx)

		// Assert
		require.NoError(t, err)
		assert.Len(t, products, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListCategories", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT DISTINCT category FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Power Tools").AddRow("Tools"))

		// Act
		categories, err := repo.ListCategories(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Power Tools", "Tools"}, categories)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StockCounts", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT\s+COUNT\(\*\) FILTER`).
			WillReturnRows(sqlmock.NewRows([]string{"low", "out", "active"}).AddRow(3, 1, 42))

		// Act
		low, out, active, err := repo.StockCounts(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, low)
		assert.Equal(t, 1, out)
		assert.Equal(t, 42, active)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
				WithArgs("p-1").
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.DeleteProduct(ctx, "p-1")

			// Assert
			require.NoError(t, err)
		})

		t.Run("Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
				WithArgs("missing").
				WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.DeleteProduct(ctx, "missing")

			// Assert
			assert.True(t, errors.Is(err, sql.ErrNoRows))
		})
	})
}
