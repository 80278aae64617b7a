package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/The-Charles-Factor/pos22/internal/api/handlers"
	cachemocks "github.com/The-Charles-Factor/pos22/internal/cache/mocks"
	"github.com/The-Charles-Factor/pos22/internal/config"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/repositories/mocks"
	service "github.com/The-Charles-Factor/pos22/internal/services"
	"github.com/The-Charles-Factor/pos22/internal/testutils"
	"github.com/The-Charles-Factor/pos22/pkg/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cashierClaims() *models.Claims {
	return &models.Claims{UserID: "2", Username: "cashier", Role: "cashier", FullName: "John Cashier"}
}

func newCartTestStack() (*handlers.CartHandler, *handlers.SalesHandler, *mocks.ProductRepository, *mocks.SaleRepository) {
	mockProducts := new(mocks.ProductRepository)
	mockSales := new(mocks.SaleRepository)
	productCache := new(cachemocks.Cache)
	productCache.On("Delete", mock.Anything, mock.Anything).Return(nil).Maybe()
	salesService := service.NewSalesService(mockProducts, mockSales, productCache, gateway.NewSimulated(0), nil, &config.POS{
		TaxRate:  0.16,
		Currency: "KES",
	})

	return handlers.NewCartHandler(salesService), handlers.NewSalesHandler(salesService), mockProducts, mockSales
}

func TestCartHandlers(t *testing.T) {
	t.Run("Success - Add Item And Read Cart Back", func(t *testing.T) {
		// Arrange
		cartHandler, _, mockProducts, _ := newCartTestStack()

		hammer := &models.Product{ID: "p-1", Name: "Claw Hammer", SellingPrice: 15.99, CostPrice: 8.50, IsActive: true}
		mockProducts.On("GetProductByID", mock.Anything, "p-1").Return(hammer, nil).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: "p-1", Quantity: 2})
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body), cashierClaims(), nil)

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "31.98")

		// Act - read it back
		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, cashierClaims(), nil)
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Claw Hammer")
	})

	t.Run("Failure - No Claims In Context", func(t *testing.T) {
		// Arrange
		cartHandler, _, _, _ := newCartTestStack()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil)

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("Success - Cash Checkout", func(t *testing.T) {
		// Arrange
		cartHandler, salesHandler, mockProducts, mockSales := newCartTestStack()

		hammer := &models.Product{ID: "p-1", Name: "Claw Hammer", SellingPrice: 15.99, CostPrice: 8.50, StockQuantity: 40, IsActive: true}
		mockProducts.On("GetProductByID", mock.Anything, "p-1").Return(hammer, nil)
		mockProducts.On("AdjustStock", mock.Anything, "p-1", -2).Return(nil).Once()
		mockSales.On("AppendSale", mock.Anything, mock.AnythingOfType("*models.Sale")).Return(nil).Once()

		addBody, _ := json.Marshal(models.AddItemRequest{ProductID: "p-1", Quantity: 2})
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(addBody), cashierClaims(), nil)
		cartHandler.AddItem().ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		checkoutBody, _ := json.Marshal(models.CheckoutRequest{
			Payment: models.PaymentInput{Method: models.PaymentMethodCash, CashAmount: 40.00},
		})

		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutBody), cashierClaims(), nil)

		// Act
		salesHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "37.1")
		assert.Contains(t, rr.Body.String(), "John Cashier")
		mockProducts.AssertExpectations(t)
		mockSales.AssertExpectations(t)
	})

	t.Run("Failure - Insufficient Cash", func(t *testing.T) {
		// Arrange
		cartHandler, salesHandler, mockProducts, _ := newCartTestStack()

		hammer := &models.Product{ID: "p-1", Name: "Claw Hammer", SellingPrice: 15.99, CostPrice: 8.50, IsActive: true}
		mockProducts.On("GetProductByID", mock.Anything, "p-1").Return(hammer, nil).Once()

		addBody, _ := json.Marshal(models.AddItemRequest{ProductID: "p-1", Quantity: 2})
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(addBody), cashierClaims(), nil)
		cartHandler.AddItem().ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		checkoutBody, _ := json.Marshal(models.CheckoutRequest{
			Payment: models.PaymentInput{Method: models.PaymentMethodCash, CashAmount: 10.00},
		})

		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutBody), cashierClaims(), nil)

		// Act
		salesHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	})
}
