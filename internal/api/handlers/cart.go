package handlers

import (
	"log/slog"
	"net/http"

	"github.com/The-Charles-Factor/pos22/internal/api/middleware"
	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	service "github.com/The-Charles-Factor/pos22/internal/services"
	"github.com/The-Charles-Factor/pos22/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CartHandler exposes the authenticated cashier's own cart. The cashier id
// comes from the token claims, never from the request.
type CartHandler struct {
	salesService *service.SalesService
	validator    *validator.Validate
}

func NewCartHandler(salesService *service.SalesService) *CartHandler {
	return &CartHandler{salesService: salesService, validator: validator.New()}
}

func cashierFromContext(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cashierFromContext(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.salesService.GetCart(claims.UserID))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cashierFromContext(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}

		view, err := h.salesService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Add to cart failed",
				slog.String("productId", req.ProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) UpdateLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cashierFromContext(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product id is required"))

			return
		}

		var req models.UpdateLineRequest
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}

		response.Success(w, http.StatusOK, h.salesService.UpdateLine(claims.UserID, productID, &req))
	}
}

func (h *CartHandler) RemoveLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cashierFromContext(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product id is required"))

			return
		}

		response.Success(w, http.StatusOK, h.salesService.RemoveLine(claims.UserID, productID))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cashierFromContext(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.salesService.ClearCart(claims.UserID))
	}
}
