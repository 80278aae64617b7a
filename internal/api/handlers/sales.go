package handlers

import (
	"log/slog"
	"net/http"

	"github.com/The-Charles-Factor/pos22/internal/api/middleware"
	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/metrics"
	"github.com/The-Charles-Factor/pos22/internal/models"
	service "github.com/The-Charles-Factor/pos22/internal/services"
	"github.com/The-Charles-Factor/pos22/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SalesHandler struct {
	salesService *service.SalesService
	validator    *validator.Validate
}

func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService, validator: validator.New()}
}

func (h *SalesHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := cashierFromContext(w, r)
		if !ok {
			return
		}

		var req models.CheckoutRequest
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}

		resp, err := h.salesService.Checkout(r.Context(), claims.UserID, claims.FullName, &req)
		if err != nil {
			metrics.CheckoutsTotal.WithLabelValues("failed").Inc()
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		metrics.CheckoutsTotal.WithLabelValues("completed").Inc()
		metrics.SaleAmount.Observe(resp.Sale.TotalAmount)
		logger.Info("Sale completed",
			slog.String("saleId", resp.Sale.ID),
			slog.Float64("total", resp.Sale.TotalAmount))
		response.Success(w, http.StatusCreated, resp)
	}
}

// ResetCheckout dismisses the receipt view and returns the till to ready.
func (h *SalesHandler) ResetCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cashierFromContext(w, r)
		if !ok {
			return
		}

		h.salesService.ResetCheckout(claims.UserID)
		response.Success(w, http.StatusOK, map[string]string{
			"state": string(h.salesService.CheckoutState(claims.UserID)),
		})
	}
}

func (h *SalesHandler) ListSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		size := queryInt(r, "size", 20)

		sales, total, err := h.salesService.ListSales(r.Context(), page, size)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"sales": sales,
			"total": total,
			"page":  page,
			"size":  size,
		})
	}
}

func (h *SalesHandler) GetSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Sale id is required"))

			return
		}

		sale, err := h.salesService.GetSale(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, sale)
	}
}
