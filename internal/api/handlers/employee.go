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

type EmployeeHandler struct {
	payrollService *service.PayrollService
	validator      *validator.Validate
}

func NewEmployeeHandler(payrollService *service.PayrollService) *EmployeeHandler {
	return &EmployeeHandler{payrollService: payrollService, validator: validator.New()}
}

func (h *EmployeeHandler) CreateEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateEmployeeRequest
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}

		employee, err := h.payrollService.CreateEmployee(r.Context(), &req)
		if err != nil {
			logger.Error("Employee creation failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Employee created", slog.String("employeeId", employee.ID))
		response.Success(w, http.StatusCreated, employee)
	}
}

func (h *EmployeeHandler) GetEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Employee id is required"))

			return
		}

		employee, err := h.payrollService.GetEmployee(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, employee)
	}
}

func (h *EmployeeHandler) UpdateEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Employee id is required"))

			return
		}

		var req models.UpdateEmployeeRequest
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}

		employee, err := h.payrollService.UpdateEmployee(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, employee)
	}
}

func (h *EmployeeHandler) DeleteEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Employee id is required"))

			return
		}

		if err := h.payrollService.DeleteEmployee(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"id": id})
	}
}

func (h *EmployeeHandler) ListEmployees() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := h.payrollService.ListEmployees(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, employees)
	}
}

// RunPayroll triggers a simulated bulk bank transfer for the selected
// employees.
func (h *EmployeeHandler) RunPayroll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.RunPayrollRequest
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}

		result, err := h.payrollService.RunPayroll(r.Context(), &req, func(stage string) {
			logger.Info("Payroll progress", slog.String("stage", stage))
		})
		if err != nil {
			logger.Error("Payroll run failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payroll run completed",
			slog.Int("payments", result.Count),
			slog.Float64("total", result.TotalAmount))
		response.Success(w, http.StatusOK, result)
	}
}

func (h *EmployeeHandler) ListPayrollPayments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		size := queryInt(r, "size", 20)

		payments, total, err := h.payrollService.ListPayrollPayments(r.Context(), page, size)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"payments": payments,
			"total":    total,
			"page":     page,
			"size":     size,
		})
	}
}
