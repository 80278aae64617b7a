package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/pricing"
	repository "github.com/The-Charles-Factor/pos22/internal/repositories"
	"github.com/The-Charles-Factor/pos22/pkg/gateway"
	"github.com/google/uuid"
)

const advanceRate = 0.40

// PayrollService manages employee records and runs simulated bulk salary
// transfers through the bank gateway.
type PayrollService struct {
	repo        repository.EmployeeRepository
	bankGateway gateway.Gateway
}

func NewPayrollService(repo repository.EmployeeRepository, bankGateway gateway.Gateway) *PayrollService {
	return &PayrollService{repo: repo, bankGateway: bankGateway}
}

func (s *PayrollService) CreateEmployee(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	hireDate := time.Now().UTC()

	if req.HireDate != "" {
		parsed, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return nil, errors.ValidationError("Invalid hire date, expected YYYY-MM-DD").WithError(err)
		}

		hireDate = parsed
	}

	now := time.Now().UTC()
	employee := &models.Employee{
		ID:            uuid.NewString(),
		EmployeeID:    req.EmployeeID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Role:          req.Role,
		MonthlySalary: req.MonthlySalary,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IsActive:      true,
		HireDate:      hireDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		return nil, errors.DatabaseError("Failed to create employee").WithError(err)
	}

	return employee, nil
}

func (s *PayrollService) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Employee not found")
		}

		return nil, errors.DatabaseError("Failed to fetch employee").WithError(err)
	}

	return employee, nil
}

func (s *PayrollService) UpdateEmployee(ctx context.Context, id string, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}

	if req.Email != nil {
		employee.Email = *req.Email
	}

	if req.Phone != nil {
		employee.Phone = *req.Phone
	}

	if req.Role != nil {
		employee.Role = *req.Role
	}

	if req.MonthlySalary != nil {
		employee.MonthlySalary = *req.MonthlySalary
	}

	if req.BankName != nil {
		employee.BankName = *req.BankName
	}

	if req.AccountNumber != nil {
		employee.AccountNumber = *req.AccountNumber
	}

	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	employee.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateEmployee(ctx, employee); err != nil {
		return nil, errors.DatabaseError("Failed to update employee").WithError(err)
	}

	return employee, nil
}

func (s *PayrollService) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Employee not found")
		}

		return errors.DatabaseError("Failed to delete employee").WithError(err)
	}

	return nil
}

func (s *PayrollService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch employees").WithError(err)
	}

	return employees, nil
}

func (s *PayrollService) ListPayrollPayments(ctx context.Context, page, size int) ([]*models.PayrollPayment, int, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	payments, total, err := s.repo.ListPayrollPayments(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch payroll payments").WithError(err)
	}

	return payments, total, nil
}

// RunPayroll pays the selected employees in one batch. A salary run pays each
// employee their full monthly salary; an advance pays 40% of it. The whole
// batch goes through the bank gateway as a single transfer, so a gateway
// decline pays nobody.
func (s *PayrollService) RunPayroll(ctx context.Context, req *models.RunPayrollRequest, onProgress gateway.ProgressFunc) (*models.PayrollRunResult, error) {
	paymentType := req.Type
	if paymentType == "" {
		paymentType = models.PayrollPaymentSalary
	}

	type pending struct {
		employee *models.Employee
		amount   float64
	}

	var (
		batch []pending
		total float64
	)

	for _, id := range req.EmployeeIDs {
		employee, err := s.repo.GetEmployeeByID(ctx, id)
		if err != nil {
			slog.Warn("payroll: skipping unknown employee", slog.String("employeeId", id))
			continue
		}

		if !employee.IsActive {
			slog.Warn("payroll: skipping inactive employee", slog.String("employeeId", id))
			continue
		}

		amount := employee.MonthlySalary
		if paymentType == models.PayrollPaymentAdvance {
			amount = pricing.RoundCents(employee.MonthlySalary * advanceRate)
		}

		batch = append(batch, pending{employee: employee, amount: amount})
		total += amount
	}

	if len(batch) == 0 {
		return nil, errors.BadRequestError("No payable employees in the selection")
	}

	total = pricing.RoundCents(total)

	var progress []string

	reference, err := s.bankGateway.Process(ctx, total, func(stage string) {
		progress = append(progress, stage)

		if onProgress != nil {
			onProgress(stage)
		}
	})
	if err != nil {
		return nil, errors.PaymentFailedError("Bank transfer failed").WithError(err)
	}

	now := time.Now().UTC()
	result := &models.PayrollRunResult{Progress: progress}

	for _, p := range batch {
		payment := models.PayrollPayment{
			ID:         uuid.NewString(),
			EmployeeID: p.employee.ID,
			Amount:     p.amount,
			Type:       paymentType,
			Reference:  reference,
			PaidAt:     now,
		}

		if err := s.repo.RecordPayrollPayment(ctx, &payment); err != nil {
			slog.Error("payroll: failed to record payment",
				slog.String("employeeId", p.employee.ID),
				slog.String("error", err.Error()))
			continue
		}

		result.Payments = append(result.Payments, payment)
	}

	result.Count = len(result.Payments)
	result.TotalAmount = total

	return result, nil
}
