package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/repositories/mocks"
	service "github.com/The-Charles-Factor/pos22/internal/services"
	"github.com/The-Charles-Factor/pos22/pkg/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeEmployee(id string, salary float64) *models.Employee {
	return &models.Employee{
		ID:            id,
		EmployeeID:    "EMP-" + id,
		FullName:      "Employee " + id,
		MonthlySalary: salary,
		IsActive:      true,
	}
}

func TestRunPayroll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Salary Run Pays Full Salary", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EmployeeRepository)
		payrollService := service.NewPayrollService(mockRepo, gateway.NewSimulatedBankTransfer(0))

		mockRepo.On("GetEmployeeByID", mock.Anything, "e-1").Return(activeEmployee("e-1", 45000), nil).Once()
		mockRepo.On("GetEmployeeByID", mock.Anything, "e-2").Return(activeEmployee("e-2", 30000), nil).Once()
		mockRepo.On("RecordPayrollPayment", mock.Anything, mock.MatchedBy(func(p *models.PayrollPayment) bool {
			return p.Type == models.PayrollPaymentSalary && p.Reference != ""
		})).Return(nil).Twice()

		// Act
		result, err := payrollService.RunPayroll(ctx, &models.RunPayrollRequest{
			EmployeeIDs: []string{"e-1", "e-2"},
			Type:        models.PayrollPaymentSalary,
		}, nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
		assert.Equal(t, 75000.0, result.TotalAmount)
		assert.Equal(t, gateway.BankTransferStages, result.Progress)
		assert.Equal(t, result.Payments[0].Reference, result.Payments[1].Reference)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Advance Pays 40 Percent", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EmployeeRepository)
		payrollService := service.NewPayrollService(mockRepo, gateway.NewSimulatedBankTransfer(0))

		mockRepo.On("GetEmployeeByID", mock.Anything, "e-1").Return(activeEmployee("e-1", 45000), nil).Once()
		mockRepo.On("RecordPayrollPayment", mock.Anything, mock.MatchedBy(func(p *models.PayrollPayment) bool {
			return p.Type == models.PayrollPaymentAdvance && p.Amount == 18000.0
		})).Return(nil).Once()

		// Act
		result, err := payrollService.RunPayroll(ctx, &models.RunPayrollRequest{
			EmployeeIDs: []string{"e-1"},
			Type:        models.PayrollPaymentAdvance,
		}, nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 18000.0, result.TotalAmount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Skips Unknown And Inactive Employees", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EmployeeRepository)
		payrollService := service.NewPayrollService(mockRepo, gateway.NewSimulatedBankTransfer(0))

		inactive := activeEmployee("e-3", 20000)
		inactive.IsActive = false

		mockRepo.On("GetEmployeeByID", mock.Anything, "e-1").Return(activeEmployee("e-1", 45000), nil).Once()
		mockRepo.On("GetEmployeeByID", mock.Anything, "ghost").Return(nil, errors.New("sql: no rows in result set")).Once()
		mockRepo.On("GetEmployeeByID", mock.Anything, "e-3").Return(inactive, nil).Once()
		mockRepo.On("RecordPayrollPayment", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		result, err := payrollService.RunPayroll(ctx, &models.RunPayrollRequest{
			EmployeeIDs: []string{"e-1", "ghost", "e-3"},
		}, nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, result.Count)
		assert.Equal(t, 45000.0, result.TotalAmount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - No Payable Employees", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EmployeeRepository)
		payrollService := service.NewPayrollService(mockRepo, gateway.NewSimulatedBankTransfer(0))

		mockRepo.On("GetEmployeeByID", mock.Anything, "ghost").Return(nil, errors.New("sql: no rows in result set")).Once()

		// Act
		result, err := payrollService.RunPayroll(ctx, &models.RunPayrollRequest{EmployeeIDs: []string{"ghost"}}, nil)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "RecordPayrollPayment", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Gateway Decline Pays Nobody", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EmployeeRepository)
		payrollService := service.NewPayrollService(mockRepo, &gateway.Failing{})

		mockRepo.On("GetEmployeeByID", mock.Anything, "e-1").Return(activeEmployee("e-1", 45000), nil).Once()

		// Act
		result, err := payrollService.RunPayroll(ctx, &models.RunPayrollRequest{EmployeeIDs: []string{"e-1"}}, nil)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)

		var appErr *appErrors.AppError

		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodePaymentFailed, appErr.Code)
		mockRepo.AssertNotCalled(t, "RecordPayrollPayment", mock.Anything, mock.Anything)
	})
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Defaults To Active", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EmployeeRepository)
		payrollService := service.NewPayrollService(mockRepo, gateway.NewSimulatedBankTransfer(0))

		mockRepo.On("CreateEmployee", mock.Anything, mock.MatchedBy(func(e *models.Employee) bool {
			return e.IsActive && e.ID != ""
		})).Return(nil).Once()

		// Act
		employee, err := payrollService.CreateEmployee(ctx, &models.CreateEmployeeRequest{
			EmployeeID:    "EMP-001",
			FullName:      "Grace Wanjiru",
			Email:         "grace@store.com",
			Phone:         "0712345678",
			Role:          "cashier",
			MonthlySalary: 35000,
			BankName:      "Equity Bank",
			AccountNumber: "0012345678",
			HireDate:      "2024-03-01",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Grace Wanjiru", employee.FullName)
		assert.Equal(t, 2024, employee.HireDate.Year())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Bad Hire Date", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EmployeeRepository)
		payrollService := service.NewPayrollService(mockRepo, gateway.NewSimulatedBankTransfer(0))

		// Act
		employee, err := payrollService.CreateEmployee(ctx, &models.CreateEmployeeRequest{
			EmployeeID: "EMP-001",
			HireDate:   "01/03/2024",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, employee)
		mockRepo.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)
	})
}

func TestUpdateEmployee(t *testing.T) {
	// Arrange
	mockRepo := new(mocks.EmployeeRepository)
	payrollService := service.NewPayrollService(mockRepo, gateway.NewSimulatedBankTransfer(0))
	ctx := context.Background()

	t.Run("Success - Deactivate", func(t *testing.T) {
		// Arrange
		stored := activeEmployee("e-1", 45000)
		inactive := false

		mockRepo.On("GetEmployeeByID", mock.Anything, "e-1").Return(stored, nil).Once()
		mockRepo.On("UpdateEmployee", mock.Anything, mock.MatchedBy(func(e *models.Employee) bool {
			return !e.IsActive
		})).Return(nil).Once()

		// Act
		employee, err := payrollService.UpdateEmployee(ctx, "e-1", &models.UpdateEmployeeRequest{IsActive: &inactive})

		// Assert
		require.NoError(t, err)
		assert.False(t, employee.IsActive)
		mockRepo.AssertExpectations(t)
	})
}
