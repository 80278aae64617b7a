package models

import "time"

type Employee struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	MonthlySalary float64   `json:"monthly_salary"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	IsActive      bool      `json:"is_active"`
	HireDate      time.Time `json:"hire_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateEmployeeRequest struct {
	EmployeeID    string  `json:"employee_id" validate:"required,min=3,max=20"`
	FullName      string  `json:"full_name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required,min=10"`
	Role          string  `json:"role" validate:"required,oneof=cashier manager admin"`
	MonthlySalary float64 `json:"monthly_salary" validate:"gt=0"`
	BankName      string  `json:"bank_name" validate:"required"`
	AccountNumber string  `json:"account_number" validate:"required"`
	HireDate      string  `json:"hire_date,omitempty"`
}

type UpdateEmployeeRequest struct {
	FullName      *string  `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string  `json:"phone,omitempty" validate:"omitempty,min=10"`
	Role          *string  `json:"role,omitempty" validate:"omitempty,oneof=cashier manager admin"`
	MonthlySalary *float64 `json:"monthly_salary,omitempty" validate:"omitempty,gt=0"`
	BankName      *string  `json:"bank_name,omitempty"`
	AccountNumber *string  `json:"account_number,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

type PayrollPaymentType string

const (
	PayrollPaymentSalary  PayrollPaymentType = "salary"
	PayrollPaymentAdvance PayrollPaymentType = "advance"
)

// PayrollPayment records one simulated bank transfer to an employee.
type PayrollPayment struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employee_id"`
	Amount     float64            `json:"amount"`
	Type       PayrollPaymentType `json:"type"`
	Reference  string             `json:"reference"`
	PaidAt     time.Time          `json:"paid_at"`
}

type RunPayrollRequest struct {
	EmployeeIDs []string           `json:"employee_ids" validate:"required,min=1"`
	Type        PayrollPaymentType `json:"type" validate:"omitempty,oneof=salary advance"`
}

type PayrollRunResult struct {
	Payments    []PayrollPayment `json:"payments"`
	Count       int              `json:"count"`
	TotalAmount float64          `json:"total_amount"`
	Progress    []string         `json:"progress,omitempty"`
}
