package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/utils"
)

type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	RecordPayrollPayment(ctx context.Context, payment *models.PayrollPayment) error
	ListPayrollPayments(ctx context.Context, page, size int) ([]*models.PayrollPayment, int, error)
}

type employeeRepository struct {
	DB *sql.DB
}

func NewEmployeeRepo(db *sql.DB) EmployeeRepository {
	return &employeeRepository{DB: db}
}

const employeeColumns = `id, employee_id, full_name, email, phone, role, monthly_salary,
	bank_name, account_number, is_active, hire_date, created_at, updated_at`

func scanEmployee(row interface{ Scan(...any) error }) (*models.Employee, error) {
	e := &models.Employee{}

	err := row.Scan(&e.ID, &e.EmployeeID, &e.FullName, &e.Email, &e.Phone, &e.Role,
		&e.MonthlySalary, &e.BankName, &e.AccountNumber, &e.IsActive, &e.HireDate,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (r *employeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO employees (id, employee_id, full_name, email, phone, role, monthly_salary,
				bank_name, account_number, is_active, hire_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, employee.ID, employee.EmployeeID, employee.FullName,
		employee.Email, employee.Phone, employee.Role, employee.MonthlySalary, employee.BankName,
		employee.AccountNumber, employee.IsActive, employee.HireDate).Scan(&employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	employee, err := scanEmployee(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying employee: %w", err)
	}

	return employee, nil
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE employees SET full_name = $1, email = $2, phone = $3, role = $4, monthly_salary = $5,
			bank_name = $6, account_number = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, employee.FullName, employee.Email, employee.Phone,
		employee.Role, employee.MonthlySalary, employee.BankName, employee.AccountNumber,
		employee.IsActive, employee.ID).Scan(&employee.UpdatedAt)
}

func (r *employeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
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

func (r *employeeRepository) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY employee_id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var employees []*models.Employee

	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}

		employees = append(employees, employee)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) RecordPayrollPayment(ctx context.Context, payment *models.PayrollPayment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO payroll_payments (id, employee_id, amount, type, reference, paid_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(dbCtx, query, payment.ID, payment.EmployeeID, payment.Amount,
		payment.Type, payment.Reference, payment.PaidAt)
	if err != nil {
		return fmt.Errorf("recording payroll payment: %w", err)
	}

	return nil
}

func (r *employeeRepository) ListPayrollPayments(ctx context.Context, page, size int) ([]*models.PayrollPayment, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM payroll_payments`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT id, employee_id, amount, type, reference, paid_at
		FROM payroll_payments ORDER BY paid_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var payments []*models.PayrollPayment

	for rows.Next() {
		p := &models.PayrollPayment{}
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Amount, &p.Type, &p.Reference, &p.PaidAt); err != nil {
			return nil, 0, err
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
