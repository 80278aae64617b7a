// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) GetProductByScanKey(ctx context.Context, key string) (*models.Product, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, category, search string, page, size int) ([]*models.Product, int, error) {
	args := m.Called(ctx, category, search, page, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *ProductRepository) ListLowStock(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *ProductRepository) AdjustStock(ctx context.Context, productID string, delta int) error {
	args := m.Called(ctx, productID, delta)

	return args.Error(0)
}

func (m *ProductRepository) StockCounts(ctx context.Context) (int, int, int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

type SaleRepository struct {
	mock.Mock
}

func (m *SaleRepository) AppendSale(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)

	return args.Error(0)
}

func (m *SaleRepository) GetSaleByID(ctx context.Context, id string) (*models.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *SaleRepository) ListSales(ctx context.Context, page, size int) ([]*models.Sale, int, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]*models.Sale), args.Int(1), args.Error(2)
}

func (m *SaleRepository) ListSalesSince(ctx context.Context, since time.Time) ([]*models.Sale, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Sale), args.Error(1)
}

type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)

	return args.Error(0)
}

func (m *EmployeeRepository) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *EmployeeRepository) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)

	return args.Error(0)
}

func (m *EmployeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *EmployeeRepository) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Employee), args.Error(1)
}

func (m *EmployeeRepository) RecordPayrollPayment(ctx context.Context, payment *models.PayrollPayment) error {
	args := m.Called(ctx, payment)

	return args.Error(0)
}

func (m *EmployeeRepository) ListPayrollPayments(ctx context.Context, page, size int) ([]*models.PayrollPayment, int, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]*models.PayrollPayment), args.Int(1), args.Error(2)
}
