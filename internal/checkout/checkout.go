// Package checkout sequences a live cart into an immutable sale: guard the
// payment input, freeze the cart, await gateway confirmation, snapshot the
// sale, decrement stock, append to the sales log and reset.
package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/The-Charles-Factor/pos22/internal/cart"
	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/pricing"
	"github.com/The-Charles-Factor/pos22/pkg/gateway"
)

type State string

const (
	StateReady      State = "ready"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
)

// Inventory is the product-store collaborator the commit decrements stock
// through.
type Inventory interface {
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	AdjustStock(ctx context.Context, productID string, delta int) error
}

// SalesLog is the persistence collaborator a completed sale is handed off to.
type SalesLog interface {
	AppendSale(ctx context.Context, sale *models.Sale) error
}

// Machine drives a single cart through Ready -> Processing -> Completed. There
// is exactly one machine per cart and at most one in-flight checkout.
type Machine struct {
	mu       sync.Mutex
	state    State
	lastSale *models.Sale

	cart       *cart.Cart
	gateway    gateway.Gateway
	inventory  Inventory
	salesLog   SalesLog
	taxRate    float64
	resetAfter time.Duration
}

// New returns a machine in the Ready state. resetAfter > 0 schedules the
// automatic Completed -> Ready transition once a sale commits; zero leaves the
// reset to an explicit call.
func New(c *cart.Cart, gw gateway.Gateway, inventory Inventory, salesLog SalesLog, taxRate float64, resetAfter time.Duration) *Machine {
	return &Machine{
		state:      StateReady,
		cart:       c,
		gateway:    gw,
		inventory:  inventory,
		salesLog:   salesLog,
		taxRate:    taxRate,
		resetAfter: resetAfter,
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// LastSale returns the sale of the current Completed window, nil otherwise.
func (m *Machine) LastSale() *models.Sale {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastSale
}

// Submit runs one checkout. Guard failures leave the machine in Ready and the
// cart untouched; a gateway failure transitions Processing -> Ready. On
// success the cart is cleared and the machine rests in Completed until reset.
func (m *Machine) Submit(ctx context.Context, payment *models.PaymentInput, cashierName string, onProgress gateway.ProgressFunc) (*models.Sale, error) {
	lines, totals, err := m.begin(payment)
	if err != nil {
		return nil, err
	}

	txnID, err := m.gateway.Process(ctx, totals.TotalAmount, onProgress)
	if err != nil {
		m.abort()

		return nil, errors.PaymentFailedError("Payment was not confirmed").WithError(err)
	}

	sale := buildSale(txnID, lines, totals, payment, cashierName)

	m.applySideEffects(ctx, sale)

	if err := m.salesLog.AppendSale(ctx, sale); err != nil {
		m.abort()

		return nil, errors.DatabaseError("Failed to record sale").WithError(err)
	}

	m.complete(sale)

	return sale, nil
}

// begin validates the payment against the current cart, freezes the cart and
// enters Processing. It returns the frozen snapshot and its totals.
func (m *Machine) begin(payment *models.PaymentInput) ([]models.CartLine, models.CartTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateReady {
		return nil, models.CartTotals{}, errors.CheckoutInFlightError("A checkout is already in progress")
	}

	lines := m.cart.Lines()
	if len(lines) == 0 {
		return nil, models.CartTotals{}, errors.BadRequestError("Cannot checkout an empty cart")
	}

	totals := pricing.ComputeTotals(lines, m.taxRate)

	if err := validatePayment(payment, totals.TotalAmount); err != nil {
		return nil, models.CartTotals{}, err
	}

	if !m.cart.Freeze() {
		return nil, models.CartTotals{}, errors.CheckoutInFlightError("Cart is locked by another checkout")
	}

	m.state = StateProcessing

	return lines, totals, nil
}

func validatePayment(payment *models.PaymentInput, total float64) error {
	switch payment.Method {
	case models.PaymentMethodCash:
		if payment.CashAmount < total {
			return errors.InsufficientPaymentError("Insufficient cash tendered")
		}
	case models.PaymentMethodCard:
		cd := payment.CardDetails
		if cd == nil || cd.Number == "" || cd.Expiry == "" || cd.CVV == "" {
			return errors.ValidationError("Card number, expiry and CVV are required")
		}
	case models.PaymentMethodMobileMoney:
		// confirmed by the gateway alone
	default:
		return errors.ValidationError("Unsupported payment method")
	}

	return nil
}

// applySideEffects decrements stock for every sale item. A product that no
// longer exists in the catalog is skipped with a warning; the sale still
// commits.
func (m *Machine) applySideEffects(ctx context.Context, sale *models.Sale) {
	for _, item := range sale.Items {
		if _, err := m.inventory.GetProductByID(ctx, item.ProductID); err != nil {
			slog.Warn("skipping stock decrement for missing product",
				slog.String("productId", item.ProductID),
				slog.String("saleId", sale.ID))

			continue
		}

		if err := m.inventory.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			slog.Error("failed to decrement stock",
				slog.String("productId", item.ProductID),
				slog.String("saleId", sale.ID),
				slog.String("error", err.Error()))
		}
	}
}

func buildSale(txnID string, lines []models.CartLine, totals models.CartTotals, payment *models.PaymentInput, cashierName string) *models.Sale {
	items := make([]models.SaleItem, 0, len(lines))

	for _, line := range lines {
		items = append(items, models.SaleItem{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.CurrentPrice,
			OriginalPrice: line.OriginalPrice,
			Discount:      pricing.RoundCents(line.OriginalPrice - line.CurrentPrice),
			TotalPrice:    pricing.RoundCents(pricing.LineTotal(line.CurrentPrice, line.Quantity)),
			CostPrice:     line.CostPrice,
			Profit:        pricing.RoundCents((line.CurrentPrice - line.CostPrice) * float64(line.Quantity)),
		})
	}

	sale := &models.Sale{
		ID:             txnID,
		Items:          items,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: 0,
		TotalAmount:    totals.TotalAmount,
		TotalProfit:    totals.TotalProfit,
		PaymentMethod:  payment.Method,
		CashierName:    cashierName,
		Status:         models.SaleStatusCompleted,
		CreatedAt:      time.Now().UTC(),
	}

	if payment.Method == models.PaymentMethodCash {
		sale.CashAmount = payment.CashAmount
		sale.ChangeAmount = pricing.ChangeDue(totals.TotalAmount, payment.CashAmount)
	}

	return sale
}

// abort returns a failed checkout to Ready with the cart intact.
func (m *Machine) abort() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart.Unfreeze()
	m.state = StateReady
}

func (m *Machine) complete(sale *models.Sale) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart.Reset()
	m.lastSale = sale
	m.state = StateCompleted

	if m.resetAfter > 0 {
		time.AfterFunc(m.resetAfter, m.Reset)
	}
}

// Reset drops the receipt reference and returns to Ready. Calling it in any
// state other than Completed is a no-op.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateCompleted {
		return
	}

	m.lastSale = nil
	m.state = StateReady
}
