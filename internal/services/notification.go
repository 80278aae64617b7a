package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/pkg/sendgrid"
)

// NotificationService renders store emails (receipts, low stock alerts) and
// hands them to the mail provider.
type NotificationService struct {
	email         sendgrid.EmailService
	currency      string
	lowStockEmail string
}

func NewNotificationService(email sendgrid.EmailService, currency, lowStockEmail string) *NotificationService {
	return &NotificationService{
		email:         email,
		currency:      currency,
		lowStockEmail: lowStockEmail,
	}
}

// SendReceipt emails a plain-text receipt for a completed sale.
func (n *NotificationService) SendReceipt(ctx context.Context, to string, sale *models.Sale) error {
	if n.email == nil {
		return nil
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Receipt %s\n", sale.ID)
	fmt.Fprintf(&b, "Cashier: %s\n", sale.CashierName)
	fmt.Fprintf(&b, "Date: %s\n\n", sale.CreatedAt.Format("2006-01-02 15:04"))

	for _, item := range sale.Items {
		fmt.Fprintf(&b, "%-24s x%-3d %s %.2f\n", item.Name, item.Quantity, n.currency, item.TotalPrice)
	}

	fmt.Fprintf(&b, "\nSubtotal: %s %.2f\n", n.currency, sale.Subtotal)
	fmt.Fprintf(&b, "Tax:      %s %.2f\n", n.currency, sale.TaxAmount)
	fmt.Fprintf(&b, "Total:    %s %.2f\n", n.currency, sale.TotalAmount)

	if sale.PaymentMethod == models.PaymentMethodCash {
		fmt.Fprintf(&b, "Cash:     %s %.2f\n", n.currency, sale.CashAmount)
		fmt.Fprintf(&b, "Change:   %s %.2f\n", n.currency, sale.ChangeAmount)
	}

	req := &models.EmailNotificationRequest{
		To:      to,
		Subject: fmt.Sprintf("Your receipt %s", sale.ID),
		Content: b.String(),
	}

	if err := n.email.Send(ctx, req); err != nil {
		return errors.ThirdPartyError("Failed to send receipt email").WithError(err)
	}

	return nil
}

// SendLowStockAlert notifies the configured store address that a product has
// dropped to or below its minimum stock level. No-op when no address is set.
func (n *NotificationService) SendLowStockAlert(ctx context.Context, product *models.Product) error {
	if n.email == nil || n.lowStockEmail == "" {
		return nil
	}

	req := &models.EmailNotificationRequest{
		To:      n.lowStockEmail,
		Subject: fmt.Sprintf("Low stock: %s", product.Name),
		Content: fmt.Sprintf(
			"Product %s (%s) is low on stock.\n\nCurrent stock: %d\nMinimum level: %d\nSupplier: %s\n",
			product.Name, product.Code, product.StockQuantity, product.MinStockLevel, product.Supplier),
	}

	if err := n.email.Send(ctx, req); err != nil {
		return errors.ThirdPartyError("Failed to send low stock alert").WithError(err)
	}

	return nil
}
