package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/The-Charles-Factor/pos22/internal/cache"
	"github.com/The-Charles-Factor/pos22/internal/cart"
	"github.com/The-Charles-Factor/pos22/internal/checkout"
	"github.com/The-Charles-Factor/pos22/internal/config"
	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	repository "github.com/The-Charles-Factor/pos22/internal/repositories"
	"github.com/The-Charles-Factor/pos22/pkg/gateway"
)

// session pairs one cashier's cart with its checkout machine. Carts are not
// shared between cashiers and at most one checkout per cart is in flight.
type session struct {
	cart    *cart.Cart
	machine *checkout.Machine
}

type SalesService struct {
	mu       sync.Mutex
	sessions map[string]*session

	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	inventory   checkout.Inventory
	gateway     gateway.Gateway
	notifier    *NotificationService
	cfg         *config.POS
}

func NewSalesService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, productCache cache.Cache, gw gateway.Gateway, notifier *NotificationService, cfg *config.POS) *SalesService {
	return &SalesService{
		sessions:    make(map[string]*session),
		productRepo: productRepo,
		saleRepo:    saleRepo,
		inventory:   &cachedInventory{repo: productRepo, cache: productCache},
		gateway:     gw,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// cachedInventory is the inventory collaborator the checkout commit runs
// through. It drops the cached catalog entry after every stock decrement, so
// product reads never serve pre-sale quantities until the TTL expires.
type cachedInventory struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func (i *cachedInventory) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return i.repo.GetProductByID(ctx, id)
}

func (i *cachedInventory) AdjustStock(ctx context.Context, productID string, delta int) error {
	if err := i.repo.AdjustStock(ctx, productID, delta); err != nil {
		return err
	}

	if err := i.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, productID)); err != nil {
		slog.Warn("failed to invalidate product cache",
			slog.String("productId", productID), slog.String("error", err.Error()))
	}

	return nil
}

func (s *SalesService) session(cashierID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[cashierID]
	if !ok {
		c := cart.New()
		sess = &session{
			cart:    c,
			machine: checkout.New(c, s.gateway, s.inventory, s.saleRepo, s.cfg.TaxRate, s.cfg.ReceiptDisplayWindow),
		}
		s.sessions[cashierID] = sess
	}

	return sess
}

func (s *SalesService) view(c *cart.Cart) *models.CartView {
	return &models.CartView{
		Lines:  c.Lines(),
		Totals: c.Totals(s.cfg.TaxRate),
	}
}

func (s *SalesService) GetCart(cashierID string) *models.CartView {
	return s.view(s.session(cashierID).cart)
}

// AddItem looks the product up in the catalog and adds it to the cashier's
// cart, merging with any existing line for the same product.
func (s *SalesService) AddItem(ctx context.Context, cashierID string, req *models.AddItemRequest) (*models.CartView, error) {
	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if !product.IsActive {
		return nil, errors.BadRequestError("Product is not available for sale")
	}

	sess := s.session(cashierID)
	sess.cart.Add(product, req.Quantity)

	return s.view(sess.cart), nil
}

// UpdateLine applies a quantity change or a manual price override. Invalid
// values are ignored by the cart, matching the register's behavior.
func (s *SalesService) UpdateLine(cashierID, productID string, req *models.UpdateLineRequest) *models.CartView {
	sess := s.session(cashierID)
	sess.cart.UpdateLine(productID, req)

	return s.view(sess.cart)
}

func (s *SalesService) RemoveLine(cashierID, productID string) *models.CartView {
	sess := s.session(cashierID)
	sess.cart.Remove(productID)

	return s.view(sess.cart)
}

func (s *SalesService) ClearCart(cashierID string) *models.CartView {
	sess := s.session(cashierID)
	sess.cart.Clear()

	return s.view(sess.cart)
}

// Checkout runs the cashier's cart through the state machine and returns the
// committed sale together with the gateway progress stages.
func (s *SalesService) Checkout(ctx context.Context, cashierID, cashierName string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	sess := s.session(cashierID)

	var progress []string

	sale, err := sess.machine.Submit(ctx, &req.Payment, cashierName, func(stage string) {
		progress = append(progress, stage)
		slog.Info("checkout progress", slog.String("cashierId", cashierID), slog.String("stage", stage))
	})
	if err != nil {
		return nil, err
	}

	s.notifyAfterSale(sale, req.CustomerEmail)

	return &models.CheckoutResponse{Sale: sale, Progress: progress}, nil
}

// ResetCheckout ends the receipt display window early and returns the till to
// ready.
func (s *SalesService) ResetCheckout(cashierID string) {
	s.session(cashierID).machine.Reset()
}

func (s *SalesService) CheckoutState(cashierID string) checkout.State {
	return s.session(cashierID).machine.State()
}

func (s *SalesService) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Sale not found").WithError(err)
	}

	return sale, nil
}

// ListSales returns the sales log, newest first.
func (s *SalesService) ListSales(ctx context.Context, page, size int) ([]*models.Sale, int, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	sales, total, err := s.saleRepo.ListSales(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch sales").WithError(err)
	}

	return sales, total, nil
}

// notifyAfterSale emails the receipt when the customer asked for one and fires
// low-stock alerts for products the sale drained past their minimum level.
// Notification failures never affect the committed sale.
func (s *SalesService) notifyAfterSale(sale *models.Sale, customerEmail string) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx := context.Background()

		if customerEmail != "" {
			if err := s.notifier.SendReceipt(ctx, customerEmail, sale); err != nil {
				slog.Warn("receipt email failed",
					slog.String("saleId", sale.ID),
					slog.String("error", err.Error()))
			}
		}

		for _, item := range sale.Items {
			product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
			if err != nil {
				continue
			}

			if product.StockQuantity <= product.MinStockLevel {
				if err := s.notifier.SendLowStockAlert(ctx, product); err != nil {
					slog.Warn("low stock alert failed",
						slog.String("productId", product.ID),
						slog.String("error", err.Error()))
				}
			}
		}
	}()
}
