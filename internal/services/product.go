package service

import (
	"context"
	"log/slog"

	"github.com/The-Charles-Factor/pos22/internal/cache"
	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/pricing"
	repository "github.com/The-Charles-Factor/pos22/internal/repositories"
	"github.com/google/uuid"
)

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache) *ProductService {
	return &ProductService{repo: repo, cache: productCache}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.SellingPrice < req.CostPrice {
		return nil, errors.ValidationError("Selling price cannot be less than cost price")
	}

	product := &models.Product{
		ID:            uuid.NewString(),
		Code:          req.Code,
		PLU:           req.PLU,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		Supplier:      req.Supplier,
		ProfitMargin:  pricing.ProfitMargin(req.SellingPrice, req.CostPrice),
		IsActive:      true,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	cacheKey := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	// zero TTL defers to the configured cache default
	if err := s.cache.Set(ctx, cacheKey, product, 0); err != nil {
		slog.Warn("failed to cache product", slog.String("productId", id), slog.String("error", err.Error()))
	}

	return product, nil
}

// ScanProduct resolves a scanner input against the product code or PLU.
func (s *ProductService) ScanProduct(ctx context.Context, key string) (*models.Product, error) {
	product, err := s.repo.GetProductByScanKey(ctx, key)
	if err != nil {
		return nil, errors.NotFoundError("No product matches the scanned code").WithError(err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}

	if req.SellingPrice != nil {
		product.SellingPrice = *req.SellingPrice
	}

	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if req.MinStockLevel != nil {
		product.MinStockLevel = *req.MinStockLevel
	}

	if req.Supplier != nil {
		product.Supplier = *req.Supplier
	}

	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if product.SellingPrice < product.CostPrice {
		return nil, errors.ValidationError("Selling price cannot be less than cost price")
	}

	product.ProfitMargin = pricing.ProfitMargin(product.SellingPrice, product.CostPrice)

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id)); err != nil {
		slog.Warn("failed to invalidate product cache", slog.String("productId", id), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id)); err != nil {
		slog.Warn("failed to invalidate product cache", slog.String("productId", id), slog.String("error", err.Error()))
	}

	return nil
}

func (s *ProductService) ListProducts(ctx context.Context, category, search string, page, size int) ([]*models.Product, int, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	products, total, err := s.repo.ListProducts(ctx, category, search, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

// ListLowStock returns active products at or below their minimum stock level.
func (s *ProductService) ListLowStock(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch low stock products").WithError(err)
	}

	return products, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}
