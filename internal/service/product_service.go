package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GTDGit/gtd_dashboard/internal/analytics"
	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

// ProductService handles product CRUD with derived sales counts.
type ProductService struct {
	store repository.Store
	now   func() time.Time
}

// NewProductService constructs a ProductService.
func NewProductService(store repository.Store, now func() time.Time) *ProductService {
	return &ProductService{store: store, now: now}
}

// CreateProductRequest represents the request to create a product.
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required,notblank"`
	Category      string   `json:"category" binding:"required,notblank"`
	Price         *float64 `json:"price" binding:"required"`
	Stock         *int     `json:"stock" binding:"required"`
	MinStockLevel *int     `json:"min_stock_level"`
	MaxStockLevel *int     `json:"max_stock_level"`
	Vendor        string   `json:"vendor"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,notblank"`
	Category      *string  `json:"category" binding:"omitempty,notblank"`
	Price         *float64 `json:"price"`
	Stock         *int     `json:"stock"`
	MinStockLevel *int     `json:"min_stock_level"`
	MaxStockLevel *int     `json:"max_stock_level"`
	Vendor        *string  `json:"vendor"`
}

// ListProducts returns up to limit products, newest first, each with its
// sold count.
func (s *ProductService) ListProducts(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	var (
		products []models.Product
		orders   []models.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.store.ListProducts(gctx, repository.ListOptions{Limit: limit, Sort: repository.SortNewestFirst})
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.store.ListOrders(gctx, repository.ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sold := analytics.ProductLedger(orders)
	out := make([]models.ProductSummary, len(products))
	for i, p := range products {
		out[i] = models.ProductSummary{Product: p, Sold: sold.For(p.ID, p.Name).Count}
	}
	return out, nil
}

// CreateProduct stores a new product. Names must be unique.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.ProductSummary, error) {
	id, err := utils.GenerateID(utils.PrefixProduct)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		Category:      req.Category,
		Price:         *req.Price,
		Stock:         *req.Stock,
		MinStockLevel: intOrDefault(req.MinStockLevel, models.DefaultMinStockLevel),
		MaxStockLevel: intOrDefault(req.MaxStockLevel, models.DefaultMaxStockLevel),
		Vendor:        orDefault(req.Vendor, models.DefaultVendor),
		CreatedAt:     s.now(),
	}
	if err := s.store.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}
	return &models.ProductSummary{Product: product}, nil
}

// UpdateProduct applies a partial update and returns the product with its
// recomputed sold count.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.ProductSummary, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStockLevel != nil {
		product.MinStockLevel = *req.MinStockLevel
	}
	if req.MaxStockLevel != nil {
		product.MaxStockLevel = *req.MaxStockLevel
	}
	if req.Vendor != nil {
		product.Vendor = *req.Vendor
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrders(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	sold := analytics.ProductLedger(orders).For(product.ID, product.Name).Count
	return &models.ProductSummary{Product: *product, Sold: sold}, nil
}

// DeleteProduct removes a product. Orders keep their name snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
