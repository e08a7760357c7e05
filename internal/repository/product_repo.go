package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

const productColumns = `id, name, category, price, stock, min_stock_level, max_stock_level, vendor, created_at`

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListProducts returns catalog products, optionally limited and sorted.
func (r *ProductRepository) ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	suffix, args := listSuffix(opts, false)
	q := `SELECT ` + productColumns + ` FROM products` + suffix

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, args...); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// GetProduct returns a single product by id.
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p models.Product
	if err := getOne(ctx, r.db, &p, utils.ErrProductNotFound, "get product", q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductByName returns the product with the given unique name.
func (r *ProductRepository) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	var p models.Product
	if err := getOne(ctx, r.db, &p, utils.ErrProductNotFound, "get product by name", q, name); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a product. A name clash returns utils.ErrDuplicateProductName.
func (r *ProductRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	const q = `
        INSERT INTO products (id, name, category, price, stock, min_stock_level, max_stock_level, vendor, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	stmt, err := r.db.PreparexContext(ctx, q)
	if err != nil {
		return errors.Wrap(err, "create product")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.MinStockLevel, p.MaxStockLevel, p.Vendor, p.CreatedAt,
	)
	if isUniqueViolation(err) {
		return utils.ErrDuplicateProductName
	}
	return errors.Wrap(err, "create product")
}

// UpdateProduct overwrites every mutable column of an existing product.
func (r *ProductRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	const q = `
        UPDATE products SET name = $2, category = $3, price = $4, stock = $5,
            min_stock_level = $6, max_stock_level = $7, vendor = $8
        WHERE id = $1`

	err := execOne(ctx, r.db, utils.ErrProductNotFound, "update product", q,
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.MinStockLevel, p.MaxStockLevel, p.Vendor,
	)
	if isUniqueViolation(err) {
		return utils.ErrDuplicateProductName
	}
	return err
}

// DeleteProduct removes a product. Orders keep their name snapshot; the
// foreign key is cleared by ON DELETE SET NULL.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	const q = `DELETE FROM products WHERE id = $1`
	return execOne(ctx, r.db, utils.ErrProductNotFound, "delete product", q, id)
}
