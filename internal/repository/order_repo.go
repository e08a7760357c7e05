package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

const orderColumns = `id, customer, product, customer_id, product_id, amount, status, date,
        vendor, customer_type, category, created_at`

// OrderRepository handles data access for orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListOrders returns orders in the requested order, optionally limited.
func (r *OrderRepository) ListOrders(ctx context.Context, opts ListOptions) ([]models.Order, error) {
	suffix, args := listSuffix(opts, true)
	q := `SELECT ` + orderColumns + ` FROM orders` + suffix

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, q, args...); err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// GetOrder returns a single order by id.
func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o models.Order
	if err := getOne(ctx, r.db, &o, utils.ErrOrderNotFound, "get order", q, id); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts a new order. ID and CreatedAt must already be set.
func (r *OrderRepository) CreateOrder(ctx context.Context, o *models.Order) error {
	const q = `
        INSERT INTO orders (id, customer, product, customer_id, product_id, amount, status, date,
            vendor, customer_type, category, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	stmt, err := r.db.PreparexContext(ctx, q)
	if err != nil {
		return errors.Wrap(err, "create order")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		o.ID, o.Customer, o.Product, o.CustomerID, o.ProductID, o.Amount, o.Status, o.Date,
		o.Vendor, o.CustomerType, o.Category, o.CreatedAt,
	)
	return errors.Wrap(err, "create order")
}

// UpdateOrder overwrites every mutable column of an existing order.
func (r *OrderRepository) UpdateOrder(ctx context.Context, o *models.Order) error {
	const q = `
        UPDATE orders SET customer = $2, product = $3, customer_id = $4, product_id = $5,
            amount = $6, status = $7, date = $8, vendor = $9, customer_type = $10, category = $11
        WHERE id = $1`

	return execOne(ctx, r.db, utils.ErrOrderNotFound, "update order", q,
		o.ID, o.Customer, o.Product, o.CustomerID, o.ProductID,
		o.Amount, o.Status, o.Date, o.Vendor, o.CustomerType, o.Category,
	)
}

// DeleteOrder removes an order by id.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	const q = `DELETE FROM orders WHERE id = $1`
	return execOne(ctx, r.db, utils.ErrOrderNotFound, "delete order", q, id)
}
