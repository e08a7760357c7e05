package repository

import (
	"context"

	"github.com/GTDGit/gtd_dashboard/internal/models"
)

// SortOrder selects one of the fixed orderings a list query may request.
type SortOrder int

const (
	// SortNone leaves row order to the store.
	SortNone SortOrder = iota
	// SortNewestFirst orders by creation timestamp, newest first.
	SortNewestFirst
	// SortLatestDateFirst orders orders by calendar date, latest first,
	// then by creation timestamp. Other tables fall back to SortNewestFirst.
	SortLatestDateFirst
)

// ListOptions controls a list query. A Limit <= 0 returns every row.
type ListOptions struct {
	Limit int
	Sort  SortOrder
}

// OrderStore reads and writes orders.
type OrderStore interface {
	ListOrders(ctx context.Context, opts ListOptions) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	UpdateOrder(ctx context.Context, o *models.Order) error
	DeleteOrder(ctx context.Context, id string) error
}

// ProductStore reads and writes catalog products.
type ProductStore interface {
	ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductByName(ctx context.Context, name string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// CustomerStore reads and writes customers.
type CustomerStore interface {
	ListCustomers(ctx context.Context, opts ListOptions) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	GetCustomerByName(ctx context.Context, name string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

// Store is the full data access surface used by the services.
//
// Get* methods return utils.ErrOrderNotFound, utils.ErrProductNotFound or
// utils.ErrCustomerNotFound when the row does not exist; Update* and Delete*
// return the same errors when no row matched. Creating or renaming a product
// onto an existing name returns utils.ErrDuplicateProductName. Deleting a
// product or customer clears the matching id on orders and keeps the name.
type Store interface {
	OrderStore
	ProductStore
	CustomerStore
	Ping(ctx context.Context) error
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
