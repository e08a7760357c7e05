package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

// MemoryStore is an in-memory implementation of Store. Rows are kept in
// insertion order and copied on the way in and out.
type MemoryStore struct {
	mu        sync.RWMutex
	orders    []models.Order
	products  []models.Product
	customers []models.Customer
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Clear removes every row.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders, s.products, s.customers = nil, nil, nil
}

// Orders

func (s *MemoryStore) ListOrders(ctx context.Context, opts ListOptions) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]models.Order, len(s.orders))
	for i := range s.orders {
		out[i] = cloneOrder(s.orders[i])
	}
	s.mu.RUnlock()

	switch opts.Sort {
	case SortNewestFirst:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortLatestDateFirst:
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].Date.Time().Equal(out[j].Date.Time()) {
				return out[i].Date.After(out[j].Date)
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return limit(out, opts.Limit), nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			o := cloneOrder(s.orders[i])
			return &o, nil
		}
	}
	return nil, utils.ErrOrderNotFound
}

func (s *MemoryStore) CreateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, cloneOrder(*o))
	return nil
}

func (s *MemoryStore) UpdateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			updated := cloneOrder(*o)
			updated.CreatedAt = s.orders[i].CreatedAt
			s.orders[i] = updated
			return nil
		}
	}
	return utils.ErrOrderNotFound
}

func (s *MemoryStore) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return utils.ErrOrderNotFound
}

// Products

func (s *MemoryStore) ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	s.mu.RUnlock()

	if opts.Sort != SortNone {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return limit(out, opts.Limit), nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, utils.ErrProductNotFound
}

func (s *MemoryStore) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, utils.ErrProductNotFound
}

func (s *MemoryStore) CreateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.productNameTaken(p.Name, "") {
		return utils.ErrDuplicateProductName
	}
	s.products = append(s.products, *p)
	return nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != p.ID {
			continue
		}
		if s.productNameTaken(p.Name, p.ID) {
			return utils.ErrDuplicateProductName
		}
		updated := *p
		updated.CreatedAt = s.products[i].CreatedAt
		s.products[i] = updated
		return nil
	}
	return utils.ErrProductNotFound
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		s.products = append(s.products[:i], s.products[i+1:]...)
		for j := range s.orders {
			if s.orders[j].ProductID != nil && *s.orders[j].ProductID == id {
				s.orders[j].ProductID = nil
			}
		}
		return nil
	}
	return utils.ErrProductNotFound
}

// productNameTaken must be called with mu held.
func (s *MemoryStore) productNameTaken(name, exceptID string) bool {
	for _, p := range s.products {
		if p.Name == name && p.ID != exceptID {
			return true
		}
	}
	return false
}

// Customers

func (s *MemoryStore) ListCustomers(ctx context.Context, opts ListOptions) ([]models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	s.mu.RUnlock()

	if opts.Sort != SortNone {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return limit(out, opts.Limit), nil
}

func (s *MemoryStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, utils.ErrCustomerNotFound
}

// GetCustomerByName returns the earliest-inserted customer with name.
func (s *MemoryStore) GetCustomerByName(ctx context.Context, name string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, utils.ErrCustomerNotFound
}

func (s *MemoryStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, *c)
	return nil
}

func (s *MemoryStore) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			updated := *c
			updated.CreatedAt = s.customers[i].CreatedAt
			s.customers[i] = updated
			return nil
		}
	}
	return utils.ErrCustomerNotFound
}

func (s *MemoryStore) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID != id {
			continue
		}
		s.customers = append(s.customers[:i], s.customers[i+1:]...)
		for j := range s.orders {
			if s.orders[j].CustomerID != nil && *s.orders[j].CustomerID == id {
				s.orders[j].CustomerID = nil
			}
		}
		return nil
	}
	return utils.ErrCustomerNotFound
}

func cloneOrder(o models.Order) models.Order {
	if o.CustomerID != nil {
		id := *o.CustomerID
		o.CustomerID = &id
	}
	if o.ProductID != nil {
		id := *o.ProductID
		o.ProductID = &id
	}
	return o
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && n < len(rows) {
		return rows[:n]
	}
	return rows
}
