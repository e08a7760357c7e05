package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

const customerColumns = `id, name, email, phone, created_at`

// CustomerRepository handles data access for customers.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// ListCustomers returns customers, optionally limited and sorted.
func (r *CustomerRepository) ListCustomers(ctx context.Context, opts ListOptions) ([]models.Customer, error) {
	suffix, args := listSuffix(opts, false)
	q := `SELECT ` + customerColumns + ` FROM customers` + suffix

	customers := []models.Customer{}
	if err := r.db.SelectContext(ctx, &customers, q, args...); err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return customers, nil
}

// GetCustomer returns a single customer by id.
func (r *CustomerRepository) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c models.Customer
	if err := getOne(ctx, r.db, &c, utils.ErrCustomerNotFound, "get customer", q, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCustomerByName returns the oldest customer with the given name.
// Customer names are not unique.
func (r *CustomerRepository) GetCustomerByName(ctx context.Context, name string) (*models.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE name = $1 ORDER BY created_at LIMIT 1`
	var c models.Customer
	if err := getOne(ctx, r.db, &c, utils.ErrCustomerNotFound, "get customer by name", q, name); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCustomer inserts a customer. ID and CreatedAt must already be set.
func (r *CustomerRepository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	const q = `
        INSERT INTO customers (id, name, email, phone, created_at)
        VALUES ($1, $2, $3, $4, $5)`

	stmt, err := r.db.PreparexContext(ctx, q)
	if err != nil {
		return errors.Wrap(err, "create customer")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, c.ID, c.Name, c.Email, c.Phone, c.CreatedAt)
	return errors.Wrap(err, "create customer")
}

// UpdateCustomer overwrites the contact fields of an existing customer.
func (r *CustomerRepository) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	const q = `UPDATE customers SET name = $2, email = $3, phone = $4 WHERE id = $1`
	return execOne(ctx, r.db, utils.ErrCustomerNotFound, "update customer", q, c.ID, c.Name, c.Email, c.Phone)
}

// DeleteCustomer removes a customer; their orders keep the name snapshot.
func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id string) error {
	const q = `DELETE FROM customers WHERE id = $1`
	return execOne(ctx, r.db, utils.ErrCustomerNotFound, "delete customer", q, id)
}
