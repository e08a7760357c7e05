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

// CustomerService handles customer CRUD with derived order totals.
type CustomerService struct {
	store repository.Store
	now   func() time.Time
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(store repository.Store, now func() time.Time) *CustomerService {
	return &CustomerService{store: store, now: now}
}

// CreateCustomerRequest represents the request to create a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,notblank"`
	Phone string `json:"phone" binding:"required,notblank"`
}

// UpdateCustomerRequest represents a partial customer update.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,notblank"`
	Email *string `json:"email" binding:"omitempty,notblank"`
	Phone *string `json:"phone" binding:"omitempty,notblank"`
}

// ListCustomers returns up to limit customers, newest first, with totals.
func (s *CustomerService) ListCustomers(ctx context.Context, limit int) ([]models.CustomerSummary, error) {
	var (
		customers []models.Customer
		orders    []models.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customers, err = s.store.ListCustomers(gctx, repository.ListOptions{Limit: limit, Sort: repository.SortNewestFirst})
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.store.ListOrders(gctx, repository.ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ledger := analytics.CustomerLedger(orders)
	out := make([]models.CustomerSummary, len(customers))
	for i, c := range customers {
		out[i] = summarize(c, ledger)
	}
	return out, nil
}

// CreateCustomer stores a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.CustomerSummary, error) {
	id, err := utils.GenerateID(utils.PrefixCustomer)
	if err != nil {
		return nil, err
	}

	customer := models.Customer{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: s.now(),
	}
	if err := s.store.CreateCustomer(ctx, &customer); err != nil {
		return nil, err
	}
	return &models.CustomerSummary{Customer: customer}, nil
}

// UpdateCustomer applies a partial update and returns recomputed totals.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.CustomerSummary, error) {
	customer, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.store.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrders(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	summary := summarize(*customer, analytics.CustomerLedger(orders))
	return &summary, nil
}

// DeleteCustomer removes a customer. Orders keep their name snapshot.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.store.DeleteCustomer(ctx, id)
}

func summarize(c models.Customer, ledger analytics.Ledger) models.CustomerSummary {
	t := ledger.For(c.ID, c.Name)
	return models.CustomerSummary{
		Customer:    c,
		TotalOrders: t.Count,
		TotalSpent:  analytics.Round(t.Amount),
	}
}
