package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
	"github.com/GTDGit/gtd_dashboard/internal/sse"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

// OrderService handles order CRUD and links orders to catalog rows.
type OrderService struct {
	store    repository.Store
	notifier sse.OrderNotifier
	now      func() time.Time
}

// NewOrderService constructs an OrderService. A nil notifier disables events.
func NewOrderService(store repository.Store, notifier sse.OrderNotifier, now func() time.Time) *OrderService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &OrderService{store: store, notifier: notifier, now: now}
}

// CreateOrderRequest represents the request to create an order.
type CreateOrderRequest struct {
	Customer     string       `json:"customer" binding:"required,notblank"`
	Product      string       `json:"product" binding:"required,notblank"`
	Amount       *float64     `json:"amount" binding:"required"`
	Status       string       `json:"status" binding:"required,notblank"`
	Date         *models.Date `json:"date"`
	Vendor       string       `json:"vendor"`
	CustomerType string       `json:"customer_type"`
	Category     string       `json:"category"`
}

// UpdateOrderRequest represents a partial order update. Nil fields keep
// their stored value.
type UpdateOrderRequest struct {
	Customer     *string             `json:"customer" binding:"omitempty,notblank"`
	Product      *string             `json:"product" binding:"omitempty,notblank"`
	Amount       *float64            `json:"amount"`
	Status       *models.OrderStatus `json:"status" binding:"omitempty,notblank"`
	Date         *models.Date        `json:"date"`
	Vendor       *string             `json:"vendor"`
	CustomerType *string             `json:"customer_type"`
	Category     *string             `json:"category"`
}

// ListOrders returns up to limit orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	return s.store.ListOrders(ctx, repository.ListOptions{Limit: limit, Sort: repository.SortNewestFirst})
}

// CreateOrder stores a new order, filling defaults and catalog links.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	id, err := utils.GenerateID(utils.PrefixOrder)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		ID:           id,
		Customer:     strings.TrimSpace(req.Customer),
		Product:      strings.TrimSpace(req.Product),
		Amount:       *req.Amount,
		Status:       models.OrderStatus(req.Status),
		Date:         models.DateOf(now),
		Vendor:       orDefault(req.Vendor, models.DefaultVendor),
		CustomerType: orDefault(req.CustomerType, models.DefaultCustomerType),
		Category:     orDefault(req.Category, models.DefaultOrderCategory),
		CreatedAt:    now,
	}
	if req.Date != nil && !req.Date.IsZero() {
		order.Date = *req.Date
	}

	if order.CustomerID, err = s.customerID(ctx, order.Customer); err != nil {
		return nil, err
	}
	if order.ProductID, err = s.productID(ctx, order.Product); err != nil {
		return nil, err
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		log.Error().Err(err).Str("order_id", id).Msg("Failed to create order")
		return nil, err
	}
	s.notifier.NotifyOrderCreated(order)
	return order, nil
}

// UpdateOrder applies a partial update. Changing the customer or product
// name re-resolves the corresponding catalog link.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req *UpdateOrderRequest) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Customer != nil {
		if name := strings.TrimSpace(*req.Customer); name != order.Customer {
			order.Customer = name
			if order.CustomerID, err = s.customerID(ctx, name); err != nil {
				return nil, err
			}
		}
	}
	if req.Product != nil {
		if name := strings.TrimSpace(*req.Product); name != order.Product {
			order.Product = name
			if order.ProductID, err = s.productID(ctx, name); err != nil {
				return nil, err
			}
		}
	}
	if req.Amount != nil {
		order.Amount = *req.Amount
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.Date != nil && !req.Date.IsZero() {
		order.Date = *req.Date
	}
	if req.Vendor != nil {
		order.Vendor = *req.Vendor
	}
	if req.CustomerType != nil {
		order.CustomerType = *req.CustomerType
	}
	if req.Category != nil {
		order.Category = *req.Category
	}

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.notifier.NotifyOrderUpdated(order)
	return order, nil
}

// DeleteOrder removes an order.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.notifier.NotifyOrderDeleted(id)
	return nil
}

// customerID returns the id of the customer named name, or nil when the
// catalog has no such customer.
func (s *OrderService) customerID(ctx context.Context, name string) (*string, error) {
	c, err := s.store.GetCustomerByName(ctx, name)
	if errors.Is(err, utils.ErrCustomerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c.ID, nil
}

func (s *OrderService) productID(ctx context.Context, name string) (*string, error) {
	p, err := s.store.GetProductByName(ctx, name)
	if errors.Is(err, utils.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p.ID, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
