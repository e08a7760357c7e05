package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/GTDGit/gtd_dashboard/internal/analytics"
	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
)

// DashboardService computes the reporting endpoints from full table scans.
type DashboardService struct {
	store repository.Store
	now   func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(store repository.Store, now func() time.Time) *DashboardService {
	return &DashboardService{store: store, now: now}
}

// snapshot loads orders, products and customers concurrently. The first
// failure cancels the remaining loads.
func (s *DashboardService) snapshot(ctx context.Context) (analytics.Snapshot, error) {
	var snap analytics.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.store.ListOrders(gctx, repository.ListOptions{})
		snap.Orders = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.store.ListProducts(gctx, repository.ListOptions{})
		snap.Products = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.store.ListCustomers(gctx, repository.ListOptions{})
		snap.Customers = rows
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Failed to load dashboard snapshot")
		return analytics.Snapshot{}, err
	}
	return snap, nil
}

func (s *DashboardService) orders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx, repository.ListOptions{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to load orders")
		return nil, err
	}
	return orders, nil
}

// Metrics returns the KPI summary.
func (s *DashboardService) Metrics(ctx context.Context) (*analytics.Metrics, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	m := analytics.ComputeMetrics(snap, s.now())
	return &m, nil
}

// Sales returns revenue for the trailing twelve months.
func (s *DashboardService) Sales(ctx context.Context) ([]analytics.SalesPoint, error) {
	orders, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SalesSeries(orders, s.now()), nil
}

// OrderStatus returns status counts for the trailing twelve months.
func (s *DashboardService) OrderStatus(ctx context.Context) ([]analytics.StatusPoint, error) {
	orders, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.StatusSeries(orders, s.now()), nil
}

// TopProducts ranks this month's best-selling products.
func (s *DashboardService) TopProducts(ctx context.Context) ([]analytics.ProductRank, error) {
	orders, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopProducts(orders, s.now(), analytics.TopProductsLimit), nil
}

// Predictions projects next month's revenue and order volume.
func (s *DashboardService) Predictions(ctx context.Context) ([]analytics.Prediction, error) {
	orders, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Project(orders, s.now()), nil
}

// RecentOrders returns the most recently created orders.
func (s *DashboardService) RecentOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx, repository.ListOptions{Limit: RecentOrdersLimit, Sort: repository.SortNewestFirst})
}
