package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }
func str(v string) *string   { return &v }

type recordingNotifier struct {
	created, updated []string
	deleted          []string
}

func (n *recordingNotifier) NotifyOrderCreated(o *models.Order) { n.created = append(n.created, o.ID) }
func (n *recordingNotifier) NotifyOrderUpdated(o *models.Order) { n.updated = append(n.updated, o.ID) }
func (n *recordingNotifier) NotifyOrderDeleted(id string)       { n.deleted = append(n.deleted, id) }

func TestOrderService_CreateAppliesDefaultsAndLinks(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	products := NewProductService(store, clock)
	customers := NewCustomerService(store, clock)
	notifier := &recordingNotifier{}
	orders := NewOrderService(store, notifier, clock)

	p, err := products.CreateProduct(ctx, &CreateProductRequest{Name: "Widget", Category: "Food", Price: f64(10), Stock: intp(5)})
	require.NoError(t, err)
	c, err := customers.CreateCustomer(ctx, &CreateCustomerRequest{Name: "Asha", Email: "a@example.com", Phone: "1"})
	require.NoError(t, err)

	o, err := orders.CreateOrder(ctx, &CreateOrderRequest{Customer: "Asha", Product: "Widget", Amount: f64(0), Status: "pending"})
	require.NoError(t, err)

	assert.Regexp(t, `^ord-[0-9a-f]{8}$`, o.ID)
	assert.Equal(t, models.NewDate(2026, time.October, 15), o.Date)
	assert.Equal(t, models.DefaultVendor, o.Vendor)
	assert.Equal(t, models.DefaultCustomerType, o.CustomerType)
	assert.Equal(t, models.DefaultOrderCategory, o.Category)
	require.NotNil(t, o.ProductID)
	require.NotNil(t, o.CustomerID)
	assert.Equal(t, p.ID, *o.ProductID)
	assert.Equal(t, c.ID, *o.CustomerID)
	assert.Equal(t, []string{o.ID}, notifier.created)

	unlinked, err := orders.CreateOrder(ctx, &CreateOrderRequest{
		Customer: "Walk-in", Product: "Mystery", Amount: f64(5), Status: "completed",
		Date: func() *models.Date { d := models.NewDate(2026, time.September, 1); return &d }(),
	})
	require.NoError(t, err)
	assert.Nil(t, unlinked.ProductID)
	assert.Nil(t, unlinked.CustomerID)
	assert.Equal(t, models.NewDate(2026, time.September, 1), unlinked.Date)
}

func TestOrderService_UpdateRelinksAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	notifier := &recordingNotifier{}
	orders := NewOrderService(store, notifier, clock)
	products := NewProductService(store, clock)

	o, err := orders.CreateOrder(ctx, &CreateOrderRequest{Customer: "Asha", Product: "Gadget", Amount: f64(20), Status: "pending"})
	require.NoError(t, err)
	assert.Nil(t, o.ProductID)

	p, err := products.CreateProduct(ctx, &CreateProductRequest{Name: "Widget", Category: "Food", Price: f64(10), Stock: intp(5)})
	require.NoError(t, err)

	status := models.OrderStatusCompleted
	updated, err := orders.UpdateOrder(ctx, o.ID, &UpdateOrderRequest{Product: str("Widget"), Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated.ProductID)
	assert.Equal(t, p.ID, *updated.ProductID)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.Equal(t, 20.0, updated.Amount)
	assert.Equal(t, "Asha", updated.Customer)

	_, err = orders.UpdateOrder(ctx, "ord-missing", &UpdateOrderRequest{})
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)

	require.NoError(t, orders.DeleteOrder(ctx, o.ID))
	assert.ErrorIs(t, orders.DeleteOrder(ctx, o.ID), utils.ErrOrderNotFound)

	assert.Equal(t, []string{o.ID}, notifier.updated)
	assert.Equal(t, []string{o.ID}, notifier.deleted)
}

func TestProductService_SoldFollowsRename(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	products := NewProductService(store, clock)
	orders := NewOrderService(store, nil, clock)

	p, err := products.CreateProduct(ctx, &CreateProductRequest{Name: "Widget", Category: "Food", Price: f64(10), Stock: intp(5)})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Sold)
	assert.Equal(t, models.DefaultMinStockLevel, p.MinStockLevel)
	assert.Equal(t, models.DefaultMaxStockLevel, p.MaxStockLevel)

	_, err = orders.CreateOrder(ctx, &CreateOrderRequest{Customer: "Asha", Product: "Widget", Amount: f64(10), Status: "completed"})
	require.NoError(t, err)

	renamed, err := products.UpdateProduct(ctx, p.ID, &UpdateProductRequest{Name: str("Widget Pro")})
	require.NoError(t, err)
	assert.Equal(t, 1, renamed.Sold)

	list, err := products.ListProducts(ctx, DefaultListLimit)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Sold)

	_, err = products.CreateProduct(ctx, &CreateProductRequest{Name: "Widget Pro", Category: "Food", Price: f64(1), Stock: intp(1)})
	assert.ErrorIs(t, err, utils.ErrDuplicateProductName)
}

func TestCustomerService_Totals(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	customers := NewCustomerService(store, clock)
	orders := NewOrderService(store, nil, clock)

	c, err := customers.CreateCustomer(ctx, &CreateCustomerRequest{Name: "Asha", Email: "a@example.com", Phone: "1"})
	require.NoError(t, err)
	assert.Zero(t, c.TotalOrders)
	assert.Zero(t, c.TotalSpent)

	for _, amount := range []float64{100.4, 200.3} {
		_, err := orders.CreateOrder(ctx, &CreateOrderRequest{Customer: "Asha", Product: "Widget", Amount: f64(amount), Status: "completed"})
		require.NoError(t, err)
	}

	updated, err := customers.UpdateCustomer(ctx, c.ID, &UpdateCustomerRequest{Phone: str("2")})
	require.NoError(t, err)
	assert.Equal(t, "2", updated.Phone)
	assert.Equal(t, 2, updated.TotalOrders)
	assert.Equal(t, int64(301), updated.TotalSpent)

	require.NoError(t, customers.DeleteCustomer(ctx, c.ID))
	_, err = customers.UpdateCustomer(ctx, c.ID, &UpdateCustomerRequest{})
	assert.ErrorIs(t, err, utils.ErrCustomerNotFound)
}

type failingStore struct {
	*repository.MemoryStore
	err error
}

func (f failingStore) ListProducts(context.Context, repository.ListOptions) ([]models.Product, error) {
	return nil, f.err
}

func TestDashboardService_SnapshotError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewDashboardService(failingStore{MemoryStore: repository.NewMemoryStore(), err: boom}, clock)

	_, err := svc.Metrics(context.Background())
	assert.ErrorIs(t, err, boom)

	// Series endpoints only read orders.
	sales, err := svc.Sales(context.Background())
	require.NoError(t, err)
	assert.Len(t, sales, 12)
}

func TestDashboardService_Reports(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	orders := NewOrderService(store, nil, clock)
	svc := NewDashboardService(store, clock)

	for _, amount := range []float64{100, 300} {
		_, err := orders.CreateOrder(ctx, &CreateOrderRequest{Customer: "Asha", Product: "Widget", Amount: f64(amount), Status: "completed"})
		require.NoError(t, err)
	}

	m, err := svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(400), m.TotalRevenue)
	assert.Equal(t, 2, m.TotalOrders)

	top, err := svc.TopProducts(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Widget", top[0].Name)
	assert.Equal(t, 2, top[0].Sales)

	preds, err := svc.Predictions(ctx)
	require.NoError(t, err)
	assert.Len(t, preds, 2)

	recent, err := svc.RecentOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
