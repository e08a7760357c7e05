package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

var base = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestMemoryStore_ProductNameUnique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateProduct(ctx, &models.Product{ID: "prod-1", Name: "Widget"}))
	require.NoError(t, s.CreateProduct(ctx, &models.Product{ID: "prod-2", Name: "Gadget"}))

	err := s.CreateProduct(ctx, &models.Product{ID: "prod-3", Name: "Widget"})
	assert.ErrorIs(t, err, utils.ErrDuplicateProductName)

	err = s.UpdateProduct(ctx, &models.Product{ID: "prod-2", Name: "Widget"})
	assert.ErrorIs(t, err, utils.ErrDuplicateProductName)

	// Keeping its own name is not a clash.
	require.NoError(t, s.UpdateProduct(ctx, &models.Product{ID: "prod-1", Name: "Widget", Stock: 3}))
	p, err := s.GetProductByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestMemoryStore_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetOrder(ctx, "ord-x")
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
	assert.ErrorIs(t, s.DeleteOrder(ctx, "ord-x"), utils.ErrOrderNotFound)
	assert.ErrorIs(t, s.UpdateOrder(ctx, &models.Order{ID: "ord-x"}), utils.ErrOrderNotFound)
	assert.ErrorIs(t, s.DeleteProduct(ctx, "prod-x"), utils.ErrProductNotFound)
	assert.ErrorIs(t, s.UpdateCustomer(ctx, &models.Customer{ID: "cust-x"}), utils.ErrCustomerNotFound)
	_, err = s.GetCustomerByName(ctx, "Nobody")
	assert.ErrorIs(t, err, utils.ErrCustomerNotFound)
}

func TestMemoryStore_ListOrdersSorting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	orders := []models.Order{
		{ID: "a", Date: models.NewDate(2026, 10, 1), CreatedAt: base.Add(3 * time.Hour)},
		{ID: "b", Date: models.NewDate(2026, 10, 10), CreatedAt: base.Add(1 * time.Hour)},
		{ID: "c", Date: models.NewDate(2026, 10, 10), CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range orders {
		require.NoError(t, s.CreateOrder(ctx, &orders[i]))
	}

	ids := func(os []models.Order) []string {
		var out []string
		for _, o := range os {
			out = append(out, o.ID)
		}
		return out
	}

	got, err := s.ListOrders(ctx, ListOptions{Sort: SortNewestFirst})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))

	got, err = s.ListOrders(ctx, ListOptions{Sort: SortLatestDateFirst, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(got))

	got, err = s.ListOrders(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestMemoryStore_DeleteClearsOrderLinks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateProduct(ctx, &models.Product{ID: "prod-1", Name: "Widget"}))
	require.NoError(t, s.CreateCustomer(ctx, &models.Customer{ID: "cust-1", Name: "Asha"}))
	require.NoError(t, s.CreateOrder(ctx, &models.Order{
		ID: "ord-1", Customer: "Asha", Product: "Widget",
		CustomerID: strPtr("cust-1"), ProductID: strPtr("prod-1"),
	}))

	require.NoError(t, s.DeleteProduct(ctx, "prod-1"))
	require.NoError(t, s.DeleteCustomer(ctx, "cust-1"))

	o, err := s.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Nil(t, o.ProductID)
	assert.Nil(t, o.CustomerID)
	assert.Equal(t, "Widget", o.Product)
	assert.Equal(t, "Asha", o.Customer)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	o := &models.Order{ID: "ord-1", ProductID: strPtr("prod-1")}
	require.NoError(t, s.CreateOrder(ctx, o))
	*o.ProductID = "changed"

	got, err := s.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", *got.ProductID)
}

func TestMemoryStore_EmptyListsAreNotNil(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	orders, err := s.ListOrders(ctx, ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, orders)

	products, err := s.ListProducts(ctx, ListOptions{Limit: 5})
	require.NoError(t, err)
	assert.NotNil(t, products)

	customers, err := s.ListCustomers(ctx, ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, customers)
}

func TestListSuffix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		opts     ListOptions
		hasDate  bool
		wantSQL  string
		wantArgs []any
	}{
		{name: "none", opts: ListOptions{}, wantSQL: ""},
		{name: "newest limited", opts: ListOptions{Sort: SortNewestFirst, Limit: 20}, wantSQL: " ORDER BY created_at DESC LIMIT $1", wantArgs: []any{20}},
		{name: "date on orders", opts: ListOptions{Sort: SortLatestDateFirst}, hasDate: true, wantSQL: " ORDER BY date DESC, created_at DESC"},
		{name: "date without column", opts: ListOptions{Sort: SortLatestDateFirst}, wantSQL: " ORDER BY created_at DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := listSuffix(tt.opts, tt.hasDate)
			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}
