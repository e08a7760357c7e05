package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_dashboard/internal/assistant"
	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
	"github.com/GTDGit/gtd_dashboard/internal/service"
	"github.com/GTDGit/gtd_dashboard/internal/sse"
)

// tickingClock advances by a second on every call so createdAt ordering is
// deterministic.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestRouter(t *testing.T, store repository.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := &tickingClock{t: time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)}
	now := clk.Now
	hub := sse.NewHub()

	r := gin.New()
	RegisterRoutes(r.Group("/api"), Handlers{
		Health:    NewHealthHandler(store),
		Dashboard: NewDashboardHandler(service.NewDashboardService(store, now)),
		Assistant: NewAssistantHandler(assistant.NewResponder(store, now)),
		Orders:    NewOrderHandler(service.NewOrderService(store, sse.NewHubNotifier(hub), now)),
		Products:  NewProductHandler(service.NewProductService(store, now)),
		Customers: NewCustomerHandler(service.NewCustomerService(store, now)),
		Events:    NewSSEHandler(hub),
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["error"].(string)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())
	w := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

type downStore struct{ *repository.MemoryStore }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func (downStore) ListOrders(context.Context, repository.ListOptions) ([]models.Order, error) {
	return nil, errors.New("connection refused")
}

func TestStoreDown(t *testing.T) {
	r := newTestRouter(t, downStore{repository.NewMemoryStore()})

	w := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok":false}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/dashboard/sales", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, w))
}

func TestProductSoldRoundTrip(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())

	w := do(t, r, http.MethodPost, "/api/products", `{"name":"Widget","category":"Tools","price":10,"stock":5}`)
	require.Equal(t, http.StatusCreated, w.Code)
	product := decode[map[string]any](t, w)
	assert.Equal(t, float64(0), product["sold"])
	assert.Equal(t, float64(10), product["min_stock_level"])
	assert.Equal(t, float64(100), product["max_stock_level"])
	assert.Equal(t, "Default Vendor", product["vendor"])
	id := product["id"].(string)
	assert.Regexp(t, `^prod-[0-9a-f]{8}$`, id)

	w = do(t, r, http.MethodPost, "/api/orders", `{"customer":"Asha","product":"Widget","amount":10,"status":"completed"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[map[string]any](t, w)
	assert.Equal(t, "2026-10-15", order["date"])
	assert.Equal(t, "Restaurant", order["customer_type"])
	assert.Equal(t, "Food & Beverage", order["category"])
	assert.Equal(t, id, order["productId"])

	w = do(t, r, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, float64(1), list[0]["sold"])

	w = do(t, r, http.MethodPut, "/api/products/"+id, `{"stock":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), updated["sold"])
	assert.Equal(t, float64(3), updated["stock"])
	assert.Equal(t, "Widget", updated["name"])
}

func TestProductValidation(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"category":"Tools","price":10,"stock":5}`, "Invalid product payload"},
		{"blank name", `{"name":"  ","category":"Tools","price":10,"stock":5}`, "Invalid product payload"},
		{"string price", `{"name":"W","category":"Tools","price":"10","stock":5}`, "Invalid product payload"},
		{"missing stock", `{"name":"W","category":"Tools","price":10}`, "Invalid product payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, errorMessage(t, w))
		})
	}

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/products", `{"name":"W","category":"Tools","price":10,"stock":0}`).Code)
	w := do(t, r, http.MethodPost, "/api/products", `{"name":"W","category":"Tools","price":1,"stock":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product name must be unique", errorMessage(t, w))
}

func TestOrderValidation(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())

	for _, body := range []string{
		`{"product":"W","amount":10,"status":"pending"}`,
		`{"customer":"A","product":"W","amount":"10","status":"pending"}`,
		`{"customer":"A","product":"W","status":"pending"}`,
		`{"customer":"A","product":"W","amount":10}`,
		`{"customer":"A","product":"W","amount":10,"status":"pending","date":"yesterday"}`,
		`not json`,
	} {
		w := do(t, r, http.MethodPost, "/api/orders", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Invalid order payload", errorMessage(t, w), body)
	}

	w := do(t, r, http.MethodPost, "/api/orders", `{"customer":"A","product":"W","amount":0,"status":"pending","date":"2026-09-30"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2026-09-30", decode[map[string]any](t, w)["date"])
}

func TestOrderCRUD(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())

	var ids []string
	for _, c := range []string{"A", "B", "C"} {
		w := do(t, r, http.MethodPost, "/api/orders", `{"customer":"`+c+`","product":"W","amount":5,"status":"pending"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decode[map[string]any](t, w)["id"].(string))
	}

	w := do(t, r, http.MethodGet, "/api/orders?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0]["id"])
	assert.Equal(t, ids[1], list[1]["id"])

	w = do(t, r, http.MethodGet, "/api/orders?limit=abc", "")
	assert.Len(t, decode[[]map[string]any](t, w), 3)

	w = do(t, r, http.MethodPut, "/api/orders/"+ids[0], `{"status":"completed","date":"2026-10-01"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "2026-10-01", updated["date"])
	assert.Equal(t, "A", updated["customer"])

	w = do(t, r, http.MethodPut, "/api/orders/ord-missing", `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/orders/"+ids[1], "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodDelete, "/api/orders/"+ids[1], "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/dashboard/recent-orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 2)
}

func TestCustomerCRUD(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())

	w := do(t, r, http.MethodPost, "/api/customers", `{"name":"Asha","email":"a@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid customer payload", errorMessage(t, w))

	w = do(t, r, http.MethodPost, "/api/customers", `{"name":"Asha","email":"a@example.com","phone":"98"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	customer := decode[map[string]any](t, w)
	assert.Equal(t, float64(0), customer["totalOrders"])
	assert.Equal(t, float64(0), customer["totalSpent"])
	id := customer["id"].(string)

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/orders", `{"customer":"Asha","product":"W","amount":99.6,"status":"completed"}`).Code)

	w = do(t, r, http.MethodPut, "/api/customers/"+id, `{"name":"Asha K"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, "Asha K", updated["name"])
	assert.Equal(t, float64(1), updated["totalOrders"])
	assert.Equal(t, float64(100), updated["totalSpent"])

	w = do(t, r, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/customers/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/api/customers/"+id, `{"phone":"1"}`).Code)
}

func TestDashboardEndpoints(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())

	w := do(t, r, http.MethodGet, "/api/predictions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/orders", `{"customer":"A","product":"W","amount":1500,"status":"completed"}`).Code)

	w = do(t, r, http.MethodGet, "/api/dashboard/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	metrics := decode[map[string]any](t, w)
	assert.Equal(t, float64(1500), metrics["totalRevenue"])
	assert.Equal(t, "100%", metrics["orderFulfillmentRate"].(map[string]any)["value"])

	w = do(t, r, http.MethodGet, "/api/dashboard/sales", "")
	sales := decode[[]map[string]any](t, w)
	require.Len(t, sales, 12)
	assert.Equal(t, "Oct", sales[11]["month"])
	assert.Equal(t, float64(1500), sales[11]["revenue"])

	w = do(t, r, http.MethodGet, "/api/dashboard/orders-status", "")
	assert.Len(t, decode[[]map[string]any](t, w), 12)

	w = do(t, r, http.MethodGet, "/api/dashboard/top-products", "")
	top := decode[[]map[string]any](t, w)
	require.Len(t, top, 1)
	assert.Equal(t, "W", top[0]["name"])

	w = do(t, r, http.MethodGet, "/api/predictions", "")
	assert.Len(t, decode[[]map[string]any](t, w), 2)
}

func TestAssistant(t *testing.T) {
	r := newTestRouter(t, repository.NewMemoryStore())

	for _, body := range []string{`{}`, `{"query":""}`, `{"query":42}`} {
		w := do(t, r, http.MethodPost, "/api/ai-assistant", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Invalid query", errorMessage(t, w), body)
	}

	w := do(t, r, http.MethodPost, "/api/ai-assistant", `{"query":"   "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["answer"], "## ❓ Help")

	w = do(t, r, http.MethodPost, "/api/ai-assistant", `{"query":"How many orders do I have?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "## 📦 Order Count\n\nYou currently have **0 orders** in your system.",
		decode[map[string]string](t, w)["answer"])
}
