package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/gtd_dashboard/internal/config"
)

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeCounter) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRateLimiter_SharedWindow(t *testing.T) {
	cfg := config.RateLimitConfig{RPS: 0.05, Burst: 2, Window: time.Minute}
	rl := NewRateLimiter(cfg, &fakeCounter{counts: map[string]int64{}})
	fixed := time.Date(2026, time.October, 15, 12, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	ctx := context.Background()
	// 0.05 rps over a minute is 3 requests.
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
	assert.False(t, rl.Allow(ctx, "1.1.1.1"))
	assert.True(t, rl.Allow(ctx, "2.2.2.2"))

	fixed = fixed.Add(time.Minute)
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
}

func TestRateLimiter_FallsBackToLocal(t *testing.T) {
	cfg := config.RateLimitConfig{RPS: 1, Burst: 2, Window: time.Minute}
	rl := NewRateLimiter(cfg, &fakeCounter{err: errors.New("redis down")})

	ctx := context.Background()
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
	assert.False(t, rl.Allow(ctx, "1.1.1.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1, Window: time.Minute}, nil)
	start := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return start }
	rl.Allow(context.Background(), "1.1.1.1")

	rl.now = func() time.Time { return start.Add(10 * time.Minute) }
	rl.Allow(context.Background(), "2.2.2.2")
	rl.Cleanup(visitorIdleTTL)

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "2.2.2.2")
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1, Window: time.Minute}, nil)
	r := newRouter(rl.Middleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestCORSMiddleware(t *testing.T) {
	r := newRouter(CORSMiddleware([]string{"http://localhost:3000", "https://dash.example.com"}))

	tests := []struct {
		origin string
		want   string
	}{
		{"http://localhost:3000", "http://localhost:3000"},
		{"https://dash.example.com:443", "https://dash.example.com:443"},
		{"https://evil.example.com", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	r := newRouter(CORSMiddleware([]string{"*"}))
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://anything.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://anything.example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggingMiddleware())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, seen, 8)
	assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
}
