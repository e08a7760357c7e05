package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/GTDGit/gtd_dashboard/internal/config"
)

// visitorIdleTTL is how long an idle client's local limiter is kept.
const visitorIdleTTL = 5 * time.Minute

// WindowCounter counts hits in a fixed time window shared across instances.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP. With a WindowCounter it
// enforces a fixed-window quota shared by every instance; otherwise, or when
// the counter fails, it uses an in-process token bucket per IP.
type RateLimiter struct {
	counter   WindowCounter
	window    time.Duration
	perWindow int64
	rps       rate.Limit
	burst     int
	now       func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter builds a limiter from cfg. counter may be nil.
func NewRateLimiter(cfg config.RateLimitConfig, counter WindowCounter) *RateLimiter {
	perWindow := int64(cfg.RPS * cfg.Window.Seconds())
	if perWindow < int64(cfg.Burst) {
		perWindow = int64(cfg.Burst)
	}
	return &RateLimiter{
		counter:   counter,
		window:    cfg.Window,
		perWindow: perWindow,
		rps:       rate.Limit(cfg.RPS),
		burst:     cfg.Burst,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
	}
}

// Allow reports whether ip may make another request now.
func (r *RateLimiter) Allow(ctx context.Context, ip string) bool {
	if r.counter != nil && r.window > 0 {
		slot := r.now().UnixNano() / r.window.Nanoseconds()
		n, err := r.counter.IncrWindow(ctx, fmt.Sprintf("ratelimit:%s:%d", ip, slot), r.window)
		if err == nil {
			return n <= r.perWindow
		}
		log.Warn().Err(err).Str("ip", ip).Msg("Shared rate limit unavailable, using local limiter")
	}
	return r.local(ip).Allow()
}

func (r *RateLimiter) local(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = r.now()
	return v.limiter
}

// Cleanup drops local limiters idle for longer than maxIdle.
func (r *RateLimiter) Cleanup(maxIdle time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	for ip, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, ip)
		}
	}
}

// RunCleanup periodically removes idle local limiters until ctx is done.
func (r *RateLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Cleanup(visitorIdleTTL)
		}
	}
}

// Middleware rejects requests over the limit with 429.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.Request.Context(), c.ClientIP()) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(r.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
