package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// fixedWindow counts requests per key in fixed windows.
// Expired keys are pruned at most once per window.
type fixedWindow struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	clients   map[string]*client
	lastSweep time.Time
}

func newFixedWindow(limit int, window time.Duration) *fixedWindow {
	return &fixedWindow{limit: limit, window: window, clients: make(map[string]*client)}
}

// allow records a request for key at now and reports whether it is within the limit.
func (w *fixedWindow) allow(key string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	cl, ok := w.clients[key]
	if !ok || now.Sub(cl.windowStart) > w.window {
		if now.Sub(w.lastSweep) > w.window {
			w.sweep(now)
		}
		cl = &client{windowStart: now}
		w.clients[key] = cl
	}
	cl.count++
	return cl.count <= w.limit
}

// sweep drops clients whose window has expired. Caller holds mu.
func (w *fixedWindow) sweep(now time.Time) {
	for key, cl := range w.clients {
		if now.Sub(cl.windowStart) > w.window {
			delete(w.clients, key)
		}
	}
	w.lastSweep = now
}

func (w *fixedWindow) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

// RateLimiter is an in-memory middleware that limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per fixed `window`.
//   - Identifies clients by their IP address.
//   - If limit exceeded, returns HTTP 429 Too Many Requests.
//
// State is per returned handler, so each router gets its own counters.
// NOTE: multi-instance deployments need a shared store for a global limit.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	counter := newFixedWindow(limit, window)

	return func(c *gin.Context) {
		if !counter.allow(c.ClientIP(), time.Now()) {
			AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}

		c.Next()
	}
}
