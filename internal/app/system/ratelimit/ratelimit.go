// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands out one token bucket per client key (usually the client IP).
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	idle    time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing rps requests per second with the given burst.
// Buckets unused for ten minutes are dropped on the next Allow call.
func New(rps float64, burst int) *Limiter {
	return &Limiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    10 * time.Minute,
	}
}

// Allow reports whether a request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	return l.reserve(key) == 0
}

// reserve returns 0 when the request is allowed, otherwise how long the
// caller would have to wait.
func (l *Limiter) reserve(key string) time.Duration {
	l.mu.Lock()
	now := time.Now()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.evictLocked(now)
	l.mu.Unlock()

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return time.Second
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return d
	}
	return 0
}

func (l *Limiter) evictLocked(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idle {
			delete(l.clients, k)
		}
	}
}

// Middleware rejects over-limit clients with 429 and a Retry-After header.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wait := l.reserve(ClientIP(r)); wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Too many requests, try again later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the caller address, preferring X-Forwarded-For's first hop.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			xff = xff[:i]
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
