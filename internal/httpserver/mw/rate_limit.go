package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/startpage/internal/utils"
)

// RateLimitConfig sizes a per-client token bucket.
type RateLimitConfig struct {
	Burst             int           // bucket capacity
	RefillPerIPPerMin int           // tokens regained per minute
	MaxEntries        int           // sweep early once this many clients are tracked, 0 = unbounded
	SweepInterval     time.Duration // how often idle buckets are dropped
	IdleTTL           time.Duration // a bucket unused this long is dropped
	TrustProxy        bool          // resolve the client IP from proxy headers
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	c.Burst = max(c.Burst, 1)
	c.RefillPerIPPerMin = max(c.RefillPerIPPerMin, 1)
	return c
}

type bucket struct {
	mu      sync.Mutex
	tokens  float64
	updated time.Time
	seen    time.Time
}

// take refills the bucket up to capacity and spends one token when available.
// It returns the whole tokens left and, on refusal, the seconds until the next token.
func (b *bucket) take(now time.Time, capacity, perSec float64) (bool, int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if dt := now.Sub(b.updated).Seconds(); dt > 0 {
		b.tokens = math.Min(capacity, b.tokens+dt*perSec)
		b.updated = now
	}
	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / perSec))
		return false, 0, max(wait, 1)
	}
	b.tokens--
	b.seen = now
	return true, int(b.tokens), 0
}

type limiter struct {
	cfg      RateLimitConfig
	perSec   float64
	capacity float64
	now      func() time.Time

	mu        sync.Mutex
	clients   map[string]*bucket
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig, now func() time.Time) *limiter {
	cfg = cfg.withDefaults()
	return &limiter{
		cfg:       cfg,
		perSec:    float64(cfg.RefillPerIPPerMin) / 60,
		capacity:  float64(cfg.Burst),
		now:       now,
		clients:   make(map[string]*bucket),
		lastSweep: now(),
	}
}

// bucketFor returns the client's bucket, sweeping idle ones when due or when the table is full.
func (l *limiter) bucketFor(key string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	full := l.cfg.MaxEntries > 0 && len(l.clients) >= l.cfg.MaxEntries
	if full || now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		for k, b := range l.clients {
			b.mu.Lock()
			idle := now.Sub(b.seen) > l.cfg.IdleTTL
			b.mu.Unlock()
			if idle {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.clients[key]
	if !ok {
		b = &bucket{tokens: l.capacity, updated: now, seen: now}
		l.clients[key] = b
	}
	return b
}

func (l *limiter) handler(next http.Handler) http.Handler {
	limit := strconv.Itoa(l.cfg.Burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := l.now()
		b := l.bucketFor(utils.ClientIP(r, l.cfg.TrustProxy), now)
		ok, remaining, retry := b.take(now, l.capacity, l.perSec)

		h := w.Header()
		h.Set("X-RateLimit-Limit", limit)
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			h.Set("Retry-After", strconv.Itoa(retry))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects clients that exhaust their bucket with 429 and a Retry-After header.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return newLimiter(cfg, time.Now).handler
}
