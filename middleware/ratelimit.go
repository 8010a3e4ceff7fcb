package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool
	// RPS is the sustained number of requests per second per key (default: 10)
	RPS float64
	// Burst is the token bucket capacity per key (default: RPS rounded up)
	Burst int
	// KeyExtractor defines the rate limiting key (default: request.Request.IP)
	KeyExtractor func(req *request.Request) string
	// TTL removes limiters for keys not seen within this duration (default: 10m)
	TTL time.Duration
	// SetHeaders includes X-RateLimit-* headers in responses
	SetHeaders bool
}

// RateLimit creates an in-memory token bucket rate limiter keyed by client IP.
//
// The client IP follows the request's proxy trust policy, so with the default
// trust-all policy a client can pick its own key by forging X-Forwarded-For.
// Configure trusted proxies before relying on this in production.
//
//	srv := server.New(":8080", server.WithMiddleware(
//		middleware.RateLimit(middleware.RateLimitConfig{RPS: 5, SetHeaders: true}),
//	))
func RateLimit(cfg RateLimitConfig) handler.Middleware {
	if cfg.RPS <= 0 {
		cfg.RPS = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(math.Ceil(cfg.RPS))
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(req *request.Request) string {
			return req.IP()
		}
	}

	pool := newLimiterPool(rate.Limit(cfg.RPS), cfg.Burst, cfg.TTL)

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(req *request.Request) handler.Response {
			if cfg.Skip != nil && cfg.Skip(req) {
				return next(req)
			}

			l := pool.get(cfg.KeyExtractor(req), time.Now())
			res := l.Reserve()
			delay := res.Delay()

			if delay > 0 {
				// The token is only held by the reservation; give it back.
				res.Cancel()
				retryAfter := int(math.Ceil(delay.Seconds()))
				resp := response.Error(response.ErrTooManyRequests.WithDetails(map[string]any{
					"retry_after": strconv.Itoa(retryAfter),
				}))
				return withRateLimitHeaders(resp, cfg, l, retryAfter)
			}

			resp := next(req)
			if !cfg.SetHeaders || resp == nil {
				return resp
			}
			return withRateLimitHeaders(resp, cfg, l, 0)
		}
	}
}

func withRateLimitHeaders(resp handler.Response, cfg RateLimitConfig, l *rate.Limiter, retryAfter int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if cfg.SetHeaders {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, int(l.Tokens()))))
		}
		if retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		}
		return resp(w, r)
	}
}

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// limiterPool holds one token bucket per key. Idle entries are swept on
// access once per TTL, so no background goroutine is needed.
type limiterPool struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

func newLimiterPool(limit rate.Limit, burst int, ttl time.Duration) *limiterPool {
	return &limiterPool{
		limiters:  make(map[string]*limiterEntry),
		limit:     limit,
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

func (p *limiterPool) get(key string, now time.Time) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) >= p.ttl {
		cutoff := now.Add(-p.ttl)
		for k, e := range p.limiters {
			if e.lastSeen.Before(cutoff) {
				delete(p.limiters, k)
			}
		}
		p.lastSweep = now
	}

	if e, ok := p.limiters[key]; ok {
		e.lastSeen = now
		return e.l
	}

	l := rate.NewLimiter(p.limit, p.burst)
	p.limiters[key] = &limiterEntry{l: l, lastSeen: now}
	return l
}
