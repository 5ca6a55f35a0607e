package ratelimiter

import (
	"math"
	"net/http"
	"strconv"
	"time"
)

// KeyFunc extracts a rate limit key from the request. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

type middlewareConfig struct {
	onDenied func(w http.ResponseWriter, r *http.Request, res Result)
	onError  func(w http.ResponseWriter, r *http.Request, err error)
	now      func() time.Time
}

type MiddlewareOption func(*middlewareConfig)

// WithDeniedHandler renders the 429 response. Rate limit headers are already
// set when it runs.
func WithDeniedHandler(h func(w http.ResponseWriter, r *http.Request, res Result)) MiddlewareOption {
	return func(c *middlewareConfig) { c.onDenied = h }
}

// WithErrorHandler handles store failures. The default fails open and lets
// the request through.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) { c.onError = h }
}

// WithMiddlewareClock overrides time.Now when computing Retry-After.
func WithMiddlewareClock(now func() time.Time) MiddlewareOption {
	return func(c *middlewareConfig) { c.now = now }
}

// Middleware limits requests per key using b.
func Middleware(b *Bucket, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		onDenied: func(w http.ResponseWriter, r *http.Request, _ Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := b.Allow(r.Context(), key)
			if err != nil {
				if cfg.onError != nil {
					cfg.onError(w, r, err)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				if retry := res.RetryAfter(cfg.now()); retry > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
				}
				cfg.onDenied(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
