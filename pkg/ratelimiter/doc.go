// Package ratelimiter implements a token bucket limiter with in-memory and
// Redis stores and an HTTP middleware.
//
// The public form endpoints use it keyed by client IP so a single visitor
// cannot flood the church office inbox:
//
//	bucket, _ := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
//	r.With(ratelimiter.Middleware(bucket, func(r *http.Request) string {
//	    return clientip.FromContext(r.Context())
//	})).Post("/api/forms/{formType}", submit)
//
// A denied request consumes no tokens. Remaining never goes negative.
package ratelimiter
