// Package redis opens a go-redis client with retries and exposes a readiness
// check.
package redis
