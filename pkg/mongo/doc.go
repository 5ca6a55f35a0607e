// Package mongo opens a MongoDB client with retries and exposes a readiness
// check.
package mongo
