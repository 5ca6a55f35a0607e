// Package clientip resolves the address of the caller for logging and per-IP
// rate limiting.
package clientip
