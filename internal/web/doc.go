// Package web exposes the JSON API used by the site's pages: form
// submission, public content listings, the password protected admin surface
// and health checks.
package web
