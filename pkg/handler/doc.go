// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a request struct populated by binders and returns a
// Response (JSON, CSV or empty). Errors from binding, the handler or
// rendering are passed to an ErrorHandler, which classifies them into an
// HTTP status and a JSON error document:
//
//	{"error": {"code": "validation_error", "message": "...", "details": {"email": ["..."]}}}
//
// Validation failures from pkg/validator map to 422, binder failures to 400
// or 415, HTTPError values to their own status and everything else to 500
// without leaking the internal message.
package handler
