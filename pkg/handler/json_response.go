package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cornerstone-church/site/pkg/binder"
	"github.com/cornerstone-church/site/pkg/validator"
)

// JSONResponse is the envelope of every JSON response.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail is the error member of the envelope. Details maps field names to
// validation messages.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption adjusts a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus overrides the status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta sets the meta member of the envelope.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v in the data envelope with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the error envelope. The status is derived from
// the error unless overridden by an option.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := ErrorToDetail(err)
	r := &jsonResponse{status: status, body: JSONResponse{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrorToDetail classifies err: validation errors become 422 with per-field
// details, binding errors 400 or 415, HTTPError its own status, and anything
// else an opaque 500.
func ErrorToDetail(err error) (int, *ErrorDetail) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_error",
			Message: "Please correct the highlighted fields.",
			Details: verrs.Map(),
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: msg}
	}

	if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
		return http.StatusUnsupportedMediaType, &ErrorDetail{Code: ErrUnsupportedMediaType.Key, Message: err.Error()}
	}
	if binder.IsBindingError(err) {
		return http.StatusBadRequest, &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
