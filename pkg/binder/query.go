package binder

import "net/http"

// Query binds URL query parameters using `query:"name"` struct tags.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
