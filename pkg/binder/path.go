package binder

import (
	"net/http"
	"reflect"
)

// Path binds router path parameters using `path:"name"` struct tags. The
// extractor resolves a parameter by name, e.g. chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		values := make(map[string][]string)

		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			rt := rv.Elem().Type()
			for i := range rt.NumField() {
				name, skip := parseFieldTag(rt.Field(i), "path")
				if skip {
					continue
				}
				if value := extractor(r, name); value != "" {
					values[name] = []string{value}
				}
			}
		}

		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}
