package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms.
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies
// using `form:"name"` struct tags. Slices collect repeated keys, so a group
// of checkboxes named "availability" binds to []string.
func Form() Func {
	return func(r *http.Request, v any) error {
		mediaType, err := mediaTypeOf(r)
		if err != nil {
			return err
		}

		var values map[string][]string

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
		}

		if err := bindToStruct(v, "form", values, ErrInvalidForm); err != nil {
			return err
		}
		sanitizeStruct(v)
		return nil
	}
}
