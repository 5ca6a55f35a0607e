package binder

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Func binds request data into v, which must be a pointer to a struct.
type Func func(r *http.Request, v any) error

// Body picks the JSON or Form binder from the request's Content-Type, so one
// endpoint can accept both fetch() JSON posts and plain HTML form posts.
func Body() Func {
	jsonBinder := JSON()
	formBinder := Form()

	return func(r *http.Request, v any) error {
		mediaType, err := mediaTypeOf(r)
		if err != nil {
			return err
		}

		switch {
		case mediaType == "application/json":
			return jsonBinder(r, v)
		case mediaType == "application/x-www-form-urlencoded", mediaType == "multipart/form-data":
			return formBinder(r, v)
		default:
			return fmt.Errorf("%w: got %s, expected application/json or form data", ErrUnsupportedMediaType, mediaType)
		}
	}
}

func mediaTypeOf(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", fmt.Errorf("%w: missing content-type header", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	return strings.ToLower(mediaType), nil
}
