package handler

import "net/http"

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty returns 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus writes status with no body.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type failResponse struct {
	err error
}

func (f failResponse) Render(http.ResponseWriter, *http.Request) error {
	return f.err
}

// Fail hands err to the configured ErrorHandler without writing anything
// itself, so domain errors get the same classification and logging as
// binding errors.
func Fail(err error) Response {
	return failResponse{err: err}
}
