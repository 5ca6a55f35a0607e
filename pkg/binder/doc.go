// Package binder decodes HTTP request data into Go structs.
//
// Each binder is a Func that fills a pointer to a struct from one source:
// JSON bodies, url-encoded or multipart form bodies, query strings or router
// path parameters. Body chooses between JSON and Form from the Content-Type
// header.
//
//	type signupRequest struct {
//	    Name         string   `json:"name" form:"name"`
//	    Availability []string `json:"availability" form:"availability"`
//	}
//
//	var req signupRequest
//	if err := binder.Body()(r, &req); err != nil {
//	    // binder.IsBindingError(err) == true
//	}
//
// String values are trimmed and stripped of control characters. Binding
// failures wrap one of the package's sentinel errors.
package binder
