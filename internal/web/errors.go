package web

import (
	"errors"
	"net/http"

	"github.com/cornerstone-church/site/internal/content"
	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/handler"
	"github.com/cornerstone-church/site/pkg/validator"
)

var (
	errRelayFailed = handler.NewHTTPError(http.StatusBadGateway, "relay_failed").
			WithMessage("We could not deliver your message. Nothing was saved; please try again.")
	errNotRecorded = handler.NewHTTPError(http.StatusInternalServerError, "delivered_not_recorded").
			WithMessage("Your message was delivered but we could not keep a copy. There is no need to send it again.")
	errDuplicate = handler.NewHTTPError(http.StatusConflict, "duplicate_submission").
			WithMessage("This submission was already received.")
	errFormNotFound = handler.NewHTTPError(http.StatusNotFound, "form_not_found")
	errRateLimited  = handler.ErrTooManyRequests.WithMessage("Too many submissions. Please wait a moment and try again.")
)

// classify maps domain errors onto HTTP errors. Validation errors pass
// through untouched and render as 422 with field details.
func classify(err error) error {
	switch {
	case validator.IsValidationError(err), errors.Is(err, submission.ErrValidation), errors.Is(err, content.ErrInvalid):
		return nil
	case errors.Is(err, submission.ErrNotRecorded):
		return errNotRecorded
	case errors.Is(err, submission.ErrRelayFailed):
		return errRelayFailed
	case errors.Is(err, submission.ErrDuplicate):
		return errDuplicate
	case errors.Is(err, submission.ErrUnknownFormType), errors.Is(err, submission.ErrFormDisabled):
		return errFormNotFound
	case errors.Is(err, content.ErrNotFound):
		return handler.ErrNotFound
	}
	return nil
}
