package submission

import "errors"

// Submission errors. Their messages double as translation keys.
var (
	// ErrValidation means a form failed field validation. The field details
	// are joined to it.
	ErrValidation = errors.New("submission.errors.validation")

	// ErrRelayFailed means delivery failed and nothing was recorded.
	ErrRelayFailed = errors.New("submission.errors.relay_failed")

	// ErrNotRecorded means the form was delivered but the Store append failed.
	ErrNotRecorded = errors.New("submission.errors.delivered_not_recorded")

	// ErrDuplicate means the idempotency key is already held.
	ErrDuplicate = errors.New("submission.errors.duplicate")

	// ErrFormDisabled means the form type is switched off in configuration.
	ErrFormDisabled = errors.New("submission.errors.form_disabled")

	// ErrUnknownFormType means the name matches no form variant.
	ErrUnknownFormType = errors.New("submission.errors.unknown_form_type")
)
