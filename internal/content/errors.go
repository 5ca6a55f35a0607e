package content

import "errors"

var (
	// ErrNotFound is returned when an id matches no item, or a feature's
	// ministry does not exist.
	ErrNotFound = errors.New("content: not found")

	// ErrInvalid is returned with field details when an item fails validation.
	ErrInvalid = errors.New("content: invalid input")

	// ErrInvalidSeed is returned when a seed file cannot be read or parsed.
	ErrInvalidSeed = errors.New("content: invalid seed file")

	// ErrUnknownDriver is returned for an unsupported CONTENT_DRIVER.
	ErrUnknownDriver = errors.New("content: unknown driver")
)
