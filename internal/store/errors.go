package store

import "errors"

var (
	// ErrInvalidCategory is returned for a category name outside [a-z0-9_]{1,64}.
	ErrInvalidCategory = errors.New("store: invalid category")
	// ErrInvalidConfig is returned by constructors missing a required setting.
	ErrInvalidConfig = errors.New("store: invalid configuration")
	// ErrUnknownDriver is returned for an unsupported store or guard driver.
	ErrUnknownDriver = errors.New("store: unknown driver")

	// ErrCorrupt is returned when a stored collection cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt collection")

	// ErrAccessDenied is returned when S3 refuses the credentials.
	ErrAccessDenied = errors.New("store: access denied")
	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("store: bucket not found")
	// ErrUnavailable is returned for S3 failures that may succeed on retry.
	ErrUnavailable = errors.New("store: backend unavailable")
)
