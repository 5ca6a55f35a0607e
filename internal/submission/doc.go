// Package submission owns the public form pipeline: the closed set of form
// variants, their validation and message shape, and the Service that relays a
// validated form before recording it.
//
// A submission is only recorded after the relay reports success. A relay
// failure leaves the store untouched; a store failure after a successful
// relay is reported as ErrNotRecorded so callers never prompt a resend.
package submission
