package relay

import "errors"

var (
	// ErrTransport is returned when the request never got a response.
	ErrTransport = errors.New("relay: transport failure")
	// ErrRejected is returned for a non-2xx status or an unsuccessful ack.
	ErrRejected = errors.New("relay: rejected by endpoint")
	// ErrMalformedAck is returned when a 2xx body is not a valid acknowledgement.
	ErrMalformedAck = errors.New("relay: malformed acknowledgement")

	// ErrInvalidConfig is returned by constructors missing a required setting.
	ErrInvalidConfig = errors.New("relay: invalid configuration")
	// ErrUnknownDriver is returned for an unsupported RELAY_DRIVER.
	ErrUnknownDriver = errors.New("relay: unknown driver")
)
