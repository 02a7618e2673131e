package booking

import "errors"

// ErrorKind classifies gateway failures so callers can decide between
// degrading to demo data, surfacing a retryable message, or rejecting input.
type ErrorKind int

const (
	// KindConnection means the backend could not be reached at all
	// (refused connection, DNS failure, timeout).
	KindConnection ErrorKind = iota
	// KindServer means the backend answered but with a non-2xx status,
	// an unreadable payload, or success=false.
	KindServer
	// KindValidation means the input was rejected locally before any
	// network call was made.
	KindValidation
)

// Error is the failure type returned by the API gateway.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func NewConnectionError(msg string, err error) *Error {
	return &Error{Kind: KindConnection, Message: msg, Err: err}
}

func NewServerError(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf extracts the error kind from err, if err carries one.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
