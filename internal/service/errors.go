package service

import "errors"

// Error kinds.  Every error returned by a service either wraps one of these
// (use errors.Is) or is an unexpected failure that handlers report as 500.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation error")
	// ErrAuthentication marks bad credentials or an invalid/expired token.
	ErrAuthentication = errors.New("authentication error")
	// ErrAuthorization marks an authenticated caller touching someone else's resource.
	ErrAuthorization = errors.New("authorization error")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate email or a repeated check-in.
	ErrConflict = errors.New("conflict")
)

// Error carries a client-safe message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the kind so errors.Is(err, ErrNotFound) works.
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Message returns the client-safe message of a service error, or "" for
// anything else.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

// ErrorKind maps an error to a stable logging label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAuthentication):
		return "authentication"
	case errors.Is(err, ErrAuthorization):
		return "authorization"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	}
	return "unexpected"
}
