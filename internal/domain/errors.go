package domain

import "errors"

// Sentinel errors for the catalog core. Callers classify failures with
// errors.Is; the HTTP layer maps them to status codes.
var (
	// ErrValidation signals an invariant violation on a field.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signals a uniqueness violation on name or code.
	ErrConflict = errors.New("record already exists")

	// ErrNotFound signals an unknown id where one was required.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput signals a malformed top-level request payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized signals missing or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTooManyAttempts signals the login throttle tripped.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
