package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, services and handlers.
// Callers test for them with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrMissingParameter    = fmt.Errorf("%w: missing parameter", ErrValidation)
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrNotFound            = errors.New("not found")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// Missing reports a missing required parameter by name.
func Missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingParameter, name)
}

// Invalid reports a caller-correctable validation failure.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Store wraps a driver error so callers can classify it as a transient store failure.
func Store(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
