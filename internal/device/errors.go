package device

import (
	"errors"
	"fmt"
)

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrValidation) {
//	    // the call was rejected, nothing changed
//	}
var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("device: validation failed")

	// ErrDeviceNotFound is returned by the Fleet when a device ID is unknown.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned by the Fleet when adding a duplicate ID.
	ErrDeviceExists = errors.New("device: already exists")
)

// ValidationError describes a rejected parameter.
//
// It is returned before any state is touched, so the receiver is always
// left exactly as it was.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("device: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field string, value any, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
