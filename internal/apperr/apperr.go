// Package apperr defines the error taxonomy shared by the bridge flows.
//
// Auth errors are fatal at startup, transport errors abort the current event,
// validation errors drop the event. ErrNotFound only drives create-on-miss
// branches and is never reported to the operator.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound reports that no existing record matched a label.
var ErrNotFound = errors.New("record not found")

// AuthError reports missing or rejected credentials for an external service.
type AuthError struct {
	Service string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s authentication failed: %v", e.Service, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError reports a failed call to an external service.
type TransportError struct {
	Service string
	Op      string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports an inbound event that cannot be processed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Auth wraps err as an AuthError for service.
func Auth(service string, err error) error {
	return &AuthError{Service: service, Err: err}
}

// Transport wraps err as a TransportError. A nil err yields nil.
func Transport(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Service: service, Op: op, Err: err}
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// FromStatus classifies an HTTP status returned by service. 401 and 403 map to
// AuthError, everything else to TransportError.
func FromStatus(service, op string, status int, err error) error {
	if err == nil {
		return nil
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return Auth(service, fmt.Errorf("%s: %w", op, err))
	}
	return Transport(service, op, err)
}

// IsAuth reports whether err carries an AuthError.
func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

// IsTransport reports whether err carries a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
