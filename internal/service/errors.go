// Package service implements the growth and economy engine: per-pet
// growth, the pet roster, the achievement tracker, the account
// inventory and the shop. Services own orchestration and persistence;
// the pure growth math lives in internal/domain/growth.
package service

import "fmt"

// Error is a service-level error with operation context. Domain
// sentinel errors (roster full, insufficient funds, ...) are wrapped,
// not replaced, so callers can still match them with errors.Is.
type Error struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new service Error.
func NewError(service, operation, message string, err error) *Error {
	return &Error{Service: service, Operation: operation, Message: message, Err: err}
}
