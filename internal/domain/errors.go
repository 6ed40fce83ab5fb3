package domain

import "errors"

// Common domain errors used across the engine.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when a grant, consume, credit or
	// purchase quantity is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrRosterFull is returned when adopting would exceed the roster limit.
	ErrRosterFull = errors.New("roster is full")

	// ErrLastPet is returned when releasing the only remaining pet.
	ErrLastPet = errors.New("cannot release the last pet")

	// ErrInsufficientFunds is returned when a purchase costs more than
	// the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientQuantity is returned when consuming more of an item
	// than the inventory holds.
	ErrInsufficientQuantity = errors.New("insufficient item quantity")

	// ErrUnknownSpecies is returned when a species is not in the catalog.
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrUnknownItem is returned when an item ID is not in the catalog.
	ErrUnknownItem = errors.New("unknown item")

	// ErrUnknownAchievement is returned when an achievement ID is not in
	// the catalog.
	ErrUnknownAchievement = errors.New("unknown achievement")
)

// ValidationError enriches ErrValidation with the failing field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field + " " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
