package api

import (
	"errors"
	"net/http"

	"github.com/petdesk/petdesk/internal/api/shared"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrPetNotFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrAchievementNotFound):
		return http.StatusNotFound

	// Economy errors
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired

	// Conflict errors
	case errors.Is(err, domain.ErrRosterFull),
		errors.Is(err, domain.ErrLastPet),
		errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownSpecies),
		errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrUnknownAchievement),
		errors.Is(err, domain.ErrPetNameEmpty),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrPetNotFound):
		return "Pet not found"

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrAchievementNotFound):
		return "Achievement not found"

	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient credits"

	case errors.Is(err, domain.ErrRosterFull):
		return "Roster is full"

	case errors.Is(err, domain.ErrLastPet):
		return "Cannot release the last pet"

	case errors.Is(err, domain.ErrInsufficientQuantity):
		return "Not enough of that item"

	case errors.Is(err, domain.ErrInvalidAmount):
		return "Amount must be positive"

	case errors.Is(err, domain.ErrUnknownSpecies):
		return "Unknown species"

	case errors.Is(err, domain.ErrUnknownItem):
		return "Unknown item"

	case errors.Is(err, domain.ErrUnknownAchievement):
		return "Unknown achievement"

	case errors.Is(err, domain.ErrPetNameEmpty):
		return "Pet name cannot be empty"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an internal error to a status code and sanitized
// message and writes the response. An explicit userMessage overrides
// the derived one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
