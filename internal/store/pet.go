package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/domain"
)

// PetStore defines the interface for pet data persistence.
type PetStore interface {
	// Create saves a new pet to the store.
	// Returns validation errors if the pet data is invalid.
	Create(ctx context.Context, pet *domain.Pet) error

	// GetByID retrieves a pet by its unique ID.
	// Returns ErrPetNotFound if the pet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error)

	// List returns all owned pets ordered by creation time.
	List(ctx context.Context) ([]*domain.Pet, error)

	// Update persists the pet's current growth and vital state.
	// Returns ErrPetNotFound if the pet does not exist.
	Update(ctx context.Context, pet *domain.Pet) error

	// Delete removes a pet from the store by its ID.
	// Returns ErrPetNotFound if the pet does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetActive marks the given pet active and clears the flag on
	// every other pet, preserving the at-most-one-active invariant.
	// A nil ID clears the active pet entirely.
	// Returns ErrPetNotFound if the pet does not exist.
	SetActive(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new PetStore instance that uses the provided
	// transaction. The transaction is created and managed by the
	// caller, typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) PetStore
}
