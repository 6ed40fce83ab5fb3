package store

import (
	"context"
	"database/sql"

	"github.com/petdesk/petdesk/internal/domain"
)

// InventoryStore defines the interface for account inventory
// persistence. Inventory is a set of item stacks; a stack whose
// quantity reaches zero is deleted, never kept as an empty row.
type InventoryStore interface {
	// Get retrieves the stack for an item ID.
	// Returns ErrItemNotFound if no stack exists.
	Get(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// List returns all stacks ordered by item ID.
	List(ctx context.Context) ([]*domain.InventoryItem, error)

	// AddQuantity adjusts a stack by delta, creating it when absent
	// and deleting it when the result reaches zero. Returns the new
	// quantity. Returns ErrInsufficientStock if the result would be
	// negative, and ErrItemNotFound when decrementing a stack that
	// does not exist.
	AddQuantity(ctx context.Context, itemID string, delta int) (int, error)

	// WithTx returns a new InventoryStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) InventoryStore
}
