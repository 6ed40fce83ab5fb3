package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/store"
)

// InventoryStore implements the store.InventoryStore interface using a
// SQLite database as the storage backend.
type InventoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewInventoryStore creates a new SQLite implementation of the
// InventoryStore interface.
func NewInventoryStore(db store.DBTX, logger *slog.Logger) *InventoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &InventoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "inventory_store")),
	}
}

// Ensure InventoryStore implements store.InventoryStore interface
var _ store.InventoryStore = (*InventoryStore)(nil)

// WithTx implements store.InventoryStore.WithTx
func (s *InventoryStore) WithTx(tx *sql.Tx) store.InventoryStore {
	return NewInventoryStore(tx, s.logger)
}

// Get implements store.InventoryStore.Get
func (s *InventoryStore) Get(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{ItemID: itemID}

	err := s.db.QueryRowContext(ctx,
		`SELECT quantity FROM inventory WHERE item_id = ?`, itemID,
	).Scan(&item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrItemNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("inventory", "get", "scan failed", err)
	}

	return item, nil
}

// List implements store.InventoryStore.List
func (s *InventoryStore) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, quantity FROM inventory ORDER BY item_id`)
	if err != nil {
		return nil, store.NewStoreError("inventory", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.InventoryItem
	for rows.Next() {
		item := &domain.InventoryItem{}
		if err := rows.Scan(&item.ItemID, &item.Quantity); err != nil {
			return nil, store.NewStoreError("inventory", "list", "scan failed", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("inventory", "list", "iteration failed", err)
	}

	return items, nil
}

// AddQuantity implements store.InventoryStore.AddQuantity
func (s *InventoryStore) AddQuantity(ctx context.Context, itemID string, delta int) (int, error) {
	var current int
	err := s.db.QueryRowContext(ctx,
		`SELECT quantity FROM inventory WHERE item_id = ?`, itemID,
	).Scan(&current)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if delta < 0 {
			return 0, store.ErrItemNotFound
		}
		if delta == 0 {
			return 0, store.ErrItemNotFound
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO inventory (item_id, quantity) VALUES (?, ?)`,
			itemID, delta); err != nil {
			return 0, store.NewStoreError("inventory", "add", "insert failed", err)
		}
		return delta, nil
	case err != nil:
		return 0, store.NewStoreError("inventory", "add", "scan failed", err)
	}

	next := current + delta
	if next < 0 {
		return 0, store.ErrInsufficientStock
	}

	if next == 0 {
		// Zero-quantity stacks are removed, not kept.
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM inventory WHERE item_id = ?`, itemID); err != nil {
			return 0, store.NewStoreError("inventory", "add", "delete failed", err)
		}
		return 0, nil
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE inventory SET quantity = ? WHERE item_id = ?`,
		next, itemID); err != nil {
		return 0, store.NewStoreError("inventory", "add", "update failed", err)
	}

	return next, nil
}
