package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/store"
)

// InventoryService exposes the account inventory: listing stacks,
// granting items (shop purchases, achievement rewards) and consuming
// them. Consumption only hands back the item's effect; applying it is
// the caller's job, so the inventory never reaches into pet or
// currency state.
type InventoryService struct {
	inventory store.InventoryStore
	logger    *slog.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventory store.InventoryStore, logger *slog.Logger) (*InventoryService, error) {
	if inventory == nil {
		return nil, domain.NewValidationError("inventory", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{
		inventory: inventory,
		logger:    logger.With(slog.String("component", "inventory_service")),
	}, nil
}

// WithTx returns a copy bound to the given transaction, for callers
// composing inventory changes with other writes.
func (s *InventoryService) WithTx(tx *sql.Tx) *InventoryService {
	clone := *s
	clone.inventory = s.inventory.WithTx(tx)
	return &clone
}

// List returns all inventory stacks ordered by item ID.
func (s *InventoryService) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	return s.inventory.List(ctx)
}

// Get returns the stack for one item, or domain.ErrInsufficientQuantity
// when none is held.
func (s *InventoryService) Get(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	if _, err := domain.LookupItem(itemID); err != nil {
		return nil, err
	}
	stack, err := s.inventory.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, domain.ErrInsufficientQuantity
		}
		return nil, err
	}
	return stack, nil
}

// Grant adds quantity of a catalog item to the inventory and returns
// the new stack size. Quantity must be positive and the item must be
// in the catalog.
func (s *InventoryService) Grant(ctx context.Context, itemID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if _, err := domain.LookupItem(itemID); err != nil {
		return 0, err
	}

	newQty, err := s.inventory.AddQuantity(ctx, itemID, quantity)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("item granted", "item_id", itemID, "quantity", quantity, "stack", newQty)
	return newQty, nil
}

// Consume removes quantity of the named item in one all-or-nothing
// step and returns the item's effect for the caller to apply. Quantity
// must be positive. Returns domain.ErrInsufficientQuantity when the
// stack is missing or smaller than requested, leaving it untouched.
func (s *InventoryService) Consume(ctx context.Context, itemID string, quantity int) (domain.ItemEffect, error) {
	if quantity <= 0 {
		return domain.ItemEffect{}, domain.ErrInvalidAmount
	}
	item, err := domain.LookupItem(itemID)
	if err != nil {
		return domain.ItemEffect{}, err
	}

	if _, err := s.inventory.AddQuantity(ctx, itemID, -quantity); err != nil {
		if errors.Is(err, store.ErrItemNotFound) || errors.Is(err, store.ErrInsufficientStock) {
			return domain.ItemEffect{}, domain.ErrInsufficientQuantity
		}
		return domain.ItemEffect{}, err
	}

	s.logger.Debug("items consumed", "item_id", itemID, "quantity", quantity)
	return item.Effect, nil
}
