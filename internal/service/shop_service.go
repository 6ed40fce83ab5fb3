package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/events"
	"github.com/petdesk/petdesk/internal/store"
)

// ShopService handles the account economy: earning credits, buying
// items and pets, and the one-shot credit multiplier charm. It shares
// the account lock with the roster, so a purchase, a credit and a
// roster change serialize into one linear history.
type ShopService struct {
	mu        *sync.Mutex
	currency  store.CurrencyStore
	inventory store.InventoryStore
	roster    *RosterService
	tx        store.Transactor
	emitter   events.Emitter
	logger    *slog.Logger

	// pendingMultiplier is the armed charm multiplier. It applies to
	// the next credit only, then resets. Zero means no charm is armed.
	pendingMultiplier int64
}

// NewShopService creates a new ShopService sharing the given account
// lock with the roster.
func NewShopService(
	mu *sync.Mutex,
	currency store.CurrencyStore,
	inventory store.InventoryStore,
	roster *RosterService,
	tx store.Transactor,
	emitter events.Emitter,
	logger *slog.Logger,
) (*ShopService, error) {
	if mu == nil {
		return nil, domain.NewValidationError("mu", "cannot be nil", domain.ErrValidation)
	}
	if currency == nil {
		return nil, domain.NewValidationError("currency", "cannot be nil", domain.ErrValidation)
	}
	if inventory == nil {
		return nil, domain.NewValidationError("inventory", "cannot be nil", domain.ErrValidation)
	}
	if roster == nil {
		return nil, domain.NewValidationError("roster", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ShopService{
		mu:        mu,
		currency:  currency,
		inventory: inventory,
		roster:    roster,
		tx:        tx,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "shop_service")),
	}, nil
}

// Catalog returns the purchasable item catalog sorted by item ID.
func (s *ShopService) Catalog() []domain.CatalogItem {
	return domain.ItemCatalog()
}

// Balance returns the current account balance.
func (s *ShopService) Balance(ctx context.Context) (int64, error) {
	return s.currency.Balance(ctx)
}

// EarnCredits credits the account for a completed task or pomodoro.
// The amount is fixed per source. An armed charm multiplies the
// amount, once.
func (s *ShopService) EarnCredits(ctx context.Context, source string) (int64, error) {
	var amount int64
	switch source {
	case domain.CreditSourceTaskComplete:
		amount = domain.TaskCompleteCredit
	case domain.CreditSourcePomodoro:
		amount = domain.PomodoroCredit
	default:
		return 0, domain.NewValidationError("source", "is not a credit source", domain.ErrValidation)
	}
	return s.Credit(ctx, amount, source)
}

// Credit adds credits to the balance, applying and disarming any armed
// charm multiplier, and returns the new balance.
func (s *ShopService) Credit(ctx context.Context, amount int64, source string) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingMultiplier > 1 {
		amount *= s.pendingMultiplier
		s.pendingMultiplier = 0
	}

	balance, err := s.currency.Credit(ctx, amount)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("credits earned", "amount", amount, "source", source, "balance", balance)

	s.emit(ctx, events.KindCreditsEarned, events.CreditsEarnedPayload{
		Amount:  amount,
		Source:  source,
		Balance: balance,
	})

	return balance, nil
}

// Purchase buys a quantity of a catalog item. The debit and the
// inventory grant commit atomically: a failed debit leaves the
// inventory untouched and a failed grant leaves the balance untouched.
// Returns domain.ErrInsufficientFunds when the balance cannot cover
// the total price.
func (s *ShopService) Purchase(ctx context.Context, itemID string, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	item, err := domain.LookupItem(itemID)
	if err != nil {
		return 0, err
	}
	total := item.Price * int64(quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	var balance int64
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		balance, txErr = s.currency.WithTx(tx).Debit(ctx, total)
		if txErr != nil {
			return txErr
		}
		_, txErr = s.inventory.WithTx(tx).AddQuantity(ctx, itemID, quantity)
		return txErr
	})
	if err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return 0, domain.ErrInsufficientFunds
		}
		return 0, err
	}

	s.logger.Info("item purchased",
		"item_id", itemID,
		"quantity", quantity,
		"total_price", total,
		"balance", balance)

	s.emit(ctx, events.KindPurchased, events.PurchasedPayload{
		ItemID:     itemID,
		Quantity:   quantity,
		TotalPrice: total,
	})

	return balance, nil
}

// PurchasePet buys and adopts a pet of the given species. The debit
// and the adoption commit atomically, so a full roster never costs
// anything and a failed debit never adopts. The starter species is
// free.
func (s *ShopService) PurchasePet(ctx context.Context, species domain.Species, name string) (*domain.Pet, error) {
	price, err := domain.SpeciesPrice(species)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var pet *domain.Pet
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if price > 0 {
			if _, txErr := s.currency.WithTx(tx).Debit(ctx, price); txErr != nil {
				return txErr
			}
		}
		var txErr error
		pet, txErr = s.roster.createPetLocked(ctx, s.roster.pets.WithTx(tx), species, name)
		return txErr
	})
	if err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, err
	}

	s.emitPet(ctx, events.KindPetAdopted, pet, events.PetAdoptedPayload{
		Species: string(pet.Species),
		Name:    pet.Name,
	})

	return pet, nil
}

// ActivateCharm consumes one charm item and arms its multiplier for
// the next credit. Arming while a charm is already armed replaces it;
// the consumed charm is not refunded.
func (s *ShopService) ActivateCharm(ctx context.Context, itemID string) error {
	item, err := domain.LookupItem(itemID)
	if err != nil {
		return err
	}
	if item.Effect.Kind != domain.EffectCurrencyMultiplier {
		return domain.NewValidationError("item_id", "is not a charm", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.inventory.AddQuantity(ctx, itemID, -1); err != nil {
		if errors.Is(err, store.ErrItemNotFound) || errors.Is(err, store.ErrInsufficientStock) {
			return domain.ErrInsufficientQuantity
		}
		return err
	}
	s.pendingMultiplier = item.Effect.Multiplier

	s.logger.Info("charm armed", "item_id", itemID, "multiplier", item.Effect.Multiplier)
	return nil
}

func (s *ShopService) emit(ctx context.Context, kind events.Kind, payload interface{}) {
	event, err := events.New(kind, uuid.Nil, payload)
	if err != nil {
		s.logger.Error("failed to build event", "kind", kind, "error", err)
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("event handler reported error", "kind", kind, "error", err)
	}
}

func (s *ShopService) emitPet(ctx context.Context, kind events.Kind, pet *domain.Pet, payload interface{}) {
	event, err := events.New(kind, pet.ID, payload)
	if err != nil {
		s.logger.Error("failed to build event", "kind", kind, "error", err)
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("event handler reported error", "kind", kind, "error", err)
	}
}
