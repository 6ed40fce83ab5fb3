package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/events"
	"github.com/petdesk/petdesk/internal/store"
)

// DefaultRosterLimit is the maximum number of pets an account can hold.
const DefaultRosterLimit = 5

// RosterService manages the account's pet roster: adoption, release,
// the single active pet, and the feed/play/tick interactions against
// the active pet. All mutating operations serialize on the account
// lock, which it shares with the shop so a purchase and a roster
// change can never interleave.
type RosterService struct {
	mu        *sync.Mutex
	pets      store.PetStore
	inventory store.InventoryStore
	growth    *GrowthService
	tx        store.Transactor
	emitter   events.Emitter
	logger    *slog.Logger
	limit     int

	// lastTick tracks, per pet, the instant decay has been applied up
	// to. Sub-point remainders stay in the clock: the tick only
	// advances it by the duration the decay actually consumed.
	lastTick map[uuid.UUID]time.Time
}

// NewRosterService creates a new RosterService. The mutex is the
// shared account lock, owned by the caller and handed to every service
// that mutates account state.
func NewRosterService(
	mu *sync.Mutex,
	pets store.PetStore,
	inventory store.InventoryStore,
	growth *GrowthService,
	tx store.Transactor,
	emitter events.Emitter,
	logger *slog.Logger,
) (*RosterService, error) {
	if mu == nil {
		return nil, domain.NewValidationError("mu", "cannot be nil", domain.ErrValidation)
	}
	if pets == nil {
		return nil, domain.NewValidationError("pets", "cannot be nil", domain.ErrValidation)
	}
	if inventory == nil {
		return nil, domain.NewValidationError("inventory", "cannot be nil", domain.ErrValidation)
	}
	if growth == nil {
		return nil, domain.NewValidationError("growth", "cannot be nil", domain.ErrValidation)
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

	return &RosterService{
		mu:        mu,
		pets:      pets,
		inventory: inventory,
		growth:    growth,
		tx:        tx,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "roster_service")),
		limit:     DefaultRosterLimit,
		lastTick:  make(map[uuid.UUID]time.Time),
	}, nil
}

// Adopt adds a new pet to the roster. The pet starts at level 1 with
// full vitals and is not active; activation is a separate, explicit
// step. Returns domain.ErrRosterFull when the roster already holds the
// limit.
func (s *RosterService) Adopt(ctx context.Context, species domain.Species, name string) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adoptLocked(ctx, species, name)
}

// adoptLocked is the adoption body, run under the account lock.
func (s *RosterService) adoptLocked(ctx context.Context, species domain.Species, name string) (*domain.Pet, error) {
	pet, err := s.createPetLocked(ctx, s.pets, species, name)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.KindPetAdopted, pet.ID, events.PetAdoptedPayload{
		Species: string(pet.Species),
		Name:    pet.Name,
	})

	return pet, nil
}

// createPetLocked enforces the roster limit and creates the pet. The
// caller holds the account lock and emits the adoption event itself,
// which lets the shop run this inside a purchase transaction and emit
// only after the commit.
func (s *RosterService) createPetLocked(ctx context.Context, pets store.PetStore, species domain.Species, name string) (*domain.Pet, error) {
	roster, err := pets.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(roster) >= s.limit {
		return nil, domain.ErrRosterFull
	}

	pet, err := domain.NewPet(species, name)
	if err != nil {
		return nil, err
	}

	if err := pets.Create(ctx, pet); err != nil {
		return nil, err
	}

	s.logger.Info("pet adopted",
		"pet_id", pet.ID,
		"species", pet.Species,
		"roster_size", len(roster)+1)

	return pet, nil
}

// Release removes a pet from the roster. The last pet cannot be
// released: the account always keeps at least one. Releasing the
// active pet leaves the account with no active pet until the next
// SetActive.
func (s *RosterService) Release(ctx context.Context, petID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return err
	}

	roster, err := s.pets.List(ctx)
	if err != nil {
		return err
	}
	if len(roster) <= 1 {
		return domain.ErrLastPet
	}

	if err := s.pets.Delete(ctx, petID); err != nil {
		return err
	}
	delete(s.lastTick, petID)

	s.logger.Info("pet released", "pet_id", petID, "species", pet.Species)

	s.emit(ctx, events.KindPetReleased, petID, events.PetReleasedPayload{
		Species: string(pet.Species),
	})

	return nil
}

// SetActive makes the given pet the account's single active pet and
// starts its decay clock fresh, so time spent inactive never counts
// against its vitals.
func (s *RosterService) SetActive(ctx context.Context, petID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.activePetLocked(ctx)
	if err != nil {
		return err
	}
	if previous != nil && previous.ID == petID {
		return nil
	}

	if err := s.pets.SetActive(ctx, petID); err != nil {
		return err
	}
	s.lastTick[petID] = time.Now().UTC()

	payload := events.ActivePetChangedPayload{}
	if previous != nil {
		payload.PreviousPetID = previous.ID.String()
	}
	s.emit(ctx, events.KindActivePetChanged, petID, payload)

	return nil
}

// Rename changes a pet's display name and persists it.
func (s *RosterService) Rename(ctx context.Context, petID uuid.UUID, name string) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := pet.Rename(name); err != nil {
		return nil, err
	}
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}

	s.logger.Info("pet renamed", "pet_id", petID, "name", name)
	return pet, nil
}

// GetPet returns one pet by ID.
func (s *RosterService) GetPet(ctx context.Context, petID uuid.UUID) (*domain.Pet, error) {
	return s.pets.GetByID(ctx, petID)
}

// ListRoster returns every pet on the roster in adoption order.
func (s *RosterService) ListRoster(ctx context.Context) ([]*domain.Pet, error) {
	return s.pets.List(ctx)
}

// ActivePet returns the currently active pet, or nil when no pet is
// active.
func (s *RosterService) ActivePet(ctx context.Context) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePetLocked(ctx)
}

func (s *RosterService) activePetLocked(ctx context.Context) (*domain.Pet, error) {
	roster, err := s.pets.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, pet := range roster {
		if pet.Active {
			return pet, nil
		}
	}
	return nil, nil
}

// Tick applies vital decay to the active pet for the time elapsed
// since its clock last advanced. Only the active pet decays; inactive
// pets are frozen. The clock advances by exactly the duration the
// decay consumed, so sub-point remainders carry into the next tick.
func (s *RosterService) Tick(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.activePetLocked(ctx)
	if err != nil {
		return err
	}
	if pet == nil {
		return nil
	}

	last, ok := s.lastTick[pet.ID]
	if !ok {
		// First observation of this pet; start the clock without
		// charging it for unknown downtime.
		s.lastTick[pet.ID] = now
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed <= 0 {
		return nil
	}

	_, result, err := s.growth.ApplyTick(ctx, pet, elapsed)
	if err != nil {
		return err
	}
	s.lastTick[pet.ID] = last.Add(result.Consumed)

	return nil
}

// Feed feeds a pet. With an empty itemID the default feed effect
// applies for free; with an item ID the item is consumed from the
// inventory and its effect applies instead. Consumption and the pet
// update commit in one transaction.
func (s *RosterService) Feed(ctx context.Context, petID uuid.UUID, itemID string) (*domain.Pet, error) {
	return s.interact(ctx, petID, itemID, "feed", s.growth.params.DefaultFeedEffect, 0)
}

// Play plays with a pet. Playing grants a small amount of experience
// on top of the vital effect.
func (s *RosterService) Play(ctx context.Context, petID uuid.UUID, itemID string) (*domain.Pet, error) {
	return s.interact(ctx, petID, itemID, "play", s.growth.params.DefaultPlayEffect, s.growth.params.PlayExperience)
}

// UseItem consumes one of the named item and applies its pet-scoped
// effect (stat delta or cosmetic unlock) to the pet. Account-scoped
// effects are rejected; the shop activates those.
func (s *RosterService) UseItem(ctx context.Context, petID uuid.UUID, itemID string) (*domain.Pet, error) {
	if itemID == "" {
		return nil, domain.ErrUnknownItem
	}
	return s.interact(ctx, petID, itemID, "item", domain.ItemEffect{}, 0)
}

// interact is the shared feed/play body. When an item is named, its
// consumption and the vital change commit atomically; the interaction
// events are emitted only after the commit succeeds.
func (s *RosterService) interact(ctx context.Context, petID uuid.UUID, itemID, cause string, fallback domain.ItemEffect, xp int) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	effect := fallback
	if itemID != "" {
		item, err := domain.LookupItem(itemID)
		if err != nil {
			return nil, err
		}
		effect = item.Effect
	}

	var updated *domain.Pet
	if itemID == "" {
		updated, err = s.growth.ApplyEffect(ctx, pet, effect, cause)
		if err != nil {
			return nil, err
		}
	} else {
		err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			if _, err := s.inventory.WithTx(tx).AddQuantity(ctx, itemID, -1); err != nil {
				return err
			}
			var txErr error
			updated, txErr = s.growth.applyEffectTx(ctx, tx, pet, effect)
			return txErr
		})
		if err != nil {
			if errors.Is(err, store.ErrInsufficientStock) || errors.Is(err, store.ErrItemNotFound) {
				return nil, domain.ErrInsufficientQuantity
			}
			return nil, err
		}

		if effect.Kind == domain.EffectStatDelta {
			s.emit(ctx, events.KindVitalsChanged, petID, events.VitalsChangedPayload{
				Cause:  cause,
				Hunger: updated.Vitals.Hunger,
				Mood:   updated.Vitals.Mood,
				Energy: updated.Vitals.Energy,
			})
		}
	}

	if xp > 0 {
		leveled, err := s.growth.GrantExperience(ctx, updated.ID, xp, cause)
		if err != nil {
			return nil, err
		}
		updated = leveled
	}

	s.logger.Debug("interaction applied",
		"pet_id", petID,
		"cause", cause,
		"item_id", itemID)

	return updated, nil
}

// GrantExperience awards experience to a pet under the account lock.
// Source labels where the grant came from for logging and events.
func (s *RosterService) GrantExperience(ctx context.Context, petID uuid.UUID, amount int, source string) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.growth.GrantExperience(ctx, petID, amount, source)
}

func (s *RosterService) emit(ctx context.Context, kind events.Kind, petID uuid.UUID, payload interface{}) {
	event, err := events.New(kind, petID, payload)
	if err != nil {
		s.logger.Error("failed to build event", "kind", kind, "error", err)
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("event handler reported error", "kind", kind, "error", err)
	}
}
