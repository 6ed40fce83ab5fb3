package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/domain/growth"
	"github.com/petdesk/petdesk/internal/events"
	"github.com/petdesk/petdesk/internal/store"
)

// GrowthService is the per-pet growth engine. It loads a pet, runs the
// pure growth math over it, persists the result and emits the growth
// events other components observe.
//
// GrowthService does not serialize callers; the roster owns the
// account lock and routes all growth operations through it.
type GrowthService struct {
	pets    store.PetStore
	calc    growth.Service
	params  *growth.Params
	emitter events.Emitter
	logger  *slog.Logger
}

// NewGrowthService creates a new GrowthService.
func NewGrowthService(
	pets store.PetStore,
	params *growth.Params,
	emitter events.Emitter,
	logger *slog.Logger,
) (*GrowthService, error) {
	if pets == nil {
		return nil, domain.NewValidationError("pets", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}
	if params == nil {
		params = growth.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GrowthService{
		pets:    pets,
		calc:    growth.NewServiceWithParams(params),
		params:  params,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "growth_service")),
	}, nil
}

// applyEffectTx applies a pet-scoped effect and persists the pet
// inside the caller's transaction. It emits nothing: the caller emits
// after the transaction commits, so handlers never observe (or open a
// transaction against) uncommitted state.
func (s *GrowthService) applyEffectTx(ctx context.Context, tx *sql.Tx, pet *domain.Pet, effect domain.ItemEffect) (*domain.Pet, error) {
	updated, err := s.calc.ApplyEffect(pet, effect)
	if err != nil {
		return nil, NewError("growth", "apply_effect", "calculation failed", err)
	}
	if err := s.pets.WithTx(tx).Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Threshold returns the experience needed to advance from the given level.
func (s *GrowthService) Threshold(level int) int {
	return s.calc.Threshold(level)
}

// GrantExperience adds experience to a pet, applying level-ups
// sequentially and evolution checkpoints, persists the result and
// emits one LevelUp event per crossed level plus an Evolved event when
// a checkpoint is crossed. Rejects non-positive amounts with
// domain.ErrInvalidAmount.
func (s *GrowthService) GrantExperience(ctx context.Context, petID uuid.UUID, amount int, source string) (*domain.Pet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	updated, result, err := s.calc.GrantExperience(pet, amount)
	if err != nil {
		return nil, NewError("growth", "grant_experience", "calculation failed", err)
	}

	if err := s.pets.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Debug("experience granted",
		"pet_id", petID,
		"amount", amount,
		"source", source,
		"level", updated.Level,
		"experience", updated.Experience)

	for _, step := range result.Steps {
		s.emit(ctx, events.KindLevelUp, petID, events.LevelUpPayload{From: step.From, To: step.To})
	}
	if result.Evolved() {
		s.emit(ctx, events.KindEvolved, petID, events.EvolvedPayload{
			FromStage: result.FromStage,
			ToStage:   result.ToStage,
		})
	}

	return updated, nil
}

// ApplyTick decays the pet's vitals for the elapsed duration and
// persists the result. Returns the updated pet and the tick result;
// the caller carries the unconsumed elapsed remainder forward. A
// Neglected event is emitted when any vital reaches zero.
func (s *GrowthService) ApplyTick(ctx context.Context, pet *domain.Pet, elapsed time.Duration) (*domain.Pet, *growth.TickResult, error) {
	updated, result, err := s.calc.ApplyTick(pet, elapsed)
	if err != nil {
		return nil, nil, NewError("growth", "apply_tick", "calculation failed", err)
	}

	if result.Decayed == 0 {
		return pet, result, nil
	}

	if err := s.pets.Update(ctx, updated); err != nil {
		return nil, nil, err
	}

	s.emit(ctx, events.KindVitalsChanged, pet.ID, events.VitalsChangedPayload{
		Cause:  "tick",
		Hunger: updated.Vitals.Hunger,
		Mood:   updated.Vitals.Mood,
		Energy: updated.Vitals.Energy,
	})

	if len(result.Neglected) > 0 {
		names := make([]string, len(result.Neglected))
		for i, n := range result.Neglected {
			names[i] = string(n)
		}
		s.emit(ctx, events.KindNeglected, pet.ID, events.NeglectedPayload{Vitals: names})
	}

	return updated, result, nil
}

// ApplyEffect applies a pet-scoped item effect (stat delta or cosmetic
// unlock) to the pet and persists the result. The cause distinguishes
// feed, play and direct item use in the emitted event.
func (s *GrowthService) ApplyEffect(ctx context.Context, pet *domain.Pet, effect domain.ItemEffect, cause string) (*domain.Pet, error) {
	updated, err := s.calc.ApplyEffect(pet, effect)
	if err != nil {
		return nil, NewError("growth", "apply_effect", "calculation failed", err)
	}

	if err := s.pets.Update(ctx, updated); err != nil {
		return nil, err
	}

	if effect.Kind == domain.EffectStatDelta {
		s.emit(ctx, events.KindVitalsChanged, pet.ID, events.VitalsChangedPayload{
			Cause:  cause,
			Hunger: updated.Vitals.Hunger,
			Mood:   updated.Vitals.Mood,
			Energy: updated.Vitals.Energy,
		})
	}

	return updated, nil
}

// emit publishes an event, logging emission failures instead of
// failing the growth operation that produced them.
func (s *GrowthService) emit(ctx context.Context, kind events.Kind, petID uuid.UUID, payload interface{}) {
	event, err := events.New(kind, petID, payload)
	if err != nil {
		s.logger.Error("failed to build event", "kind", kind, "error", err)
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("event handler reported error", "kind", kind, "error", err)
	}
}
