package growth

import (
	"errors"
	"time"

	"github.com/petdesk/petdesk/internal/domain"
)

// Common errors
var (
	ErrNilPet        = errors.New("pet cannot be nil")
	ErrNonPositiveXP = errors.New("experience amount must be positive")
	ErrNegativeTime  = errors.New("elapsed time cannot be negative")
)

// GrantResult describes the outcome of an experience grant on a pet.
type GrantResult struct {
	Steps     []LevelStep // one entry per level crossed, in order
	FromStage int
	ToStage   int // equal to FromStage when no evolution happened
}

// Evolved reports whether the grant crossed an evolution checkpoint.
func (r *GrantResult) Evolved() bool {
	return r.ToStage > r.FromStage
}

// TickResult describes the outcome of applying elapsed time to a pet.
type TickResult struct {
	// Decayed is how many points each vital lost.
	Decayed int

	// Consumed is the slice of elapsed time the decay accounts for.
	// The caller carries the remainder into the next tick.
	Consumed time.Duration

	// Neglected lists vitals that are at zero after the decay.
	Neglected []domain.VitalName
}

// Service computes growth state transitions. All methods follow
// immutability principles: they return a new pet instance and leave
// the input untouched, so callers can roll back by discarding the
// result.
type Service interface {
	// GrantExperience adds experience, resolving level-ups
	// sequentially and evolution checkpoints. Rejects non-positive
	// amounts with ErrNonPositiveXP.
	GrantExperience(pet *domain.Pet, amount int) (*domain.Pet, *GrantResult, error)

	// ApplyTick decays vitals proportionally to elapsed time.
	ApplyTick(pet *domain.Pet, elapsed time.Duration) (*domain.Pet, *TickResult, error)

	// ApplyEffect applies a stat-delta or cosmetic-unlock effect to
	// the pet. Currency-multiplier effects are not pet-scoped and are
	// rejected.
	ApplyEffect(pet *domain.Pet, effect domain.ItemEffect) (*domain.Pet, error)

	// Threshold exposes the experience threshold for a level so
	// callers can display progress.
	Threshold(level int) int
}

// ErrEffectNotPetScoped is returned when an account-scoped effect is
// handed to the pet growth engine.
var ErrEffectNotPetScoped = errors.New("effect is not pet-scoped")

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a growth service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a growth service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Params returns the default parameter set used by NewDefaultService.
// Exposed so wiring code can read catalog values (default effects,
// play experience) without duplicating them.
func (s *defaultService) Params() *Params {
	return s.params
}

func clonePet(pet *domain.Pet) *domain.Pet {
	clone := *pet
	if pet.Cosmetics != nil {
		clone.Cosmetics = append([]string(nil), pet.Cosmetics...)
	}
	return &clone
}

// GrantExperience implements the Service interface.
func (s *defaultService) GrantExperience(pet *domain.Pet, amount int) (*domain.Pet, *GrantResult, error) {
	if pet == nil {
		return nil, nil, ErrNilPet
	}
	if amount <= 0 {
		return nil, nil, ErrNonPositiveXP
	}

	updated := clonePet(pet)
	level, experience, steps := applyExperience(pet.Level, pet.Experience, amount, s.params)
	updated.Level = level
	updated.Experience = experience

	result := &GrantResult{
		Steps:     steps,
		FromStage: pet.EvolutionStage,
		ToStage:   pet.EvolutionStage,
	}

	// Evolution stage is monotone: it only moves forward, and only at
	// level checkpoints.
	if stage := StageForLevel(level, s.params); stage > updated.EvolutionStage {
		updated.EvolutionStage = stage
		result.ToStage = stage
		// Evolving restores every vital.
		updated.Vitals = domain.FullVitals()
	}

	updated.UpdatedAt = time.Now().UTC()
	return updated, result, nil
}

// ApplyTick implements the Service interface.
func (s *defaultService) ApplyTick(pet *domain.Pet, elapsed time.Duration) (*domain.Pet, *TickResult, error) {
	if pet == nil {
		return nil, nil, ErrNilPet
	}
	if elapsed < 0 {
		return nil, nil, ErrNegativeTime
	}

	points, consumed := decaySteps(elapsed, s.params)
	updated := clonePet(pet)
	result := &TickResult{Decayed: points, Consumed: consumed}

	if points > 0 {
		updated.Vitals = decayVitals(pet.Vitals, points)
		updated.UpdatedAt = time.Now().UTC()
		result.Neglected = updated.Vitals.Depleted()
	}

	return updated, result, nil
}

// ApplyEffect implements the Service interface.
func (s *defaultService) ApplyEffect(pet *domain.Pet, effect domain.ItemEffect) (*domain.Pet, error) {
	if pet == nil {
		return nil, ErrNilPet
	}

	updated := clonePet(pet)
	switch effect.Kind {
	case domain.EffectStatDelta:
		updated.Vitals = applyStatDelta(pet.Vitals, effect)
	case domain.EffectCosmeticUnlock:
		if !updated.HasCosmetic(effect.CosmeticID) {
			updated.Cosmetics = append(updated.Cosmetics, effect.CosmeticID)
		}
	default:
		return nil, ErrEffectNotPetScoped
	}

	updated.UpdatedAt = time.Now().UTC()
	return updated, nil
}

// Threshold implements the Service interface.
func (s *defaultService) Threshold(level int) int {
	return Threshold(level, s.params)
}
