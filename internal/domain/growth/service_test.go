package growth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petdesk/petdesk/internal/domain"
)

func newTestPet(t *testing.T) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(domain.SpeciesCat, "Mochi")
	require.NoError(t, err)
	return pet
}

func TestGrantExperienceLevelsUp(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	pet := newTestPet(t)

	updated, result, err := svc.GrantExperience(pet, svc.Threshold(1))
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 0, updated.Experience)
	require.Len(t, result.Steps, 1)
	assert.False(t, result.Evolved())

	// The input pet must be untouched.
	assert.Equal(t, 1, pet.Level)
	assert.Equal(t, 0, pet.Experience)
}

func TestGrantExperienceRejectsNonPositive(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	pet := newTestPet(t)

	_, _, err := svc.GrantExperience(pet, 0)
	assert.ErrorIs(t, err, ErrNonPositiveXP)

	_, _, err = svc.GrantExperience(pet, -5)
	assert.ErrorIs(t, err, ErrNonPositiveXP)

	_, _, err = svc.GrantExperience(nil, 10)
	assert.ErrorIs(t, err, ErrNilPet)
}

func TestGrantExperienceEvolutionRestoresVitals(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	svc := NewServiceWithParams(params)

	pet := newTestPet(t)
	pet.Level = 9
	pet.Vitals = domain.Vitals{Hunger: 10, Mood: 20, Energy: 30}

	updated, result, err := svc.GrantExperience(pet, Threshold(9, params))
	require.NoError(t, err)

	assert.Equal(t, 10, updated.Level)
	require.True(t, result.Evolved())
	assert.Equal(t, 0, result.FromStage)
	assert.Equal(t, 1, result.ToStage)
	assert.Equal(t, domain.FullVitals(), updated.Vitals, "evolving restores every vital")
}

func TestGrantExperienceStageIsMonotone(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()

	// A pet already past a checkpoint must not re-evolve.
	pet := newTestPet(t)
	pet.Level = 11
	pet.EvolutionStage = 1

	_, result, err := svc.GrantExperience(pet, 1)
	require.NoError(t, err)
	assert.False(t, result.Evolved())
}

func TestApplyTickDecaysAndReportsNeglect(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	pet := newTestPet(t)
	pet.Vitals = domain.Vitals{Hunger: 4, Mood: 50, Energy: 80}

	updated, result, err := svc.ApplyTick(pet, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Decayed)
	assert.Equal(t, time.Hour, result.Consumed)
	assert.Equal(t, domain.Vitals{Hunger: 0, Mood: 45, Energy: 75}, updated.Vitals)
	assert.Equal(t, []domain.VitalName{domain.VitalHunger}, result.Neglected)
}

func TestApplyTickSubPointElapsed(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	pet := newTestPet(t)

	updated, result, err := svc.ApplyTick(pet, 5*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Decayed)
	assert.Equal(t, time.Duration(0), result.Consumed, "unconsumed time stays with the caller")
	assert.Equal(t, pet.Vitals, updated.Vitals)
}

func TestApplyTickRejectsNegativeElapsed(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	_, _, err := svc.ApplyTick(newTestPet(t), -time.Minute)
	assert.ErrorIs(t, err, ErrNegativeTime)
}

func TestApplyEffect(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()

	t.Run("stat delta", func(t *testing.T) {
		t.Parallel()

		pet := newTestPet(t)
		pet.Vitals = domain.Vitals{Hunger: 50, Mood: 50, Energy: 50}

		updated, err := svc.ApplyEffect(pet, domain.ItemEffect{Kind: domain.EffectStatDelta, Hunger: 20})
		require.NoError(t, err)
		assert.Equal(t, 60, updated.Vitals.Hunger, "diminishing returns at half full")
		assert.Equal(t, 50, pet.Vitals.Hunger, "input pet untouched")
	})

	t.Run("cosmetic unlock", func(t *testing.T) {
		t.Parallel()

		pet := newTestPet(t)
		updated, err := svc.ApplyEffect(pet, domain.ItemEffect{Kind: domain.EffectCosmeticUnlock, CosmeticID: "hat"})
		require.NoError(t, err)
		assert.True(t, updated.HasCosmetic("hat"))

		// Unlocking twice stays idempotent.
		again, err := svc.ApplyEffect(updated, domain.ItemEffect{Kind: domain.EffectCosmeticUnlock, CosmeticID: "hat"})
		require.NoError(t, err)
		assert.Len(t, again.Cosmetics, 1)
	})

	t.Run("account-scoped effect rejected", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ApplyEffect(newTestPet(t), domain.ItemEffect{Kind: domain.EffectCurrencyMultiplier, Multiplier: 2})
		assert.ErrorIs(t, err, ErrEffectNotPetScoped)
	})
}
