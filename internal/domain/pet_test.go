package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPet(t *testing.T) {
	t.Parallel()

	pet, err := NewPet(SpeciesCat, "Mochi")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, pet.ID)
	assert.Equal(t, SpeciesCat, pet.Species)
	assert.Equal(t, "Mochi", pet.Name)
	assert.Equal(t, 1, pet.Level)
	assert.Equal(t, 0, pet.Experience)
	assert.Equal(t, 0, pet.EvolutionStage)
	assert.Equal(t, FullVitals(), pet.Vitals)
	assert.False(t, pet.Active, "a new pet must not be active until explicitly activated")
	assert.False(t, pet.CreatedAt.IsZero())
}

func TestNewPetRejectsUnknownSpecies(t *testing.T) {
	t.Parallel()

	_, err := NewPet(Species("dragon"), "Smaug")
	assert.ErrorIs(t, err, ErrUnknownSpecies)
}

func TestNewPetRejectsEmptyName(t *testing.T) {
	t.Parallel()

	_, err := NewPet(SpeciesDog, "")
	assert.ErrorIs(t, err, ErrPetNameEmpty)
}

func TestPetValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Pet {
		pet, err := NewPet(SpeciesRabbit, "Clover")
		require.NoError(t, err)
		return pet
	}

	tests := []struct {
		name    string
		mutate  func(*Pet)
		wantErr error
	}{
		{
			name:    "valid pet",
			mutate:  func(p *Pet) {},
			wantErr: nil,
		},
		{
			name:    "nil ID",
			mutate:  func(p *Pet) { p.ID = uuid.Nil },
			wantErr: ErrPetIDEmpty,
		},
		{
			name:    "level below one",
			mutate:  func(p *Pet) { p.Level = 0 },
			wantErr: ErrPetLevelInvalid,
		},
		{
			name:    "negative experience",
			mutate:  func(p *Pet) { p.Experience = -1 },
			wantErr: ErrPetExperienceNeg,
		},
		{
			name:    "negative evolution stage",
			mutate:  func(p *Pet) { p.EvolutionStage = -1 },
			wantErr: ErrPetStageInvalid,
		},
		{
			name:    "vital above bound",
			mutate:  func(p *Pet) { p.Vitals.Hunger = 101 },
			wantErr: ErrPetVitalsOutOfRange,
		},
		{
			name:    "vital below bound",
			mutate:  func(p *Pet) { p.Vitals.Energy = -5 },
			wantErr: ErrPetVitalsOutOfRange,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pet := valid()
			tc.mutate(pet)
			err := pet.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestVitalsDepleted(t *testing.T) {
	t.Parallel()

	v := Vitals{Hunger: 0, Mood: 50, Energy: 0}
	assert.Equal(t, []VitalName{VitalHunger, VitalEnergy}, v.Depleted())

	assert.Empty(t, FullVitals().Depleted())
}

func TestPetRename(t *testing.T) {
	t.Parallel()

	pet, err := NewPet(SpeciesPanda, "Bao")
	require.NoError(t, err)

	require.NoError(t, pet.Rename("Bao Jr."))
	assert.Equal(t, "Bao Jr.", pet.Name)

	assert.ErrorIs(t, pet.Rename(""), ErrPetNameEmpty)
}

func TestHasCosmetic(t *testing.T) {
	t.Parallel()

	pet, err := NewPet(SpeciesPenguin, "Pip")
	require.NoError(t, err)

	assert.False(t, pet.HasCosmetic("hat"))
	pet.Cosmetics = append(pet.Cosmetics, "hat")
	assert.True(t, pet.HasCosmetic("hat"))
}
