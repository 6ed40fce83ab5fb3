package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Species identifies a pet's kind. The catalog is closed; adopting an
// unknown species is rejected.
type Species string

// Possible species values.
const (
	SpeciesCat     Species = "cat"
	SpeciesDog     Species = "dog"
	SpeciesRabbit  Species = "rabbit"
	SpeciesPenguin Species = "penguin"
	SpeciesPanda   Species = "panda"
)

// AllSpecies lists the species catalog in a stable order.
var AllSpecies = []Species{
	SpeciesCat, SpeciesDog, SpeciesRabbit, SpeciesPenguin, SpeciesPanda,
}

// Valid reports whether the species is part of the catalog.
func (s Species) Valid() bool {
	switch s {
	case SpeciesCat, SpeciesDog, SpeciesRabbit, SpeciesPenguin, SpeciesPanda:
		return true
	}
	return false
}

// VitalName identifies one of a pet's bounded vital attributes.
type VitalName string

// Vital attribute names.
const (
	VitalHunger VitalName = "hunger"
	VitalMood   VitalName = "mood"
	VitalEnergy VitalName = "energy"
)

// Vital bounds.
const (
	VitalMin = 0
	VitalMax = 100
)

// Vitals holds a pet's bounded attributes. Each value stays in
// [VitalMin, VitalMax] through every mutation.
type Vitals struct {
	Hunger int `json:"hunger"`
	Mood   int `json:"mood"`
	Energy int `json:"energy"`
}

// FullVitals returns vitals at their maximum values.
func FullVitals() Vitals {
	return Vitals{Hunger: VitalMax, Mood: VitalMax, Energy: VitalMax}
}

// InBounds reports whether every vital is within [VitalMin, VitalMax].
func (v Vitals) InBounds() bool {
	for _, n := range []int{v.Hunger, v.Mood, v.Energy} {
		if n < VitalMin || n > VitalMax {
			return false
		}
	}
	return true
}

// Depleted returns the names of vitals that have reached zero.
func (v Vitals) Depleted() []VitalName {
	var out []VitalName
	if v.Hunger == VitalMin {
		out = append(out, VitalHunger)
	}
	if v.Mood == VitalMin {
		out = append(out, VitalMood)
	}
	if v.Energy == VitalMin {
		out = append(out, VitalEnergy)
	}
	return out
}

// Pet-specific validation errors.
var (
	ErrPetIDEmpty          = errors.New("pet ID cannot be empty")
	ErrPetNameEmpty        = errors.New("pet name cannot be empty")
	ErrPetLevelInvalid     = errors.New("pet level must be at least 1")
	ErrPetExperienceNeg    = errors.New("pet experience cannot be negative")
	ErrPetStageInvalid     = errors.New("pet evolution stage cannot be negative")
	ErrPetVitalsOutOfRange = errors.New("pet vitals must be within [0,100]")
)

// Pet is one owned pet. Level, experience, evolution stage and vitals
// are mutated only by the growth engine; Active only by the roster.
type Pet struct {
	ID             uuid.UUID `json:"id"`
	Species        Species   `json:"species"`
	Name           string    `json:"name"`
	Level          int       `json:"level"`
	Experience     int       `json:"experience"`
	EvolutionStage int       `json:"evolution_stage"`
	Vitals         Vitals    `json:"vitals"`
	Cosmetics      []string  `json:"cosmetics,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewPet creates a level-1 pet of the given species with full vitals.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewPet(species Species, name string) (*Pet, error) {
	if !species.Valid() {
		return nil, ErrUnknownSpecies
	}

	now := time.Now().UTC()
	pet := &Pet{
		ID:             uuid.New(),
		Species:        species,
		Name:           name,
		Level:          1,
		Experience:     0,
		EvolutionStage: 0,
		Vitals:         FullVitals(),
		Active:         false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := pet.Validate(); err != nil {
		return nil, err
	}

	return pet, nil
}

// Validate checks if the Pet has valid data.
// Returns an error if any field fails validation.
func (p *Pet) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPetIDEmpty
	}

	if !p.Species.Valid() {
		return ErrUnknownSpecies
	}

	if p.Name == "" {
		return ErrPetNameEmpty
	}

	if p.Level < 1 {
		return ErrPetLevelInvalid
	}

	if p.Experience < 0 {
		return ErrPetExperienceNeg
	}

	if p.EvolutionStage < 0 {
		return ErrPetStageInvalid
	}

	if !p.Vitals.InBounds() {
		return ErrPetVitalsOutOfRange
	}

	return nil
}

// Rename updates the pet's name and its UpdatedAt timestamp.
func (p *Pet) Rename(name string) error {
	if name == "" {
		return ErrPetNameEmpty
	}
	p.Name = name
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// HasCosmetic reports whether the cosmetic has already been unlocked
// for this pet.
func (p *Pet) HasCosmetic(id string) bool {
	for _, c := range p.Cosmetics {
		if c == id {
			return true
		}
	}
	return false
}
