package api

import (
	"time"

	"github.com/petdesk/petdesk/internal/domain"
)

// Common request/response structures

// AdoptPetRequest defines the payload for adopting a pet.
type AdoptPetRequest struct {
	Species string `json:"species" validate:"required"`
	Name    string `json:"name"    validate:"required,min=1,max=50"`
}

// RenamePetRequest defines the payload for renaming a pet.
type RenamePetRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// InteractRequest defines the payload for feed, play and item use.
// ItemID is optional for feed and play; the default effect applies
// when it is empty.
type InteractRequest struct {
	ItemID string `json:"item_id,omitempty"`
}

// GrantExperienceRequest defines the payload for an experience grant.
type GrantExperienceRequest struct {
	Amount int    `json:"amount" validate:"required,gt=0"`
	Source string `json:"source,omitempty"`
}

// PurchaseRequest defines the payload for an item purchase.
type PurchaseRequest struct {
	ItemID   string `json:"item_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreditRequest defines the payload for earning credits.
type CreditRequest struct {
	Source string `json:"source" validate:"required,oneof=task_complete pomodoro"`
}

// ActivateCharmRequest defines the payload for arming a charm.
type ActivateCharmRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// VitalsResponse is the wire form of a pet's vitals.
type VitalsResponse struct {
	Hunger int `json:"hunger"`
	Mood   int `json:"mood"`
	Energy int `json:"energy"`
}

// PetResponse is the wire form of a pet, including the experience
// needed to reach the next level.
type PetResponse struct {
	ID             string         `json:"id"`
	Species        string         `json:"species"`
	Name           string         `json:"name"`
	Level          int            `json:"level"`
	Experience     int            `json:"experience"`
	NextLevelAt    int            `json:"next_level_at"`
	EvolutionStage int            `json:"evolution_stage"`
	Vitals         VitalsResponse `json:"vitals"`
	Cosmetics      []string       `json:"cosmetics,omitempty"`
	Active         bool           `json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewPetResponse converts a domain pet to its wire form. threshold is
// the experience needed to advance from the pet's current level.
func NewPetResponse(pet *domain.Pet, threshold int) PetResponse {
	return PetResponse{
		ID:             pet.ID.String(),
		Species:        string(pet.Species),
		Name:           pet.Name,
		Level:          pet.Level,
		Experience:     pet.Experience,
		NextLevelAt:    threshold,
		EvolutionStage: pet.EvolutionStage,
		Vitals: VitalsResponse{
			Hunger: pet.Vitals.Hunger,
			Mood:   pet.Vitals.Mood,
			Energy: pet.Vitals.Energy,
		},
		Cosmetics: pet.Cosmetics,
		Active:    pet.Active,
		CreatedAt: pet.CreatedAt,
		UpdatedAt: pet.UpdatedAt,
	}
}

// BalanceResponse reports the account balance.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// InventoryItemResponse is the wire form of one inventory stack.
type InventoryItemResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// AchievementResponse is the wire form of one achievement, with its
// unlock state.
type AchievementResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// ProgressResponse reports the account's achievement progress counters.
type ProgressResponse struct {
	Purchases  int `json:"purchases"`
	Feeds      int `json:"feeds"`
	Plays      int `json:"plays"`
	StreakDays int `json:"streak_days"`
}
