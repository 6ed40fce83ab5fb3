// Package events defines the engine's event stream: typed
// notifications emitted by the growth, roster and shop services and
// consumed by the achievement tracker and any registered UI
// subscriber.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind identifies an event category. Achievement criteria subscribe
// to categories, so each kind maps to at most one criterion family.
type Kind string

// Event kinds.
const (
	KindLevelUp             Kind = "level_up"
	KindEvolved             Kind = "evolved"
	KindNeglected           Kind = "neglected"
	KindVitalsChanged       Kind = "vitals_changed"
	KindPurchased           Kind = "purchased"
	KindCreditsEarned       Kind = "credits_earned"
	KindAchievementUnlocked Kind = "achievement_unlocked"
	KindPetAdopted          Kind = "pet_adopted"
	KindPetReleased         Kind = "pet_released"
	KindActivePetChanged    Kind = "active_pet_changed"
)

// Event is one engine notification. Seq is assigned by the emitter and
// is strictly increasing in emission order, so consumers can detect
// stale or re-delivered events.
type Event struct {
	ID      uuid.UUID       `json:"id"`
	Seq     uint64          `json:"seq"`
	Kind    Kind            `json:"kind"`
	PetID   uuid.UUID       `json:"pet_id,omitempty"` // uuid.Nil for account-scoped events
	Payload json.RawMessage `json:"payload"`
	At      time.Time       `json:"at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// New creates an event of the given kind with a serialized payload.
func New(kind Kind, petID uuid.UUID, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:      uuid.New(),
		Kind:    kind,
		PetID:   petID,
		Payload: payloadBytes,
		At:      time.Now().UTC(),
	}, nil
}

// LevelUpPayload reports a single level crossing.
type LevelUpPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// EvolvedPayload reports an evolution stage transition.
type EvolvedPayload struct {
	FromStage int `json:"from_stage"`
	ToStage   int `json:"to_stage"`
}

// NeglectedPayload lists the vitals that reached zero.
type NeglectedPayload struct {
	Vitals []string `json:"vitals"`
}

// VitalsChangedPayload reports the pet's vitals after a change.
type VitalsChangedPayload struct {
	Cause  string `json:"cause"` // "tick", "feed", "play", "item"
	Hunger int    `json:"hunger"`
	Mood   int    `json:"mood"`
	Energy int    `json:"energy"`
}

// PurchasedPayload reports a completed shop purchase.
type PurchasedPayload struct {
	ItemID     string `json:"item_id"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
}

// CreditsEarnedPayload reports a currency credit.
type CreditsEarnedPayload struct {
	Amount  int64  `json:"amount"`
	Source  string `json:"source"`
	Balance int64  `json:"balance"`
}

// AchievementUnlockedPayload reports a criterion latch firing.
type AchievementUnlockedPayload struct {
	AchievementID string `json:"achievement_id"`
}

// PetAdoptedPayload reports a new roster member.
type PetAdoptedPayload struct {
	Species string `json:"species"`
	Name    string `json:"name"`
}

// PetReleasedPayload reports a pet leaving the roster.
type PetReleasedPayload struct {
	Species string `json:"species"`
}

// ActivePetChangedPayload reports the roster's new active pet.
type ActivePetChangedPayload struct {
	PreviousPetID string `json:"previous_pet_id,omitempty"`
}

// Handler defines an interface for components that can handle events.
// Handlers are optional subscribers: the engine never assumes one
// exists and never blocks when none is registered.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// Emitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	// Returns the first handler error encountered, if any.
	Emit(ctx context.Context, event *Event) error
}
