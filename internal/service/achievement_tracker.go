package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/events"
	"github.com/petdesk/petdesk/internal/store"
)

// taskDayFormat is the calendar-day key used for streak tracking.
const taskDayFormat = "2006-01-02"

// AchievementTracker observes the event stream and unlocks
// achievements when their criteria are met. Unlocks are one-way
// latches: an achievement fires exactly once, and its reward is
// applied exactly once, even when events are re-delivered.
//
// The tracker is itself an event handler registered on the emitter it
// emits to, and reward experience feeds back through the growth
// service, so HandleEvent can re-enter synchronously on the same
// goroutine. The tracker therefore latches unlocks in memory before
// applying rewards and never holds its mutex across persistence,
// reward application or emission.
type AchievementTracker struct {
	achievements store.AchievementStore
	pets         store.PetStore
	currency     store.CurrencyStore
	inventory    store.InventoryStore
	growth       *GrowthService
	tx           store.Transactor
	emitter      events.Emitter
	logger       *slog.Logger

	mu       sync.Mutex
	unlocked map[string]time.Time
	progress *domain.AchievementProgress
}

// NewAchievementTracker creates the tracker and loads the persisted
// unlock state and progress counters.
func NewAchievementTracker(
	ctx context.Context,
	achievements store.AchievementStore,
	pets store.PetStore,
	currency store.CurrencyStore,
	inventory store.InventoryStore,
	growth *GrowthService,
	tx store.Transactor,
	emitter events.Emitter,
	logger *slog.Logger,
) (*AchievementTracker, error) {
	if achievements == nil {
		return nil, domain.NewValidationError("achievements", "cannot be nil", domain.ErrValidation)
	}
	if pets == nil {
		return nil, domain.NewValidationError("pets", "cannot be nil", domain.ErrValidation)
	}
	if currency == nil {
		return nil, domain.NewValidationError("currency", "cannot be nil", domain.ErrValidation)
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

	unlocked, err := achievements.ListUnlocked(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := achievements.LoadProgress(ctx)
	if err != nil {
		return nil, err
	}

	return &AchievementTracker{
		achievements: achievements,
		pets:         pets,
		currency:     currency,
		inventory:    inventory,
		growth:       growth,
		tx:           tx,
		emitter:      emitter,
		logger:       logger.With(slog.String("component", "achievement_tracker")),
		unlocked:     unlocked,
		progress:     progress,
	}, nil
}

// HandleEvent implements events.Handler. Each event kind maps to at
// most one criterion family; events the tracker does not understand
// are ignored without error.
func (t *AchievementTracker) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Kind {
	case events.KindLevelUp:
		var payload events.LevelUpPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return err
		}
		return t.evaluate(ctx, domain.CriterionLevelReached, "", payload.To)

	case events.KindEvolved:
		var payload events.EvolvedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return err
		}
		return t.evaluate(ctx, domain.CriterionEvolutionReached, "", payload.ToStage)

	case events.KindPurchased:
		count, err := t.bumpPurchases(ctx)
		if err != nil {
			return err
		}
		return t.evaluate(ctx, domain.CriterionPurchaseCountReached, "", count)

	case events.KindVitalsChanged:
		var payload events.VitalsChangedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return err
		}
		var kind domain.InteractionKind
		switch payload.Cause {
		case "feed":
			kind = domain.InteractionFeed
		case "play":
			kind = domain.InteractionPlay
		default:
			return nil
		}
		count, err := t.bumpInteraction(ctx, kind)
		if err != nil {
			return err
		}
		return t.evaluate(ctx, domain.CriterionInteractionCountReached, kind, count)

	case events.KindCreditsEarned:
		var payload events.CreditsEarnedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return err
		}
		if payload.Source != domain.CreditSourceTaskComplete {
			return nil
		}
		streak, err := t.bumpStreak(ctx, event.At)
		if err != nil {
			return err
		}
		return t.evaluate(ctx, domain.CriterionStreakReached, "", streak)
	}

	return nil
}

// bumpPurchases increments the purchase counter and persists it.
func (t *AchievementTracker) bumpPurchases(ctx context.Context) (int, error) {
	t.mu.Lock()
	t.progress.Purchases++
	t.progress.UpdatedAt = time.Now().UTC()
	snapshot := *t.progress
	t.mu.Unlock()

	return snapshot.Purchases, t.achievements.SaveProgress(ctx, &snapshot)
}

// bumpInteraction increments a feed or play counter and persists it.
func (t *AchievementTracker) bumpInteraction(ctx context.Context, kind domain.InteractionKind) (int, error) {
	t.mu.Lock()
	switch kind {
	case domain.InteractionFeed:
		t.progress.Feeds++
	case domain.InteractionPlay:
		t.progress.Plays++
	}
	t.progress.UpdatedAt = time.Now().UTC()
	snapshot := *t.progress
	t.mu.Unlock()

	return snapshot.InteractionCount(kind), t.achievements.SaveProgress(ctx, &snapshot)
}

// bumpStreak advances the daily task streak for a task completed at
// the given instant. Same-day completions leave the streak untouched;
// a completion on the day after the last one extends it; anything else
// resets it to one.
func (t *AchievementTracker) bumpStreak(ctx context.Context, at time.Time) (int, error) {
	day := at.UTC().Format(taskDayFormat)

	t.mu.Lock()
	switch t.progress.LastTaskDay {
	case day:
		// Already counted today.
	case previousDay(day):
		t.progress.StreakDays++
		t.progress.LastTaskDay = day
	default:
		t.progress.StreakDays = 1
		t.progress.LastTaskDay = day
	}
	t.progress.UpdatedAt = time.Now().UTC()
	snapshot := *t.progress
	t.mu.Unlock()

	return snapshot.StreakDays, t.achievements.SaveProgress(ctx, &snapshot)
}

// previousDay returns the calendar day before the given day key.
func previousDay(day string) string {
	parsed, err := time.Parse(taskDayFormat, day)
	if err != nil {
		return ""
	}
	return parsed.AddDate(0, 0, -1).Format(taskDayFormat)
}

// evaluate unlocks every still-locked achievement of the given
// criterion family whose threshold the observed value now meets.
// Candidates are latched in memory under the mutex first; persistence,
// rewards and emission happen after it is released.
func (t *AchievementTracker) evaluate(ctx context.Context, kind domain.CriterionKind, interaction domain.InteractionKind, value int) error {
	now := time.Now().UTC()

	t.mu.Lock()
	var fired []domain.Achievement
	for _, a := range domain.AchievementCatalog() {
		if a.Criterion.Kind != kind {
			continue
		}
		if kind == domain.CriterionInteractionCountReached && a.Criterion.Interaction != interaction {
			continue
		}
		if _, done := t.unlocked[a.ID]; done {
			continue
		}
		if value < a.Criterion.Threshold {
			continue
		}
		t.unlocked[a.ID] = now
		fired = append(fired, a)
	}
	t.mu.Unlock()

	var firstErr error
	for _, a := range fired {
		if err := t.unlock(ctx, a, now); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// unlock persists one unlock and applies its reward. A duplicate from
// the store means another delivery already latched it; the reward is
// then skipped.
func (t *AchievementTracker) unlock(ctx context.Context, a domain.Achievement, at time.Time) error {
	if err := t.achievements.SaveUnlock(ctx, a.ID, at); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil
		}
		return err
	}

	t.logger.Info("achievement unlocked", "achievement_id", a.ID, "name", a.Name)

	if err := t.applyReward(ctx, a); err != nil {
		return err
	}

	event, err := events.New(events.KindAchievementUnlocked, uuid.Nil, events.AchievementUnlockedPayload{
		AchievementID: a.ID,
	})
	if err != nil {
		return err
	}
	return t.emitter.Emit(ctx, event)
}

// applyReward grants the achievement's reward bundle. Currency and
// items commit in one transaction; experience goes to the active pet
// through the growth service and is skipped when no pet is active.
func (t *AchievementTracker) applyReward(ctx context.Context, a domain.Achievement) error {
	reward := a.Reward

	if reward.Currency > 0 || len(reward.Items) > 0 {
		var balance int64
		err := t.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			if reward.Currency > 0 {
				var txErr error
				balance, txErr = t.currency.WithTx(tx).Credit(ctx, reward.Currency)
				if txErr != nil {
					return txErr
				}
			}
			for _, grant := range reward.Items {
				if _, txErr := t.inventory.WithTx(tx).AddQuantity(ctx, grant.ItemID, grant.Quantity); txErr != nil {
					return txErr
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		if reward.Currency > 0 {
			event, err := events.New(events.KindCreditsEarned, uuid.Nil, events.CreditsEarnedPayload{
				Amount:  reward.Currency,
				Source:  domain.CreditSourceAchievement,
				Balance: balance,
			})
			if err != nil {
				return err
			}
			if err := t.emitter.Emit(ctx, event); err != nil {
				return err
			}
		}
	}

	if reward.XP > 0 {
		pet, err := t.activePet(ctx)
		if err != nil {
			return err
		}
		if pet == nil {
			t.logger.Debug("no active pet, experience reward skipped", "achievement_id", a.ID)
			return nil
		}
		if _, err := t.growth.GrantExperience(ctx, pet.ID, reward.XP, domain.CreditSourceAchievement); err != nil {
			return err
		}
	}

	return nil
}

func (t *AchievementTracker) activePet(ctx context.Context) (*domain.Pet, error) {
	roster, err := t.pets.List(ctx)
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

// IsUnlocked reports whether the achievement has been unlocked.
func (t *AchievementTracker) IsUnlocked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.unlocked[id]
	return ok
}

// ListUnlocked returns unlocked achievements ordered by unlock time,
// earliest first.
func (t *AchievementTracker) ListUnlocked() []domain.UnlockedAchievement {
	t.mu.Lock()
	out := make([]domain.UnlockedAchievement, 0, len(t.unlocked))
	for id, at := range t.unlocked {
		out = append(out, domain.UnlockedAchievement{AchievementID: id, UnlockedAt: at})
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UnlockedAt.Equal(out[j].UnlockedAt) {
			return out[i].AchievementID < out[j].AchievementID
		}
		return out[i].UnlockedAt.Before(out[j].UnlockedAt)
	})
	return out
}

// ListAchievements returns the full achievement catalog.
func (t *AchievementTracker) ListAchievements() []domain.Achievement {
	return domain.AchievementCatalog()
}

// Progress returns a snapshot of the account's progress counters.
func (t *AchievementTracker) Progress() domain.AchievementProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.progress
}
