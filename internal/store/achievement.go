package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/petdesk/petdesk/internal/domain"
)

// AchievementStore defines the interface for achievement unlock state
// and the progress counters criteria read. The achievement catalog
// itself is compiled in; only unlock timestamps and counters persist.
type AchievementStore interface {
	// ListUnlocked returns the unlock time of every unlocked
	// achievement, keyed by achievement ID.
	ListUnlocked(ctx context.Context) (map[string]time.Time, error)

	// SaveUnlock records an achievement unlock. The unlock is a
	// one-way latch: returns ErrDuplicate if the achievement is
	// already unlocked, so re-delivered events cannot double-unlock.
	SaveUnlock(ctx context.Context, achievementID string, at time.Time) error

	// LoadProgress returns the account's progress counters. A fresh
	// account gets zero-valued progress, not ErrNotFound.
	LoadProgress(ctx context.Context) (*domain.AchievementProgress, error)

	// SaveProgress persists the account's progress counters.
	SaveProgress(ctx context.Context, progress *domain.AchievementProgress) error

	// WithTx returns a new AchievementStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) AchievementStore
}
