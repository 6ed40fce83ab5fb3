package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/store"
)

// AchievementStore implements the store.AchievementStore interface
// using a SQLite database as the storage backend.
type AchievementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAchievementStore creates a new SQLite implementation of the
// AchievementStore interface.
func NewAchievementStore(db store.DBTX, logger *slog.Logger) *AchievementStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AchievementStore{
		db:     db,
		logger: logger.With(slog.String("component", "achievement_store")),
	}
}

// Ensure AchievementStore implements store.AchievementStore interface
var _ store.AchievementStore = (*AchievementStore)(nil)

// WithTx implements store.AchievementStore.WithTx
func (s *AchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return NewAchievementStore(tx, s.logger)
}

// ListUnlocked implements store.AchievementStore.ListUnlocked
func (s *AchievementStore) ListUnlocked(ctx context.Context) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT achievement_id, unlocked_at FROM achievement_unlocks`)
	if err != nil {
		return nil, store.NewStoreError("achievement", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at int64
		if err := rows.Scan(&id, &at); err != nil {
			return nil, store.NewStoreError("achievement", "list", "scan failed", err)
		}
		unlocked[id] = fromMillis(at)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("achievement", "list", "iteration failed", err)
	}

	return unlocked, nil
}

// SaveUnlock implements store.AchievementStore.SaveUnlock
func (s *AchievementStore) SaveUnlock(ctx context.Context, achievementID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO achievement_unlocks (achievement_id, unlocked_at) VALUES (?, ?)`,
		achievementID, toMillis(at))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return store.NewStoreError("achievement", "unlock", "insert failed", err)
	}

	return nil
}

// LoadProgress implements store.AchievementStore.LoadProgress
func (s *AchievementStore) LoadProgress(ctx context.Context) (*domain.AchievementProgress, error) {
	progress := &domain.AchievementProgress{}
	var updatedAt int64

	err := s.db.QueryRowContext(ctx, `
		SELECT purchases, feeds, plays, streak_days, last_task_day, updated_at
		FROM achievement_progress WHERE id = 1`,
	).Scan(&progress.Purchases, &progress.Feeds, &progress.Plays,
		&progress.StreakDays, &progress.LastTaskDay, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Fresh account: zero-valued progress.
		return &domain.AchievementProgress{}, nil
	}
	if err != nil {
		return nil, store.NewStoreError("achievement", "load_progress", "scan failed", err)
	}

	progress.UpdatedAt = fromMillis(updatedAt)
	return progress, nil
}

// SaveProgress implements store.AchievementStore.SaveProgress
func (s *AchievementStore) SaveProgress(ctx context.Context, progress *domain.AchievementProgress) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO achievement_progress (id, purchases, feeds, plays, streak_days, last_task_day, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			purchases = excluded.purchases,
			feeds = excluded.feeds,
			plays = excluded.plays,
			streak_days = excluded.streak_days,
			last_task_day = excluded.last_task_day,
			updated_at = excluded.updated_at`,
		progress.Purchases, progress.Feeds, progress.Plays,
		progress.StreakDays, progress.LastTaskDay, toMillis(progress.UpdatedAt))
	if err != nil {
		return store.NewStoreError("achievement", "save_progress", "upsert failed", err)
	}

	return nil
}

// isUniqueViolation reports whether the error is SQLite's unique
// constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
