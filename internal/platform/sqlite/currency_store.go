package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/petdesk/petdesk/internal/store"
)

// CurrencyStore implements the store.CurrencyStore interface using a
// SQLite database as the storage backend. The balance is a single row
// mutated with guarded updates so it can never go negative.
type CurrencyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCurrencyStore creates a new SQLite implementation of the
// CurrencyStore interface.
func NewCurrencyStore(db store.DBTX, logger *slog.Logger) *CurrencyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CurrencyStore{
		db:     db,
		logger: logger.With(slog.String("component", "currency_store")),
	}
}

// Ensure CurrencyStore implements store.CurrencyStore interface
var _ store.CurrencyStore = (*CurrencyStore)(nil)

// WithTx implements store.CurrencyStore.WithTx
func (s *CurrencyStore) WithTx(tx *sql.Tx) store.CurrencyStore {
	return NewCurrencyStore(tx, s.logger)
}

// Balance implements store.CurrencyStore.Balance
func (s *CurrencyStore) Balance(ctx context.Context) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM currency WHERE id = 1`,
	).Scan(&balance)
	if err != nil {
		return 0, store.NewStoreError("currency", "balance", "scan failed", err)
	}

	return balance, nil
}

// Credit implements store.CurrencyStore.Credit
func (s *CurrencyStore) Credit(ctx context.Context, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, store.NewStoreError("currency", "credit", "amount must be positive", nil)
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE currency SET balance = balance + ?, updated_at = ? WHERE id = 1`,
		amount, toMillis(time.Now().UTC()))
	if err != nil {
		return 0, store.NewStoreError("currency", "credit", "update failed", err)
	}

	return s.Balance(ctx)
}

// Debit implements store.CurrencyStore.Debit
func (s *CurrencyStore) Debit(ctx context.Context, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, store.NewStoreError("currency", "debit", "amount must be positive", nil)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE currency SET balance = balance - ?, updated_at = ?
		 WHERE id = 1 AND balance >= ?`,
		amount, toMillis(time.Now().UTC()), amount)
	if err != nil {
		return 0, store.NewStoreError("currency", "debit", "update failed", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("currency", "debit", "rows affected", err)
	}
	if affected == 0 {
		return 0, store.ErrInsufficientBalance
	}

	return s.Balance(ctx)
}
