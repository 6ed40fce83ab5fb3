package store

import (
	"context"
	"database/sql"
)

// CurrencyStore defines the interface for the account currency
// balance. The balance is a single row mutated only through atomic
// credit/debit operations; it can never go negative.
type CurrencyStore interface {
	// Balance returns the current account balance.
	Balance(ctx context.Context) (int64, error)

	// Credit atomically adds amount to the balance and returns the
	// new balance. Amount must be positive.
	Credit(ctx context.Context, amount int64) (int64, error)

	// Debit atomically subtracts amount from the balance and returns
	// the new balance. Amount must be positive. Returns
	// ErrInsufficientBalance if the balance would go negative, with
	// the balance unchanged.
	Debit(ctx context.Context, amount int64) (int64, error)

	// WithTx returns a new CurrencyStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) CurrencyStore
}
