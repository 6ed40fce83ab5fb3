package domain

import "time"

// Currency credit sources. Credits carry their origin so achievements
// and statistics can distinguish task rewards from other income.
const (
	CreditSourceTaskComplete = "task_complete"
	CreditSourcePomodoro     = "pomodoro"
	CreditSourceAchievement  = "achievement"
)

// Default credit amounts for the productivity hooks that feed the
// economy: completed tasks and completed pomodoro sessions.
const (
	TaskCompleteCredit int64 = 10
	PomodoroCredit     int64 = 5
)

// CurrencyBalance is the account-wide point balance. Currency is
// account-scoped while growth state is pet-scoped; the balance is
// mutated only through atomic credit/debit operations.
type CurrencyBalance struct {
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpeciesPrice returns the shop price for adopting a pet of the given
// species. The cat is the free starter pet.
func SpeciesPrice(s Species) (int64, error) {
	prices := map[Species]int64{
		SpeciesCat:     0,
		SpeciesDog:     200,
		SpeciesRabbit:  250,
		SpeciesPenguin: 300,
		SpeciesPanda:   500,
	}
	price, ok := prices[s]
	if !ok {
		return 0, ErrUnknownSpecies
	}
	return price, nil
}
