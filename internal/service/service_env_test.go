package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/domain/growth"
	"github.com/petdesk/petdesk/internal/events"
)

// testEnv wires the full service stack over in-memory fakes.
type testEnv struct {
	pets         *fakePetStore
	inventory    *fakeInventoryStore
	currency     *fakeCurrencyStore
	achievements *fakeAchievementStore
	emitter      *events.InMemoryEmitter
	captured     *capturingHandler

	growth    *GrowthService
	roster    *RosterService
	inventor  *InventoryService
	shop      *ShopService
	tracker   *AchievementTracker
	accountMu *sync.Mutex
}

// newTestEnv builds the service stack. When withTracker is true the
// achievement tracker is registered on the emitter, exactly as in the
// production wiring.
func newTestEnv(t *testing.T, withTracker bool) *testEnv {
	t.Helper()

	env := &testEnv{
		pets:         newFakePetStore(),
		inventory:    newFakeInventoryStore(),
		currency:     &fakeCurrencyStore{},
		achievements: newFakeAchievementStore(),
		emitter:      events.NewInMemoryEmitter(nil),
		captured:     &capturingHandler{},
		accountMu:    &sync.Mutex{},
	}
	tx := &fakeTransactor{
		pets:         env.pets,
		inventory:    env.inventory,
		currency:     env.currency,
		achievements: env.achievements,
	}

	var err error
	env.growth, err = NewGrowthService(env.pets, growth.NewDefaultParams(), env.emitter, nil)
	require.NoError(t, err)

	env.roster, err = NewRosterService(env.accountMu, env.pets, env.inventory, env.growth, tx, env.emitter, nil)
	require.NoError(t, err)

	env.inventor, err = NewInventoryService(env.inventory, nil)
	require.NoError(t, err)

	env.shop, err = NewShopService(env.accountMu, env.currency, env.inventory, env.roster, tx, env.emitter, nil)
	require.NoError(t, err)

	if withTracker {
		env.tracker, err = NewAchievementTracker(
			context.Background(),
			env.achievements, env.pets, env.currency, env.inventory,
			env.growth, tx, env.emitter, nil,
		)
		require.NoError(t, err)
		env.emitter.RegisterHandler(env.tracker)
	}

	env.emitter.RegisterHandler(env.captured)
	return env
}

// adopt is a test helper creating one pet on the roster.
func (env *testEnv) adopt(t *testing.T, name string) *domain.Pet {
	t.Helper()
	pet, err := env.roster.Adopt(context.Background(), domain.SpeciesCat, name)
	require.NoError(t, err)
	return pet
}
