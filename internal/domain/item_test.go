package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupItem(t *testing.T) {
	t.Parallel()

	item, err := LookupItem("apple")
	require.NoError(t, err)
	assert.Equal(t, "Apple", item.Name)
	assert.Equal(t, int64(10), item.Price)
	assert.Equal(t, EffectStatDelta, item.Effect.Kind)
	assert.Equal(t, 15, item.Effect.Hunger)

	_, err = LookupItem("philosopher_stone")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestItemCatalogSortedAndComplete(t *testing.T) {
	t.Parallel()

	catalog := ItemCatalog()
	require.NotEmpty(t, catalog)

	ids := make([]string, len(catalog))
	for i, item := range catalog {
		ids[i] = item.ID
	}
	assert.True(t, sort.StringsAreSorted(ids), "catalog must be sorted by ID")

	// Every entry must be self-consistent and priced.
	for _, item := range catalog {
		assert.NotEmpty(t, item.Name, "item %s", item.ID)
		assert.Positive(t, item.Price, "item %s", item.ID)
		switch item.Effect.Kind {
		case EffectStatDelta:
			assert.True(t,
				item.Effect.Hunger != 0 || item.Effect.Mood != 0 || item.Effect.Energy != 0,
				"stat delta item %s must move a vital", item.ID)
		case EffectCurrencyMultiplier:
			assert.GreaterOrEqual(t, item.Effect.Multiplier, int64(2), "item %s", item.ID)
		case EffectCosmeticUnlock:
			assert.NotEmpty(t, item.Effect.CosmeticID, "item %s", item.ID)
		default:
			t.Fatalf("item %s has unknown effect kind %q", item.ID, item.Effect.Kind)
		}
	}
}

func TestInventoryItemValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    InventoryItem
		wantErr error
	}{
		{name: "valid", item: InventoryItem{ItemID: "apple", Quantity: 3}},
		{name: "empty ID", item: InventoryItem{Quantity: 1}, wantErr: ErrItemIDEmpty},
		{name: "zero quantity", item: InventoryItem{ItemID: "apple"}, wantErr: ErrItemQuantityNeg},
		{name: "unknown item", item: InventoryItem{ItemID: "nope", Quantity: 1}, wantErr: ErrUnknownItem},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.item.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
