package domain

import (
	"errors"
	"sort"
)

// EffectKind discriminates the closed set of item effect variants.
type EffectKind string

// Possible effect kinds.
const (
	// EffectStatDelta shifts a pet's vitals by a bounded amount.
	EffectStatDelta EffectKind = "stat_delta"

	// EffectCurrencyMultiplier multiplies the next currency credit.
	EffectCurrencyMultiplier EffectKind = "currency_multiplier"

	// EffectCosmeticUnlock unlocks a cosmetic on the receiving pet.
	EffectCosmeticUnlock EffectKind = "cosmetic_unlock"
)

// ItemEffect describes what consuming an item does. Effects are data:
// the inventory hands them to the growth engine or the shop, and never
// applies them itself.
type ItemEffect struct {
	Kind EffectKind `json:"kind"`

	// Stat delta fields, meaningful when Kind == EffectStatDelta.
	// Negative values are allowed (toys cost energy).
	Hunger int `json:"hunger,omitempty"`
	Mood   int `json:"mood,omitempty"`
	Energy int `json:"energy,omitempty"`

	// Multiplier applied to the next credit, when Kind ==
	// EffectCurrencyMultiplier. Must be >= 2 to be worth an item slot.
	Multiplier int64 `json:"multiplier,omitempty"`

	// CosmeticID names the unlocked cosmetic, when Kind ==
	// EffectCosmeticUnlock.
	CosmeticID string `json:"cosmetic_id,omitempty"`
}

// ItemCategory groups catalog items for presentation.
type ItemCategory string

// Item categories.
const (
	CategoryFood      ItemCategory = "food"
	CategoryToy       ItemCategory = "toy"
	CategoryRecovery  ItemCategory = "recovery"
	CategoryEquipment ItemCategory = "equipment"
	CategoryCharm     ItemCategory = "charm"
)

// CatalogItem is an immutable shop catalog entry.
type CatalogItem struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category ItemCategory `json:"category"`
	Price    int64        `json:"price"`
	Effect   ItemEffect   `json:"effect"`
}

// itemCatalog is the closed catalog of purchasable items.
var itemCatalog = map[string]CatalogItem{
	"apple":        {ID: "apple", Name: "Apple", Category: CategoryFood, Price: 10, Effect: ItemEffect{Kind: EffectStatDelta, Hunger: 15}},
	"bread":        {ID: "bread", Name: "Bread", Category: CategoryFood, Price: 15, Effect: ItemEffect{Kind: EffectStatDelta, Hunger: 20}},
	"meat":         {ID: "meat", Name: "Meat", Category: CategoryFood, Price: 25, Effect: ItemEffect{Kind: EffectStatDelta, Hunger: 30}},
	"cake":         {ID: "cake", Name: "Cake", Category: CategoryFood, Price: 30, Effect: ItemEffect{Kind: EffectStatDelta, Hunger: 25, Mood: 10}},
	"ball":         {ID: "ball", Name: "Ball", Category: CategoryToy, Price: 20, Effect: ItemEffect{Kind: EffectStatDelta, Mood: 15, Energy: -5}},
	"yarn":         {ID: "yarn", Name: "Yarn Ball", Category: CategoryToy, Price: 25, Effect: ItemEffect{Kind: EffectStatDelta, Mood: 20, Energy: -8}},
	"stick":        {ID: "stick", Name: "Stick", Category: CategoryToy, Price: 22, Effect: ItemEffect{Kind: EffectStatDelta, Mood: 18, Energy: -10}},
	"medicine":     {ID: "medicine", Name: "Medicine", Category: CategoryRecovery, Price: 35, Effect: ItemEffect{Kind: EffectStatDelta, Energy: 30}},
	"vitamin":      {ID: "vitamin", Name: "Vitamin", Category: CategoryRecovery, Price: 40, Effect: ItemEffect{Kind: EffectStatDelta, Energy: 20, Mood: 10}},
	"energy_drink": {ID: "energy_drink", Name: "Energy Drink", Category: CategoryRecovery, Price: 30, Effect: ItemEffect{Kind: EffectStatDelta, Energy: 40}},
	"sleep_pillow": {ID: "sleep_pillow", Name: "Sleep Pillow", Category: CategoryRecovery, Price: 50, Effect: ItemEffect{Kind: EffectStatDelta, Energy: 50}},
	"collar":       {ID: "collar", Name: "Collar", Category: CategoryEquipment, Price: 100, Effect: ItemEffect{Kind: EffectCosmeticUnlock, CosmeticID: "collar"}},
	"hat":          {ID: "hat", Name: "Hat", Category: CategoryEquipment, Price: 120, Effect: ItemEffect{Kind: EffectCosmeticUnlock, CosmeticID: "hat"}},
	"scarf":        {ID: "scarf", Name: "Scarf", Category: CategoryEquipment, Price: 150, Effect: ItemEffect{Kind: EffectCosmeticUnlock, CosmeticID: "scarf"}},
	"lucky_charm":  {ID: "lucky_charm", Name: "Lucky Charm", Category: CategoryCharm, Price: 200, Effect: ItemEffect{Kind: EffectCurrencyMultiplier, Multiplier: 2}},
}

// LookupItem returns the catalog entry for the given item ID.
// Returns ErrUnknownItem if the ID is not in the catalog.
func LookupItem(id string) (CatalogItem, error) {
	item, ok := itemCatalog[id]
	if !ok {
		return CatalogItem{}, ErrUnknownItem
	}
	return item, nil
}

// ItemCatalog returns all catalog entries sorted by ID.
func ItemCatalog() []CatalogItem {
	out := make([]CatalogItem, 0, len(itemCatalog))
	for _, id := range sortedItemIDs() {
		out = append(out, itemCatalog[id])
	}
	return out
}

func sortedItemIDs() []string {
	ids := make([]string, 0, len(itemCatalog))
	for id := range itemCatalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// InventoryItem-specific validation errors.
var (
	ErrItemIDEmpty     = errors.New("inventory item ID cannot be empty")
	ErrItemQuantityNeg = errors.New("inventory item quantity must be positive")
)

// InventoryItem is one stack of an owned item. Inventory is
// account-scoped; a stack whose quantity reaches zero is removed from
// the store rather than kept.
type InventoryItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Validate checks if the InventoryItem has valid data.
func (i *InventoryItem) Validate() error {
	if i.ItemID == "" {
		return ErrItemIDEmpty
	}
	if i.Quantity <= 0 {
		return ErrItemQuantityNeg
	}
	if _, err := LookupItem(i.ItemID); err != nil {
		return err
	}
	return nil
}
