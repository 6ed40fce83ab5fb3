package domain

import (
	"sort"
	"time"
)

// CriterionKind discriminates the closed set of achievement criteria.
// New criteria are added as new variants, not special cases.
type CriterionKind string

// Possible criterion kinds.
const (
	// CriterionLevelReached unlocks when any pet reaches a level.
	CriterionLevelReached CriterionKind = "level_reached"

	// CriterionStreakReached unlocks when the daily task-completion
	// streak reaches a length.
	CriterionStreakReached CriterionKind = "streak_reached"

	// CriterionPurchaseCountReached unlocks after a number of shop
	// purchases.
	CriterionPurchaseCountReached CriterionKind = "purchase_count_reached"

	// CriterionEvolutionReached unlocks when any pet reaches an
	// evolution stage.
	CriterionEvolutionReached CriterionKind = "evolution_reached"

	// CriterionInteractionCountReached unlocks after a number of feed
	// or play interactions.
	CriterionInteractionCountReached CriterionKind = "interaction_count_reached"
)

// InteractionKind selects which interaction counter a criterion reads.
type InteractionKind string

// Interaction kinds.
const (
	InteractionFeed InteractionKind = "feed"
	InteractionPlay InteractionKind = "play"
)

// Criterion is the predicate of one achievement, evaluated uniformly
// by the tracker against observed progress.
type Criterion struct {
	Kind      CriterionKind `json:"kind"`
	Threshold int           `json:"threshold"`
	// Interaction selects the counter for interaction criteria;
	// ignored by other kinds.
	Interaction InteractionKind `json:"interaction,omitempty"`
}

// ItemGrant is one item stack granted by a reward.
type ItemGrant struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Reward is what unlocking an achievement grants. Fields compose: an
// achievement may grant experience, currency and items at once.
type Reward struct {
	XP       int         `json:"xp,omitempty"`
	Currency int64       `json:"currency,omitempty"`
	Items    []ItemGrant `json:"items,omitempty"`
}

// Achievement is an immutable catalog entry. The only mutable runtime
// state is its unlock timestamp, owned by the tracker.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Criterion   Criterion `json:"criterion"`
	Reward      Reward    `json:"reward"`
}

// UnlockedAchievement pairs an achievement ID with its unlock time.
type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// achievementCatalog holds the closed achievement set. Names and
// milestones follow the desktop application's achievement wall.
var achievementCatalog = map[string]Achievement{
	"level_5":   {ID: "level_5", Name: "First Steps", Description: "Reach level 5", Criterion: Criterion{Kind: CriterionLevelReached, Threshold: 5}, Reward: Reward{Currency: 20}},
	"level_10":  {ID: "level_10", Name: "Rising Star", Description: "Reach level 10", Criterion: Criterion{Kind: CriterionLevelReached, Threshold: 10}, Reward: Reward{Currency: 50, Items: []ItemGrant{{ItemID: "bread", Quantity: 2}, {ItemID: "medicine", Quantity: 1}}}},
	"level_25":  {ID: "level_25", Name: "Seasoned", Description: "Reach level 25", Criterion: Criterion{Kind: CriterionLevelReached, Threshold: 25}, Reward: Reward{Currency: 100, Items: []ItemGrant{{ItemID: "cake", Quantity: 1}}}},
	"level_50":  {ID: "level_50", Name: "Master", Description: "Reach level 50", Criterion: Criterion{Kind: CriterionLevelReached, Threshold: 50}, Reward: Reward{Currency: 250}},
	"level_100": {ID: "level_100", Name: "Legend", Description: "Reach level 100", Criterion: Criterion{Kind: CriterionLevelReached, Threshold: 100}, Reward: Reward{Currency: 1000}},

	"streak_7":   {ID: "streak_7", Name: "One Week Strong", Description: "Complete tasks 7 days in a row", Criterion: Criterion{Kind: CriterionStreakReached, Threshold: 7}, Reward: Reward{XP: 25, Items: []ItemGrant{{ItemID: "cake", Quantity: 1}}}},
	"streak_30":  {ID: "streak_30", Name: "One Month Strong", Description: "Complete tasks 30 days in a row", Criterion: Criterion{Kind: CriterionStreakReached, Threshold: 30}, Reward: Reward{XP: 100, Currency: 100}},
	"streak_100": {ID: "streak_100", Name: "Hundred Days", Description: "Complete tasks 100 days in a row", Criterion: Criterion{Kind: CriterionStreakReached, Threshold: 100}, Reward: Reward{XP: 500, Currency: 500}},

	"purchase_1":  {ID: "purchase_1", Name: "First Purchase", Description: "Buy something from the shop", Criterion: Criterion{Kind: CriterionPurchaseCountReached, Threshold: 1}, Reward: Reward{Currency: 10}},
	"purchase_10": {ID: "purchase_10", Name: "Regular Customer", Description: "Make 10 purchases", Criterion: Criterion{Kind: CriterionPurchaseCountReached, Threshold: 10}, Reward: Reward{Currency: 50}},
	"purchase_50": {ID: "purchase_50", Name: "Big Spender", Description: "Make 50 purchases", Criterion: Criterion{Kind: CriterionPurchaseCountReached, Threshold: 50}, Reward: Reward{Items: []ItemGrant{{ItemID: "lucky_charm", Quantity: 1}}}},

	"evolution_1": {ID: "evolution_1", Name: "Growing Up", Description: "Reach the juvenile stage", Criterion: Criterion{Kind: CriterionEvolutionReached, Threshold: 1}, Reward: Reward{Currency: 30}},
	"evolution_2": {ID: "evolution_2", Name: "Almost There", Description: "Reach the mature stage", Criterion: Criterion{Kind: CriterionEvolutionReached, Threshold: 2}, Reward: Reward{Currency: 80}},
	"evolution_3": {ID: "evolution_3", Name: "Final Form", Description: "Reach the final stage", Criterion: Criterion{Kind: CriterionEvolutionReached, Threshold: 3}, Reward: Reward{Currency: 200, Items: []ItemGrant{{ItemID: "vitamin", Quantity: 1}}}},

	"feed_100": {ID: "feed_100", Name: "Gourmet", Description: "Feed your pets 100 times", Criterion: Criterion{Kind: CriterionInteractionCountReached, Threshold: 100, Interaction: InteractionFeed}, Reward: Reward{XP: 50}},
	"play_100": {ID: "play_100", Name: "Playmate", Description: "Play with your pets 100 times", Criterion: Criterion{Kind: CriterionInteractionCountReached, Threshold: 100, Interaction: InteractionPlay}, Reward: Reward{XP: 50}},
}

// LookupAchievement returns the catalog entry for the given ID.
// Returns ErrUnknownAchievement if the ID is not in the catalog.
func LookupAchievement(id string) (Achievement, error) {
	a, ok := achievementCatalog[id]
	if !ok {
		return Achievement{}, ErrUnknownAchievement
	}
	return a, nil
}

// AchievementCatalog returns all achievements sorted by ascending ID.
// The tracker relies on this order for deterministic evaluation.
func AchievementCatalog() []Achievement {
	out := make([]Achievement, 0, len(achievementCatalog))
	for _, a := range achievementCatalog {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AchievementProgress accumulates the counters achievement criteria
// read. It is account-scoped and persisted with the unlock state.
type AchievementProgress struct {
	Purchases   int       `json:"purchases"`
	Feeds       int       `json:"feeds"`
	Plays       int       `json:"plays"`
	StreakDays  int       `json:"streak_days"`
	LastTaskDay string    `json:"last_task_day"` // YYYY-MM-DD of the last task-complete credit
	UpdatedAt   time.Time `json:"updated_at"`
}

// InteractionCount returns the counter for the given interaction kind.
func (p *AchievementProgress) InteractionCount(kind InteractionKind) int {
	switch kind {
	case InteractionFeed:
		return p.Feeds
	case InteractionPlay:
		return p.Plays
	}
	return 0
}
