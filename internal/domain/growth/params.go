// Package growth implements the pure, deterministic math of pet
// growth: level thresholds, experience application, evolution
// checkpoints, vital decay and diminishing-returns vital boosts.
// It holds no state and performs no I/O, so callers can recompute
// every value exactly.
package growth

import "github.com/petdesk/petdesk/internal/domain"

// Params defines all configurable parameters for the growth algorithm.
type Params struct {
	// BaseThreshold is the experience needed to go from level 1 to 2.
	BaseThreshold float64

	// GrowthFactor scales each successive level threshold. Must be
	// > 1 so thresholds are strictly increasing.
	GrowthFactor float64

	// DecayPerHour is how many points each vital loses per elapsed
	// real-time hour while the pet is active.
	DecayPerHour float64

	// EvolutionLevels maps evolution stage -> level checkpoint at
	// which the stage is reached. Stage 0 is from birth.
	EvolutionLevels map[int]int

	// Default interaction effects, used when feeding or playing
	// without an item.
	DefaultFeedEffect domain.ItemEffect
	DefaultPlayEffect domain.ItemEffect

	// PlayExperience is granted for each play interaction.
	PlayExperience int
}

// NewDefaultParams creates a Params instance with the standard tuning.
func NewDefaultParams() *Params {
	return &Params{
		BaseThreshold: 50,
		GrowthFactor:  1.15,
		DecayPerHour:  5,

		EvolutionLevels: map[int]int{
			1: 10,
			2: 25,
			3: 50,
		},

		DefaultFeedEffect: domain.ItemEffect{
			Kind:   domain.EffectStatDelta,
			Hunger: 20,
			Mood:   5,
		},
		DefaultPlayEffect: domain.ItemEffect{
			Kind:   domain.EffectStatDelta,
			Mood:   15,
			Energy: -10,
		},
		PlayExperience: 2,
	}
}

// MaxStage returns the highest evolution stage the params define.
func (p *Params) MaxStage() int {
	max := 0
	for stage := range p.EvolutionLevels {
		if stage > max {
			max = stage
		}
	}
	return max
}
