package growth

import (
	"math"
	"time"

	"github.com/petdesk/petdesk/internal/domain"
)

// roundingEpsilon compensates for Pow landing a hair below an exact
// decimal product (50*1.15 evaluates just under 57.5, which would
// round down) so thresholds round on the intended side.
const roundingEpsilon = 1e-9

// Threshold returns the experience required to advance from the given
// level to the next one: round(base * factor^(level-1)). The result is
// deterministic so tests can recompute it exactly.
func Threshold(level int, params *Params) int {
	if level < 1 {
		level = 1
	}
	return int(math.Round(params.BaseThreshold*math.Pow(params.GrowthFactor, float64(level-1)) + roundingEpsilon))
}

// LevelStep records one level-up produced by an experience grant.
type LevelStep struct {
	From int
	To   int
}

// applyExperience adds amount to the pet's per-level experience band
// and resolves all threshold crossings sequentially. A grant spanning
// several thresholds produces one step per level; no level is ever
// skipped. Returns the new level, the remaining experience and the
// steps taken.
func applyExperience(level, experience, amount int, params *Params) (int, int, []LevelStep) {
	experience += amount

	var steps []LevelStep
	for experience >= Threshold(level, params) {
		experience -= Threshold(level, params)
		steps = append(steps, LevelStep{From: level, To: level + 1})
		level++
	}
	return level, experience, steps
}

// StageForLevel returns the evolution stage a pet of the given level
// should be at. Stages are reached at fixed level checkpoints and the
// result is monotone in level.
func StageForLevel(level int, params *Params) int {
	stage := 0
	for s, checkpoint := range params.EvolutionLevels {
		if level >= checkpoint && s > stage {
			stage = s
		}
	}
	return stage
}

// decaySteps converts elapsed time into whole decay points and the
// duration those points account for. The unconsumed remainder must be
// carried forward by the caller so sub-hour ticks still decay over
// time instead of rounding to zero forever.
func decaySteps(elapsed time.Duration, params *Params) (points int, consumed time.Duration) {
	if elapsed <= 0 || params.DecayPerHour <= 0 {
		return 0, 0
	}
	points = int(elapsed.Hours() * params.DecayPerHour)
	if points == 0 {
		return 0, 0
	}
	perPoint := time.Duration(float64(time.Hour) / params.DecayPerHour)
	return points, time.Duration(points) * perPoint
}

// clampVital bounds a vital value to [domain.VitalMin, domain.VitalMax].
func clampVital(v int) int {
	if v < domain.VitalMin {
		return domain.VitalMin
	}
	if v > domain.VitalMax {
		return domain.VitalMax
	}
	return v
}

// boostVital applies a positive delta with diminishing returns: the
// applied amount shrinks proportionally to how full the vital already
// is, but never below one point unless the vital is at the cap.
// Negative deltas apply in full, clamped at zero.
func boostVital(current, delta int) int {
	if delta <= 0 {
		return clampVital(current + delta)
	}
	if current >= domain.VitalMax {
		return domain.VitalMax
	}
	applied := int(math.Round(float64(delta) * float64(domain.VitalMax-current) / float64(domain.VitalMax)))
	if applied < 1 {
		applied = 1
	}
	return clampVital(current + applied)
}

// applyStatDelta applies an item or interaction effect to vitals,
// boosting positive components with diminishing returns and clamping
// everything to the vital bounds.
func applyStatDelta(v domain.Vitals, effect domain.ItemEffect) domain.Vitals {
	v.Hunger = boostVital(v.Hunger, effect.Hunger)
	v.Mood = boostVital(v.Mood, effect.Mood)
	v.Energy = boostVital(v.Energy, effect.Energy)
	return v
}

// decayVitals subtracts the given number of points from every vital,
// clamping at zero.
func decayVitals(v domain.Vitals, points int) domain.Vitals {
	v.Hunger = clampVital(v.Hunger - points)
	v.Mood = clampVital(v.Mood - points)
	v.Energy = clampVital(v.Energy - points)
	return v
}
