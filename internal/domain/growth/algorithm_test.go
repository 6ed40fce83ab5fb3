package growth

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petdesk/petdesk/internal/domain"
)

func TestThreshold(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	tests := []struct {
		level int
		want  int
	}{
		{level: 1, want: 50},
		{level: 2, want: 58}, // round(50 * 1.15)
		{level: 3, want: 66}, // round(50 * 1.15^2)
		{level: 10, want: 176},
		{level: 0, want: 50}, // clamped to level 1
	}

	for _, tc := range tests {
		got := Threshold(tc.level, params)
		assert.Equal(t, tc.want, got, "threshold for level %d", tc.level)

		// The published formula must hold exactly.
		if tc.level >= 1 {
			want := int(math.Round(params.BaseThreshold*math.Pow(params.GrowthFactor, float64(tc.level-1)) + roundingEpsilon))
			assert.Equal(t, want, got)
		}
	}
}

func TestThresholdRoundsHalfUp(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	// 50 * 1.15 is exactly 57.5 in decimal, but Pow returns a value
	// just below it; the threshold must still round up to 58, and a
	// grant of Threshold(1)+Threshold(2) must land cleanly on level 3.
	assert.Equal(t, 58, Threshold(2, params))

	level, experience, steps := applyExperience(1, 0, 108, params)
	assert.Equal(t, 3, level)
	assert.Equal(t, 0, experience)
	assert.Len(t, steps, 2)
}

func TestThresholdStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	for level := 1; level < 100; level++ {
		assert.Less(t, Threshold(level, params), Threshold(level+1, params))
	}
}

func TestApplyExperienceExactThreshold(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	// Granting exactly the threshold advances one level and leaves
	// zero experience in the new band.
	level, experience, steps := applyExperience(1, 0, Threshold(1, params), params)
	assert.Equal(t, 2, level)
	assert.Equal(t, 0, experience)
	require.Len(t, steps, 1)
	assert.Equal(t, LevelStep{From: 1, To: 2}, steps[0])
}

func TestApplyExperienceMultipleLevels(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	// A single large grant must resolve level by level with no skips.
	amount := Threshold(1, params) + Threshold(2, params) + Threshold(3, params) + 7
	level, experience, steps := applyExperience(1, 0, amount, params)

	assert.Equal(t, 4, level)
	assert.Equal(t, 7, experience)
	require.Len(t, steps, 3)
	assert.Equal(t, []LevelStep{{From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 4}}, steps)
}

func TestApplyExperienceSingleGrantEqualsSequential(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	const total = 1000

	// One big grant and many small grants must land on the same state.
	bigLevel, bigExp, _ := applyExperience(1, 0, total, params)

	level, experience := 1, 0
	for i := 0; i < total; i++ {
		level, experience, _ = applyExperience(level, experience, 1, params)
	}

	assert.Equal(t, bigLevel, level)
	assert.Equal(t, bigExp, experience)
}

func TestStageForLevel(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	tests := []struct {
		level int
		want  int
	}{
		{level: 1, want: 0},
		{level: 9, want: 0},
		{level: 10, want: 1},
		{level: 24, want: 1},
		{level: 25, want: 2},
		{level: 49, want: 2},
		{level: 50, want: 3},
		{level: 200, want: 3},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, StageForLevel(tc.level, params), "level %d", tc.level)
	}
}

func TestDecaySteps(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams() // 5 points per hour, 12 minutes per point

	tests := []struct {
		name         string
		elapsed      time.Duration
		wantPoints   int
		wantConsumed time.Duration
	}{
		{name: "zero elapsed", elapsed: 0, wantPoints: 0, wantConsumed: 0},
		{name: "below one point", elapsed: 11 * time.Minute, wantPoints: 0, wantConsumed: 0},
		{name: "exactly one point", elapsed: 12 * time.Minute, wantPoints: 1, wantConsumed: 12 * time.Minute},
		{name: "one point with remainder", elapsed: 20 * time.Minute, wantPoints: 1, wantConsumed: 12 * time.Minute},
		{name: "one hour", elapsed: time.Hour, wantPoints: 5, wantConsumed: time.Hour},
		{name: "ninety minutes", elapsed: 90 * time.Minute, wantPoints: 7, wantConsumed: 84 * time.Minute},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			points, consumed := decaySteps(tc.elapsed, params)
			assert.Equal(t, tc.wantPoints, points)
			assert.Equal(t, tc.wantConsumed, consumed)
		})
	}
}

func TestDecayStepsCarryover(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	// Repeated sub-point ticks with remainder carry must decay at the
	// same rate as one long tick.
	var remainder time.Duration
	total := 0
	for i := 0; i < 60; i++ { // 60 ticks of 5 minutes = 5 hours
		elapsed := remainder + 5*time.Minute
		points, consumed := decaySteps(elapsed, params)
		total += points
		remainder = elapsed - consumed
	}

	wholePoints, _ := decaySteps(5*time.Hour, params)
	assert.Equal(t, wholePoints, total)
}

func TestBoostVitalDiminishingReturns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int
		delta   int
		want    int
	}{
		{name: "empty vital gets full delta", current: 0, delta: 20, want: 20},
		{name: "half full gets half delta", current: 50, delta: 20, want: 60},
		{name: "nearly full gets at least one", current: 99, delta: 20, want: 100},
		{name: "full stays full", current: 100, delta: 20, want: 100},
		{name: "negative applies in full", current: 50, delta: -20, want: 30},
		{name: "negative clamps at zero", current: 5, delta: -20, want: 0},
		{name: "positive clamps at cap", current: 95, delta: 100, want: 100},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, boostVital(tc.current, tc.delta))
		})
	}
}

func TestApplyStatDelta(t *testing.T) {
	t.Parallel()

	v := domain.Vitals{Hunger: 50, Mood: 100, Energy: 20}
	effect := domain.ItemEffect{Kind: domain.EffectStatDelta, Hunger: 20, Mood: 10, Energy: -30}

	got := applyStatDelta(v, effect)
	assert.Equal(t, 60, got.Hunger, "half-full hunger takes half the boost")
	assert.Equal(t, 100, got.Mood, "full mood stays capped")
	assert.Equal(t, 0, got.Energy, "energy cost applies fully and clamps at zero")
	assert.True(t, got.InBounds())
}

func TestDecayVitals(t *testing.T) {
	t.Parallel()

	v := domain.Vitals{Hunger: 10, Mood: 3, Energy: 0}
	got := decayVitals(v, 5)
	assert.Equal(t, domain.Vitals{Hunger: 5, Mood: 0, Energy: 0}, got)
}
