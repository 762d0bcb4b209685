package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_KnownCases(t *testing.T) {
	tests := []struct {
		name    string
		age     AgeBand
		history History
		goal    Goal
		score   int
		tier    Tier
	}{
		{"worst case", Age16to17, AtFault, Cheapest, 28, TierHigh},
		{"best case", Age40Plus, CleanRecord, MaxProtection, 78, TierLow},
		{"baseline", Age30to39, CleanRecord, Balanced, 72, TierMedium},
		{"compare defaults", Age18to24, NewDriver, Balanced, 52, TierHigh},
		{"ticketed young saver", Age18to24, OneTicket, Cheapest, 42, TierHigh},
		{"teen new driver covered", Age16to17, NewDriver, MaxProtection, 50, TierHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(tt.age, tt.history, tt.goal)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.tier, r.Tier)
		})
	}
}

func TestScore_FullGridInRange(t *testing.T) {
	for _, a := range AllAgeBands {
		for _, h := range AllHistories {
			for _, g := range AllGoals {
				s := Score(a, h, g)
				assert.GreaterOrEqual(t, s, 0)
				assert.LessOrEqual(t, s, 100)
				assert.Equal(t, s, Score(a, h, g), "deterministic")
			}
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	for _, a := range AllAgeBands {
		for _, g := range AllGoals {
			clean := Score(a, CleanRecord, g)
			for _, h := range []History{NewDriver, OneTicket, AtFault} {
				assert.LessOrEqual(t, Score(a, h, g), clean)
			}
		}
	}
	for _, h := range AllHistories {
		for _, g := range AllGoals {
			assert.Less(t, Score(Age16to17, h, g), Score(Age18to24, h, g))
			assert.Less(t, Score(Age18to24, h, g), Score(Age25to29, h, g))
		}
	}
	for _, a := range AllAgeBands {
		for _, h := range AllHistories {
			assert.Less(t, Score(a, h, Cheapest), Score(a, h, Balanced))
			assert.Less(t, Score(a, h, Balanced), Score(a, h, MaxProtection))
		}
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	cases := map[int]Tier{
		100: TierLow,
		75:  TierLow,
		74:  TierMedium,
		55:  TierMedium,
		54:  TierHigh,
		0:   TierHigh,
	}
	for score, want := range cases {
		assert.Equal(t, want, TierFor(score), "score %d", score)
	}
}

func TestClamp(t *testing.T) {
	cases := map[int]int{
		-5:  0,
		0:   0,
		50:  50,
		100: 100,
		130: 100,
	}
	for in, want := range cases {
		assert.Equal(t, want, clamp(in), "clamp(%d)", in)
	}
}

func TestScore_PanicsOnUnknownValue(t *testing.T) {
	assert.Panics(t, func() { Score("99+", CleanRecord, Balanced) })
	assert.Panics(t, func() { Score(Age40Plus, "Speeding", Balanced) })
	assert.Panics(t, func() { Score(Age40Plus, CleanRecord, "Luxury") })
}

func TestParse(t *testing.T) {
	a, ok := ParseAgeBand("40+")
	require.True(t, ok)
	assert.Equal(t, Age40Plus, a)

	_, ok = ParseAgeBand("40")
	assert.False(t, ok)

	h, ok := ParseHistory("At-fault accident")
	require.True(t, ok)
	assert.Equal(t, AtFault, h)

	_, ok = ParseHistory("at-fault accident")
	assert.False(t, ok, "parsing is exact")

	g, ok := ParseGoal("Max protection")
	require.True(t, ok)
	assert.Equal(t, MaxProtection, g)

	o, ok := ParseOwnership("Lease")
	require.True(t, ok)
	assert.Equal(t, Lease, o)

	_, ok = ParseOwnership("")
	assert.False(t, ok)
}
