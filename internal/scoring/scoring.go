// Package scoring computes the Confidence Score shown on the compare page.
//
// The score is a heuristic: a baseline adjusted by age band, driving history
// and goal, clamped to 0..100 and bucketed into a risk tier. It is not a
// price and is never derived from carrier data.
package scoring

import "fmt"

type AgeBand string

const (
	Age16to17 AgeBand = "16-17"
	Age18to24 AgeBand = "18-24"
	Age25to29 AgeBand = "25-29"
	Age30to39 AgeBand = "30-39"
	Age40Plus AgeBand = "40+"
)

type Ownership string

const (
	Own     Ownership = "Own"
	Finance Ownership = "Finance"
	Lease   Ownership = "Lease"
)

type History string

const (
	CleanRecord History = "Clean record"
	NewDriver   History = "New driver"
	OneTicket   History = "1 ticket"
	AtFault     History = "At-fault accident"
)

type Goal string

const (
	Cheapest      Goal = "Cheapest"
	Balanced      Goal = "Balanced"
	MaxProtection Goal = "Max protection"
)

type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

var (
	AllAgeBands  = []AgeBand{Age16to17, Age18to24, Age25to29, Age30to39, Age40Plus}
	AllOwnership = []Ownership{Own, Finance, Lease}
	AllHistories = []History{CleanRecord, NewDriver, OneTicket, AtFault}
	AllGoals     = []Goal{Cheapest, Balanced, MaxProtection}
)

const (
	Baseline = 72

	lowThreshold    = 75
	mediumThreshold = 55
)

// Result pairs a score with its tier.
type Result struct {
	Score int  `json:"score"`
	Tier  Tier `json:"tier"`
}

// Score returns the Confidence Score in [0,100]. It panics on a value outside
// the enumerations; callers parse external input with the Parse* functions.
func Score(age AgeBand, history History, goal Goal) int {
	return clamp(Baseline + ageAdjustment(age) + historyAdjustment(history) + goalAdjustment(goal))
}

// clamp holds a raw sum to [0,100]. The current tables never leave that range.
func clamp(s int) int {
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	}
	return s
}

// TierFor buckets a score: >=75 Low, >=55 Medium, otherwise High.
func TierFor(score int) Tier {
	switch {
	case score >= lowThreshold:
		return TierLow
	case score >= mediumThreshold:
		return TierMedium
	default:
		return TierHigh
	}
}

// Evaluate is Score followed by TierFor.
func Evaluate(age AgeBand, history History, goal Goal) Result {
	s := Score(age, history, goal)
	return Result{Score: s, Tier: TierFor(s)}
}

func ageAdjustment(a AgeBand) int {
	switch a {
	case Age16to17:
		return -18
	case Age18to24:
		return -10
	case Age25to29, Age30to39, Age40Plus:
		return 0
	}
	panic(fmt.Sprintf("scoring: unknown age band %q", string(a)))
}

func historyAdjustment(h History) int {
	switch h {
	case NewDriver:
		return -10
	case OneTicket:
		return -12
	case AtFault:
		return -18
	case CleanRecord:
		return 0
	}
	panic(fmt.Sprintf("scoring: unknown history %q", string(h)))
}

func goalAdjustment(g Goal) int {
	switch g {
	case Cheapest:
		return -8
	case MaxProtection:
		return 6
	case Balanced:
		return 0
	}
	panic(fmt.Sprintf("scoring: unknown goal %q", string(g)))
}

func ParseAgeBand(s string) (AgeBand, bool) {
	for _, v := range AllAgeBands {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

func ParseOwnership(s string) (Ownership, bool) {
	for _, v := range AllOwnership {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

func ParseHistory(s string) (History, bool) {
	for _, v := range AllHistories {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

func ParseGoal(s string) (Goal, bool) {
	for _, v := range AllGoals {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}
