package rate

import (
	"math"

	"github.com/leakydata/srt-voiceover/input"
)

const (
	// Default rate clamp when no voice profile supplies its own bounds.
	DefaultMinRate = -20
	DefaultMaxRate = 40
	// Below this confidence the word counts are too noisy to trust and
	// the segment falls back to static timing at 0%.
	LowConfidenceThreshold = 0.5
)

// ComputeRate converts a segment's token count and available duration
// into a signed rate percentage against the voice baseline. 0% means
// baseline pace, positive speeds up, negative slows down. Rounding is
// half away from zero so results are deterministic.
func ComputeRate(tokenCount int, durationMS int64, baselineWPM float64, minRate int, maxRate int) int {
	if durationMS <= 0 || baselineWPM <= 0 || tokenCount <= 0 {
		return 0
	}
	minutes := float64(durationMS) / 60000.0
	measuredWPM := float64(tokenCount) / minutes
	raw := roundHalfAway(100.0 * (measuredWPM/baselineWPM - 1.0))
	return Clamp(raw, minRate, maxRate)
}

// PlanRate fills in the rate fields of a segment plan from its match
// result. Confidence gates the branch: below the low-confidence
// threshold the plan is downgraded to STATIC with rate fixed at 0%.
func PlanRate(plan input.SegmentPlan, match input.MatchResult, baselineWPM float64, minRate int, maxRate int) input.SegmentPlan {
	plan.Confidence = match.Confidence
	plan.MatchedCount = len(match.Matched)
	plan.TokenCount = match.TokenCount
	if match.Confidence < LowConfidenceThreshold {
		plan.Strategy = input.STATIC
		plan.RawRatePercent = 0
		return plan
	}
	plan.Strategy = input.WORD_LEVEL
	plan.RawRatePercent = ComputeRate(match.TokenCount, plan.TargetDurationMS(), baselineWPM, minRate, maxRate)
	return plan
}

func Clamp(value int, minRate int, maxRate int) int {
	if value < minRate {
		return minRate
	}
	if value > maxRate {
		return maxRate
	}
	return value
}

func roundHalfAway(value float64) int {
	if value < 0 {
		return -int(math.Floor(-value + 0.5))
	}
	return int(math.Floor(value + 0.5))
}
