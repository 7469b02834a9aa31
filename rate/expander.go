package rate

import (
	"github.com/leakydata/srt-voiceover/input"
)

const (
	// DefaultElasticThreshold is the rate above which a window is
	// considered strained enough to borrow adjacent silence.
	DefaultElasticThreshold = 30
	// DefaultMaxBorrowMS caps how much silence one side may give up.
	DefaultMaxBorrowMS = int64(450)
	// DefaultMinGapMS is the silence that must remain between segments
	// after borrowing.
	DefaultMinGapMS = int64(100)
)

// WindowExpander enlarges a strained segment's effective window by
// borrowing silence from the gaps on either side.
type WindowExpander struct {
	thresholdPercent int
	maxBorrowMS      int64
	minGapMS         int64
}

func NewWindowExpander() WindowExpander {
	var e WindowExpander
	e.thresholdPercent = DefaultElasticThreshold
	e.maxBorrowMS = DefaultMaxBorrowMS
	e.minGapMS = DefaultMinGapMS
	return e
}

// Expand borrows adjacent silence when the raw rate exceeds the elastic
// threshold and recomputes the rate over the widened window.
//
// Policy: only rates above +threshold trigger borrowing. A negative rate
// means the window is already longer than the speech needs, and widening
// it further would only push the rate lower. The borrow taken is the
// minimum needed to bring the rate down to the threshold, drawn from the
// trailing gap first (a shortened trailing pause is less perceptible
// than a clipped leading one), then the leading gap. If the available
// slack is not enough the segment keeps the best achievable rate, which
// is expected and not an error.
//
// prevEndMS and nextStartMS are the neighboring segment boundaries; pass
// a negative value when there is no neighbor on that side, which makes
// the full borrow allowance available.
func (e *WindowExpander) Expand(plan input.SegmentPlan, prevEndMS int64, nextStartMS int64,
	baselineWPM float64, minRate int, maxRate int) input.SegmentPlan {
	if plan.Strategy != input.WORD_LEVEL {
		return plan
	}
	if plan.RawRatePercent <= e.thresholdPercent {
		return plan
	}
	neededMS := e.durationForThreshold(plan.TokenCount, baselineWPM) - plan.TargetDurationMS()
	if neededMS <= 0 {
		return plan
	}
	slackAfter := e.slack(plan.TargetEndMS, nextStartMS, false)
	slackBefore := e.slack(plan.TargetStartMS, prevEndMS, true)
	borrowAfter := minInt64(slackAfter, neededMS)
	borrowBefore := minInt64(slackBefore, neededMS-borrowAfter)
	if borrowAfter == 0 && borrowBefore == 0 {
		return plan
	}
	plan.TargetStartMS -= borrowBefore
	plan.TargetEndMS += borrowAfter
	plan.RawRatePercent = ComputeRate(plan.TokenCount, plan.TargetDurationMS(), baselineWPM, minRate, maxRate)
	plan.Strategy = input.ELASTIC
	return plan
}

// durationForThreshold is the window length at which tokenCount words
// land exactly on the threshold rate.
func (e *WindowExpander) durationForThreshold(tokenCount int, baselineWPM float64) int64 {
	if baselineWPM <= 0 || tokenCount <= 0 {
		return 0
	}
	targetWPM := baselineWPM * (1.0 + float64(e.thresholdPercent)/100.0)
	minutes := float64(tokenCount) / targetWPM
	return int64(minutes * 60000.0)
}

func (e *WindowExpander) slack(boundaryMS int64, neighborMS int64, before bool) int64 {
	if neighborMS < 0 {
		return e.maxBorrowMS
	}
	var gap int64
	if before {
		gap = boundaryMS - neighborMS - e.minGapMS
	} else {
		gap = neighborMS - boundaryMS - e.minGapMS
	}
	if gap < 0 {
		gap = 0
	}
	return minInt64(gap, e.maxBorrowMS)
}

func minInt64(a int64, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
