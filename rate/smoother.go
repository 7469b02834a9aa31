package rate

import (
	"github.com/leakydata/srt-voiceover/input"
)

// DefaultMaxDeltaPercent bounds the rate change between consecutive
// segments so the perceived pace drifts rather than jumps.
const DefaultMaxDeltaPercent = 15

// Smooth sets SmoothedRatePercent across the ordered plans in a single
// causal left-to-right pass. The first segment is never altered. For
// every later segment the raw rate is pulled to within maxDeltaPercent
// of the previous smoothed value. STATIC segments carry a raw rate of
// 0% and smooth like any other, which keeps the bound holding over the
// whole sequence with no exclusions.
func Smooth(plans []input.SegmentPlan, maxDeltaPercent int) []input.SegmentPlan {
	if len(plans) == 0 {
		return plans
	}
	plans[0].SmoothedRatePercent = plans[0].RawRatePercent
	for i := 1; i < len(plans); i++ {
		prev := plans[i-1].SmoothedRatePercent
		delta := plans[i].RawRatePercent - prev
		if delta > maxDeltaPercent {
			plans[i].SmoothedRatePercent = prev + maxDeltaPercent
		} else if delta < -maxDeltaPercent {
			plans[i].SmoothedRatePercent = prev - maxDeltaPercent
		} else {
			plans[i].SmoothedRatePercent = plans[i].RawRatePercent
		}
	}
	return plans
}
