package rate

import (
	"testing"

	"github.com/leakydata/srt-voiceover/input"
)

func plansFromRates(rates []int) []input.SegmentPlan {
	plans := make([]input.SegmentPlan, len(rates))
	for i, r := range rates {
		plans[i] = input.SegmentPlan{SegmentIndex: i, RawRatePercent: r, Strategy: input.WORD_LEVEL}
	}
	return plans
}

func TestSmoothSequence(t *testing.T) {
	raw := []int{29, 12, -4, 40, -5, 0, 30}
	want := []int{29, 14, -1, 14, -1, 0, 15}
	plans := Smooth(plansFromRates(raw), DefaultMaxDeltaPercent)
	for i, plan := range plans {
		if plan.SmoothedRatePercent != want[i] {
			t.Errorf("smoothed[%d] = %d, want %d", i, plan.SmoothedRatePercent, want[i])
		}
	}
}

func TestSmoothBoundInvariant(t *testing.T) {
	raw := []int{0, 40, -40, 40, -40, 3, 7, -12, 38}
	plans := Smooth(plansFromRates(raw), DefaultMaxDeltaPercent)
	if plans[0].SmoothedRatePercent != raw[0] {
		t.Errorf("first segment must keep its raw rate, got %d", plans[0].SmoothedRatePercent)
	}
	for i := 1; i < len(plans); i++ {
		delta := plans[i].SmoothedRatePercent - plans[i-1].SmoothedRatePercent
		if delta > DefaultMaxDeltaPercent || delta < -DefaultMaxDeltaPercent {
			t.Errorf("delta at %d is %d, exceeds %d", i, delta, DefaultMaxDeltaPercent)
		}
	}
}

func TestSmoothWithinDeltaKeepsRaw(t *testing.T) {
	raw := []int{10, 20, 12, 5}
	plans := Smooth(plansFromRates(raw), DefaultMaxDeltaPercent)
	for i, plan := range plans {
		if plan.SmoothedRatePercent != raw[i] {
			t.Errorf("smoothed[%d] = %d, want unchanged %d", i, plan.SmoothedRatePercent, raw[i])
		}
	}
}

func TestSmoothStaticParticipatesAtZero(t *testing.T) {
	plans := []input.SegmentPlan{
		{SegmentIndex: 0, RawRatePercent: 29, Strategy: input.WORD_LEVEL},
		{SegmentIndex: 1, RawRatePercent: 0, Strategy: input.STATIC},
		{SegmentIndex: 2, RawRatePercent: 25, Strategy: input.WORD_LEVEL},
	}
	plans = Smooth(plans, DefaultMaxDeltaPercent)
	if plans[1].SmoothedRatePercent != 14 {
		t.Errorf("static segment smooths from 0 like any other, got %d", plans[1].SmoothedRatePercent)
	}
	if plans[2].SmoothedRatePercent != 25 {
		t.Errorf("smoothed[2] = %d, want 25", plans[2].SmoothedRatePercent)
	}
}

func TestSmoothEmpty(t *testing.T) {
	if got := Smooth(nil, DefaultMaxDeltaPercent); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
