package rate

import (
	"testing"

	"github.com/leakydata/srt-voiceover/input"
)

func TestComputeRateClampsSlow(t *testing.T) {
	// 2 words in 5 seconds is 24 wpm against a 150 wpm baseline,
	// far below baseline, so the rate clamps at the floor.
	got := ComputeRate(2, 5000, 150, DefaultMinRate, DefaultMaxRate)
	if got != -20 {
		t.Errorf("expected -20, got %d", got)
	}
}

func TestComputeRateBaseline(t *testing.T) {
	// 150 words in 60 seconds at 150 wpm baseline is exactly 0%.
	got := ComputeRate(150, 60000, 150, DefaultMinRate, DefaultMaxRate)
	if got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestComputeRateFast(t *testing.T) {
	// 30 words in 10 seconds is 180 wpm: +20% against 150 wpm.
	got := ComputeRate(30, 10000, 150, DefaultMinRate, DefaultMaxRate)
	if got != 20 {
		t.Errorf("expected +20, got %d", got)
	}
}

func TestComputeRateClampsFast(t *testing.T) {
	got := ComputeRate(60, 10000, 150, DefaultMinRate, DefaultMaxRate)
	if got != DefaultMaxRate {
		t.Errorf("expected clamp to %d, got %d", DefaultMaxRate, got)
	}
}

func TestComputeRateDegenerate(t *testing.T) {
	if got := ComputeRate(0, 5000, 150, -20, 40); got != 0 {
		t.Errorf("zero tokens should rate 0, got %d", got)
	}
	if got := ComputeRate(5, 0, 150, -20, 40); got != 0 {
		t.Errorf("zero duration should rate 0, got %d", got)
	}
}

func TestRoundHalfAway(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{0.5, 1}, {-0.5, -1}, {1.4, 1}, {-1.4, -1}, {2.5, 3}, {-2.5, -3}, {0.0, 0},
	}
	for _, tc := range tests {
		if got := roundHalfAway(tc.value); got != tc.want {
			t.Errorf("roundHalfAway(%f) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestPlanRateWordLevel(t *testing.T) {
	plan := input.SegmentPlan{SegmentIndex: 0, TargetStartMS: 0, TargetEndMS: 5000}
	match := input.MatchResult{
		Matched:    []input.WordTiming{{Word: "hello"}, {Word: "world"}},
		Confidence: 1.0,
		TokenCount: 2,
	}
	plan = PlanRate(plan, match, 150, DefaultMinRate, DefaultMaxRate)
	if plan.Strategy != input.WORD_LEVEL {
		t.Errorf("expected WORD_LEVEL, got %s", plan.Strategy)
	}
	if plan.RawRatePercent != -20 {
		t.Errorf("expected raw rate -20, got %d", plan.RawRatePercent)
	}
	if plan.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", plan.Confidence)
	}
}

func TestPlanRateLowConfidenceDowngrades(t *testing.T) {
	plan := input.SegmentPlan{SegmentIndex: 3, TargetStartMS: 0, TargetEndMS: 2000}
	match := input.MatchResult{
		Unmatched:  []string{"click", "here"},
		Confidence: 0.0,
		TokenCount: 2,
	}
	plan = PlanRate(plan, match, 150, DefaultMinRate, DefaultMaxRate)
	if plan.Strategy != input.STATIC {
		t.Errorf("expected STATIC, got %s", plan.Strategy)
	}
	if plan.RawRatePercent != 0 {
		t.Errorf("static plan should rate 0, got %d", plan.RawRatePercent)
	}
}
