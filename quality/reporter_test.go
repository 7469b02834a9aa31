package quality

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/leakydata/srt-voiceover/input"
)

func makePlan(index int, confidence float64, raw int, smoothed int) input.SegmentPlan {
	return input.SegmentPlan{
		SegmentIndex:        index,
		Confidence:          confidence,
		RawRatePercent:      raw,
		SmoothedRatePercent: smoothed,
		Strategy:            input.WORD_LEVEL,
		MatchedCount:        4,
		TokenCount:          4,
		Text:                "some words here now",
	}
}

func makeOutcome(index int, action input.Action, errorMS int64) input.SegmentOutcome {
	return input.SegmentOutcome{
		SegmentIndex:    index,
		ActionTaken:     action,
		DurationErrorMS: errorMS,
	}
}

func TestReporterSummary(t *testing.T) {
	reporter := NewReporter(context.Background(), 3)
	reporter.Record(makePlan(0, 0.9, 10, 10), makeOutcome(0, input.ACCEPTED, 0))
	reporter.Record(makePlan(1, 0.8, 20, 20), makeOutcome(1, input.STRETCHED, 30))
	reporter.Record(makePlan(2, 1.0, 5, 5), makeOutcome(2, input.ACCEPTED, 0))
	report, status := reporter.Finalize()
	if status != nil {
		t.Fatalf("Finalize failed: %s", status)
	}
	if report.Summary.TotalSegments != 3 {
		t.Errorf("expected 3 segments, got %d", report.Summary.TotalSegments)
	}
	if report.Summary.AvgConfidence != 0.9 {
		t.Errorf("expected avg 0.9, got %f", report.Summary.AvgConfidence)
	}
	if report.Summary.MinConfidence != 0.8 || report.Summary.MaxConfidence != 1.0 {
		t.Errorf("unexpected min/max: %f/%f", report.Summary.MinConfidence, report.Summary.MaxConfidence)
	}
	if report.Summary.MaxRateDelta != 15 {
		t.Errorf("expected max delta 15, got %d", report.Summary.MaxRateDelta)
	}
	if report.Summary.CountFlagged != 0 {
		t.Errorf("expected no flags, got %d", report.Summary.CountFlagged)
	}
	if report.Summary.ConfidenceHistogram["0.8-1.0"] != 3 {
		t.Errorf("unexpected histogram: %v", report.Summary.ConfidenceHistogram)
	}
}

func TestReporterFlags(t *testing.T) {
	reporter := NewReporter(context.Background(), 4)
	lowConf := makePlan(0, 0.3, 0, 0)
	lowConf.Strategy = input.STATIC
	lowConf.MatchedCount = 1
	reporter.Record(lowConf, makeOutcome(0, input.ACCEPTED, 0))
	bigJump := makePlan(1, 0.9, 30, 30)
	reporter.Record(bigJump, makeOutcome(1, input.ACCEPTED, 0))
	extreme := makePlan(2, 0.9, 45, 45)
	reporter.Record(extreme, makeOutcome(2, input.ACCEPTED, 0))
	trimmed := makePlan(3, 0.9, 40, 40)
	reporter.Record(trimmed, makeOutcome(3, input.TRIMMED, 400))
	report, status := reporter.Finalize()
	if status != nil {
		t.Fatalf("Finalize failed: %s", status)
	}
	flagged := report.FlaggedSegments()
	if len(flagged) != 4 {
		t.Fatalf("expected 4 flagged segments, got %d", len(flagged))
	}
	if !hasIssue(flagged[0].Issues, "confidence") {
		t.Errorf("segment 0 should flag low confidence: %v", flagged[0].Issues)
	}
	if !hasIssue(flagged[1].Issues, "rate jump") {
		t.Errorf("segment 1 should flag rate jump: %v", flagged[1].Issues)
	}
	if !hasIssue(flagged[2].Issues, "Extreme") {
		t.Errorf("segment 2 should flag extreme rate: %v", flagged[2].Issues)
	}
	if !hasIssue(flagged[3].Issues, "Trimmed") {
		t.Errorf("segment 3 should flag trim error: %v", flagged[3].Issues)
	}
}

func TestReporterOutOfOrderConcurrent(t *testing.T) {
	reporter := NewReporter(context.Background(), 20)
	var wg sync.WaitGroup
	for i := 19; i >= 0; i-- {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			reporter.Record(makePlan(index, 0.9, 0, 0), makeOutcome(index, input.ACCEPTED, 0))
		}(i)
	}
	wg.Wait()
	report, status := reporter.Finalize()
	if status != nil {
		t.Fatalf("Finalize failed: %s", status)
	}
	for i, record := range report.Segments {
		if record.SegmentIndex != i {
			t.Fatalf("segment %d out of order: index %d", i, record.SegmentIndex)
		}
	}
}

func TestReporterDuplicateIndex(t *testing.T) {
	reporter := NewReporter(context.Background(), 2)
	reporter.Record(makePlan(0, 0.9, 0, 0), makeOutcome(0, input.ACCEPTED, 0))
	reporter.Record(makePlan(0, 0.9, 0, 0), makeOutcome(0, input.ACCEPTED, 0))
	if _, status := reporter.Finalize(); status == nil {
		t.Fatal("expected failure on duplicate segment index")
	}
}

func TestReporterUnknownIndex(t *testing.T) {
	reporter := NewReporter(context.Background(), 1)
	reporter.Record(makePlan(5, 0.9, 0, 0), makeOutcome(5, input.ACCEPTED, 0))
	if _, status := reporter.Finalize(); status == nil {
		t.Fatal("expected failure on unknown segment index")
	}
}

func TestReporterMissingSegment(t *testing.T) {
	reporter := NewReporter(context.Background(), 2)
	reporter.Record(makePlan(0, 0.9, 0, 0), makeOutcome(0, input.ACCEPTED, 0))
	if _, status := reporter.Finalize(); status == nil {
		t.Fatal("expected failure on missing segment outcome")
	}
}

func TestExportJSONStableFields(t *testing.T) {
	ctx := context.Background()
	reporter := NewReporter(ctx, 1)
	reporter.Record(makePlan(0, 0.9, 10, 10), makeOutcome(0, input.ACCEPTED, 0))
	report, status := reporter.Finalize()
	if status != nil {
		t.Fatalf("Finalize failed: %s", status)
	}
	path := filepath.Join(t.TempDir(), "report.json")
	if status = report.ExportJSON(ctx, path); status != nil {
		t.Fatalf("ExportJSON failed: %s", status)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err = json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"version", "timestamp", "summary", "segments"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("missing top-level field %q", field)
		}
	}
	segments := decoded["segments"].([]any)
	first := segments[0].(map[string]any)
	for _, field := range []string{"segment_index", "confidence", "raw_rate_percent",
		"smoothed_rate_percent", "action_taken", "duration_error_ms", "issues"} {
		if _, ok := first[field]; !ok {
			t.Errorf("missing segment field %q", field)
		}
	}
}

func hasIssue(issues []string, substr string) bool {
	for _, issue := range issues {
		if strings.Contains(issue, substr) {
			return true
		}
	}
	return false
}
