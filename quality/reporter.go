package quality

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

// ReportVersion identifies the export document layout. Field names are
// stable within a version so reports can be snapshot-tested.
const ReportVersion = "1"

const (
	lowConfidenceFlag = 0.5
	largeRateJumpFlag = 25
	extremeRateFlag   = 40
	lowMatchRatioFlag = 0.5
	trimErrorFlagMS   = int64(150)
)

// SegmentRecord is the per-segment entry of the quality report.
type SegmentRecord struct {
	SegmentIndex        int      `json:"segment_index"`
	Speaker             string   `json:"speaker,omitempty"`
	Text                string   `json:"text"`
	Confidence          float64  `json:"confidence"`
	RawRatePercent      int      `json:"raw_rate_percent"`
	SmoothedRatePercent int      `json:"smoothed_rate_percent"`
	RateDelta           int      `json:"rate_delta"`
	Strategy            string   `json:"strategy"`
	MatchedCount        int      `json:"matched_count"`
	TokenCount          int      `json:"token_count"`
	ActionTaken         string   `json:"action_taken"`
	DurationErrorMS     int64    `json:"duration_error_ms"`
	SynthesisFailed     bool     `json:"synthesis_failed,omitempty"`
	Issues              []string `json:"issues"`
}

// Summary is the aggregate block of the quality report.
type Summary struct {
	TotalSegments       int            `json:"total_segments"`
	AvgConfidence       float64        `json:"avg_confidence"`
	MinConfidence       float64        `json:"min_confidence"`
	MaxConfidence       float64        `json:"max_confidence"`
	ConfidenceLevel     string         `json:"confidence_level"`
	CountFlagged        int            `json:"count_flagged"`
	MaxRateDelta        int            `json:"max_rate_delta"`
	ConfidenceHistogram map[string]int `json:"confidence_histogram"`
}

// Report is the finalized, frozen result of one run.
type Report struct {
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
	Summary   Summary         `json:"summary"`
	Segments  []SegmentRecord `json:"segments"`
}

// Reporter accumulates per-segment metrics during a run. Record may be
// called from concurrent workers in any order; Finalize sorts by
// segment index and freezes the report.
type Reporter struct {
	ctx      context.Context
	total    int
	mutex    sync.Mutex
	records  []SegmentRecord
	start    time.Time
	finished bool
}

func NewReporter(ctx context.Context, totalSegments int) *Reporter {
	var r Reporter
	r.ctx = ctx
	r.total = totalSegments
	r.start = time.Now()
	return &r
}

// Record appends one segment's metrics. Safe for concurrent use.
func (r *Reporter) Record(plan input.SegmentPlan, outcome input.SegmentOutcome) {
	record := SegmentRecord{
		SegmentIndex:        plan.SegmentIndex,
		Speaker:             plan.Speaker,
		Text:                truncate(plan.Text, 100),
		Confidence:          plan.Confidence,
		RawRatePercent:      plan.RawRatePercent,
		SmoothedRatePercent: plan.SmoothedRatePercent,
		Strategy:            string(plan.Strategy),
		MatchedCount:        plan.MatchedCount,
		TokenCount:          plan.TokenCount,
		ActionTaken:         string(outcome.ActionTaken),
		DurationErrorMS:     outcome.DurationErrorMS,
		SynthesisFailed:     outcome.SynthesisFailed,
	}
	r.mutex.Lock()
	r.records = append(r.records, record)
	r.mutex.Unlock()
}

// Finalize orders the records, computes rate deltas and issue flags,
// and freezes the report. A duplicate, unknown, or missing segment
// index is a programming error and fails loudly.
func (r *Reporter) Finalize() (*Report, *log.Status) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.finished {
		return nil, log.ErrorNoErr(r.ctx, 500, "Quality report finalized twice")
	}
	sort.Slice(r.records, func(i, j int) bool {
		return r.records[i].SegmentIndex < r.records[j].SegmentIndex
	})
	seen := make(map[int]bool)
	for _, record := range r.records {
		if record.SegmentIndex < 0 || record.SegmentIndex >= r.total {
			return nil, log.ErrorNoErr(r.ctx, 500,
				fmt.Sprintf("Outcome recorded for unknown segment index %d", record.SegmentIndex))
		}
		if seen[record.SegmentIndex] {
			return nil, log.ErrorNoErr(r.ctx, 500,
				fmt.Sprintf("Duplicate outcome recorded for segment index %d", record.SegmentIndex))
		}
		seen[record.SegmentIndex] = true
	}
	if len(r.records) != r.total {
		return nil, log.ErrorNoErr(r.ctx, 500,
			fmt.Sprintf("Expected %d segment outcomes, have %d", r.total, len(r.records)))
	}
	for i := range r.records {
		if i > 0 {
			r.records[i].RateDelta = r.records[i].SmoothedRatePercent - r.records[i-1].SmoothedRatePercent
		}
		r.records[i].Issues = checkIssues(r.records[i], i > 0)
	}
	report := &Report{
		Version:   ReportVersion,
		Timestamp: r.start.UTC().Format(time.RFC3339),
		Summary:   summarize(r.records),
		Segments:  r.records,
	}
	r.finished = true
	return report, nil
}

func checkIssues(record SegmentRecord, hasPrev bool) []string {
	issues := []string{}
	if record.Confidence < lowConfidenceFlag {
		issues = append(issues, fmt.Sprintf("Low word match confidence (%.0f%%)", record.Confidence*100))
	}
	if hasPrev && abs(record.RateDelta) > largeRateJumpFlag {
		issues = append(issues, fmt.Sprintf("Large rate jump (%+d%%)", record.RateDelta))
	}
	if abs(record.SmoothedRatePercent) > extremeRateFlag {
		issues = append(issues, fmt.Sprintf("Extreme speech rate (%+d%%)", record.SmoothedRatePercent))
	}
	if record.TokenCount > 0 {
		ratio := float64(record.MatchedCount) / float64(record.TokenCount)
		if ratio < lowMatchRatioFlag {
			issues = append(issues, fmt.Sprintf("Only %d/%d words matched", record.MatchedCount, record.TokenCount))
		}
	}
	if record.ActionTaken == string(input.TRIMMED) && record.DurationErrorMS > trimErrorFlagMS {
		issues = append(issues, fmt.Sprintf("Trimmed with residual error %dms", record.DurationErrorMS))
	}
	if record.SynthesisFailed {
		issues = append(issues, "Synthesis failed, silence substituted")
	}
	return issues
}

func summarize(records []SegmentRecord) Summary {
	summary := Summary{
		TotalSegments:       len(records),
		ConfidenceHistogram: emptyHistogram(),
	}
	if len(records) == 0 {
		summary.ConfidenceLevel = confidenceLevel(0)
		return summary
	}
	confidences := make([]float64, 0, len(records))
	summary.MinConfidence = records[0].Confidence
	for i, record := range records {
		confidences = append(confidences, record.Confidence)
		if record.Confidence < summary.MinConfidence {
			summary.MinConfidence = record.Confidence
		}
		if record.Confidence > summary.MaxConfidence {
			summary.MaxConfidence = record.Confidence
		}
		summary.ConfidenceHistogram[histogramBucket(record.Confidence)]++
		if i > 0 && abs(record.RateDelta) > summary.MaxRateDelta {
			summary.MaxRateDelta = abs(record.RateDelta)
		}
		if len(record.Issues) > 0 {
			summary.CountFlagged++
		}
	}
	summary.AvgConfidence = round3(stat.Mean(confidences, nil))
	summary.ConfidenceLevel = confidenceLevel(summary.AvgConfidence)
	return summary
}

// FlaggedSegments returns the ordered segments that carry issues.
func (rep *Report) FlaggedSegments() []SegmentRecord {
	var results []SegmentRecord
	for _, record := range rep.Segments {
		if len(record.Issues) > 0 {
			results = append(results, record)
		}
	}
	return results
}

func histogramBucket(confidence float64) string {
	switch {
	case confidence < 0.2:
		return "0.0-0.2"
	case confidence < 0.4:
		return "0.2-0.4"
	case confidence < 0.6:
		return "0.4-0.6"
	case confidence < 0.8:
		return "0.6-0.8"
	default:
		return "0.8-1.0"
	}
}

func emptyHistogram() map[string]int {
	return map[string]int{
		"0.0-0.2": 0, "0.2-0.4": 0, "0.4-0.6": 0, "0.6-0.8": 0, "0.8-1.0": 0,
	}
}

func confidenceLevel(confidence float64) string {
	switch {
	case confidence > 0.9:
		return "EXCELLENT"
	case confidence > 0.75:
		return "GOOD"
	case confidence > 0.6:
		return "FAIR"
	default:
		return "POOR"
	}
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
