package input

// TimedSegment is one subtitle-style cue: a time window and the text
// spoken inside it. Segments are ordered, non-overlapping, and read-only
// once loaded.
type TimedSegment struct {
	Index   int
	StartMS int64
	EndMS   int64
	Text    string
	Speaker string // empty when the source carries no speaker label
}

func (t TimedSegment) DurationMS() int64 {
	return t.EndMS - t.StartMS
}

// WordTiming is one recognized word from the original recording.
// The full sequence is time-ordered and read-only.
type WordTiming struct {
	Word    string
	StartMS int64
	EndMS   int64
}

// MatchResult is the outcome of aligning one segment's text against the
// word timings that fall inside its window.
type MatchResult struct {
	Matched    []WordTiming
	Unmatched  []string
	Confidence float64 // matched tokens / total tokens, 0..1
	TokenCount int
}

type Strategy string

const (
	STATIC     Strategy = "STATIC"
	WORD_LEVEL Strategy = "WORD_LEVEL"
	ELASTIC    Strategy = "ELASTIC"
)

type Action string

const (
	ACCEPTED  Action = "ACCEPTED"
	STRETCHED Action = "STRETCHED"
	PADDED    Action = "PADDED"
	TRIMMED   Action = "TRIMMED"
)

// SegmentPlan carries one segment's timing decisions across the passes.
// Raw fields are set in pass 1, SmoothedRatePercent in pass 2.
type SegmentPlan struct {
	SegmentIndex        int
	TargetStartMS       int64
	TargetEndMS         int64
	RawRatePercent      int
	SmoothedRatePercent int
	Confidence          float64
	Strategy            Strategy
	Text                string
	Speaker             string
	VoiceID             string
	MatchedCount        int
	TokenCount          int
}

func (p SegmentPlan) TargetDurationMS() int64 {
	return p.TargetEndMS - p.TargetStartMS
}

// SegmentOutcome records what happened to one segment after synthesis
// and reconciliation.
type SegmentOutcome struct {
	SegmentIndex       int
	ProducedDurationMS int64
	TargetDurationMS   int64
	FinalDurationMS    int64
	ActionTaken        Action
	DurationErrorMS    int64
	AudioFile          string
	SynthesisFailed    bool
}
