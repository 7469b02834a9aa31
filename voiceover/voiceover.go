package voiceover

import (
	"context"

	"github.com/leakydata/srt-voiceover/db"
	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
	"github.com/leakydata/srt-voiceover/quality"
	"github.com/leakydata/srt-voiceover/reconcile"
	"github.com/leakydata/srt-voiceover/tts"
)

// DefaultConcurrency bounds the synthesis worker pool.
const DefaultConcurrency = 4

// AudioEditor is the audio capability surface the engine needs: the
// reconciler's edits plus silence generation and concatenation for
// track assembly. ffmpeg.Editor is the production implementation.
type AudioEditor interface {
	reconcile.AudioEditor
	TimeStretch(audioFile string, ratio float64) (string, *log.Status)
	Silence(durationMS int64) (string, *log.Status)
	Concat(files []string, outputFile string) *log.Status
}

// Options configures one voiceover run.
type Options struct {
	DefaultVoice  string
	SpeakerVoices map[string]string
	Concurrency   int
	OutputPath    string
}

// Voiceover drives a run: plan timing against the original recording,
// synthesize each segment, reconcile durations, assemble the track,
// and report quality.
type Voiceover struct {
	ctx         context.Context
	conn        *db.DBAdapter // nil skips persistence
	synthesizer tts.Synthesizer
	editor      AudioEditor
	options     Options
}

func NewVoiceover(ctx context.Context, conn *db.DBAdapter, synthesizer tts.Synthesizer,
	editor AudioEditor, options Options) Voiceover {
	if options.Concurrency <= 0 {
		options.Concurrency = DefaultConcurrency
	}
	return Voiceover{
		ctx:         ctx,
		conn:        conn,
		synthesizer: synthesizer,
		editor:      editor,
		options:     options,
	}
}

// RunResult is what a completed run hands back: the frozen quality
// report and the assembled audio track.
type RunResult struct {
	Report    *quality.Report
	TrackFile string
	Plans     []input.SegmentPlan
	Outcomes  []input.SegmentOutcome
}

// ProcessRun executes the full pipeline. Only malformed input or a
// report inconsistency abort; every other condition degrades into the
// report, so a successful return always carries one audio file per
// segment and a complete report.
func (v *Voiceover) ProcessRun(segments []input.TimedSegment, words []input.WordTiming) (RunResult, *log.Status) {
	var result RunResult
	plans, status := v.Plan(segments, words)
	if status != nil {
		return result, status
	}
	if v.conn != nil {
		if status = v.conn.InsertSegments(segments); status != nil {
			return result, status
		}
		if status = v.conn.InsertWordTimings(words); status != nil {
			return result, status
		}
		if status = v.conn.InsertPlans(plans); status != nil {
			return result, status
		}
	}
	outcomes, audioFiles, status := v.Synthesize(plans)
	if status != nil {
		return result, status
	}
	if v.conn != nil {
		if status = v.conn.InsertOutcomes(outcomes); status != nil {
			return result, status
		}
	}
	reporter := quality.NewReporter(v.ctx, len(plans))
	for i := range plans {
		reporter.Record(plans[i], outcomes[i])
	}
	result.Report, status = reporter.Finalize()
	if status != nil {
		return result, status
	}
	if v.options.OutputPath != "" {
		status = v.AssembleTrack(plans, outcomes, audioFiles, v.options.OutputPath)
		if status != nil {
			return result, status
		}
		result.TrackFile = v.options.OutputPath
	}
	result.Plans = plans
	result.Outcomes = outcomes
	log.Info(v.ctx, "Run complete:", len(plans), "segments,",
		result.Report.Summary.CountFlagged, "flagged")
	return result, nil
}
