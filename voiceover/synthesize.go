package voiceover

import (
	"sync"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
	"github.com/leakydata/srt-voiceover/reconcile"
)

// Synthesize renders each planned segment and reconciles its duration
// against the target window, using a bounded worker pool. A failed
// synthesis is recovered by substituting silence of the target duration
// and marking the outcome, so one bad segment never aborts the run.
// Only an unrecoverable editor failure returns a status.
func (v *Voiceover) Synthesize(plans []input.SegmentPlan) ([]input.SegmentOutcome, []string, *log.Status) {
	outcomes := make([]input.SegmentOutcome, len(plans))
	audioFiles := make([]string, len(plans))
	statuses := make([]*log.Status, len(plans))
	reconciler := reconcile.NewReconciler(v.ctx, v.editor)
	var wg sync.WaitGroup
	limit := make(chan struct{}, v.options.Concurrency)
	for i := range plans {
		wg.Add(1)
		limit <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-limit }()
			outcomes[i], audioFiles[i], statuses[i] = v.processSegment(&reconciler, plans[i])
		}(i)
	}
	wg.Wait()
	for _, status := range statuses {
		if status != nil {
			return outcomes, audioFiles, status
		}
	}
	return outcomes, audioFiles, nil
}

func (v *Voiceover) processSegment(reconciler *reconcile.Reconciler,
	plan input.SegmentPlan) (input.SegmentOutcome, string, *log.Status) {
	result, status := v.synthesizer.Synthesize(plan.Text, plan.VoiceID, plan.SmoothedRatePercent)
	if status != nil {
		log.Warn(v.ctx, "Synthesis failed for segment", plan.SegmentIndex,
			"substituting silence:", status.Message)
		return v.silencePlaceholder(plan)
	}
	decision := reconciler.Decide(result.DurationMS, plan.TargetDurationMS())
	audioFile, outcome, status := reconciler.Apply(v.editor, decision, result.AudioFile,
		result.DurationMS, plan.TargetDurationMS())
	if status != nil {
		return outcome, audioFile, status
	}
	outcome.SegmentIndex = plan.SegmentIndex
	outcome.AudioFile = audioFile
	return outcome, audioFile, nil
}

// silencePlaceholder keeps the track timeline intact when a segment
// cannot be synthesized.
func (v *Voiceover) silencePlaceholder(plan input.SegmentPlan) (input.SegmentOutcome, string, *log.Status) {
	targetMS := plan.TargetDurationMS()
	audioFile, status := v.editor.Silence(targetMS)
	if status != nil {
		return input.SegmentOutcome{}, "", status
	}
	outcome := input.SegmentOutcome{
		SegmentIndex:     plan.SegmentIndex,
		TargetDurationMS: targetMS,
		FinalDurationMS:  targetMS,
		ActionTaken:      input.PADDED,
		AudioFile:        audioFile,
		SynthesisFailed:  true,
	}
	return outcome, audioFile, nil
}
