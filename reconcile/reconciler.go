package reconcile

import (
	"context"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

const (
	// DefaultToleranceMS is the duration mismatch accepted without
	// any correction.
	DefaultToleranceMS = int64(150)
	// Safe pitch-preserving stretch range. Outside it the audio
	// degrades audibly and padding or trimming is used instead.
	DefaultMinStretchRatio = 0.80
	DefaultMaxStretchRatio = 1.25
)

// Stretcher is the external pitch-preserving time-stretch capability.
// It reads the audio file, stretches it by ratio (values above 1 make
// it longer), and returns the path of the stretched file. It may fail
// for ratios its implementation does not support.
type Stretcher interface {
	TimeStretch(audioFile string, ratio float64) (string, *log.Status)
}

// Decision is the reconciliation verdict for one segment before any
// audio is touched.
type Decision struct {
	Action       input.Action
	StretchRatio float64 // set when Action == STRETCHED
}

// Reconciler compares produced audio duration against the target window
// and selects accept, stretch, pad, or trim.
type Reconciler struct {
	ctx             context.Context
	toleranceMS     int64
	minStretchRatio float64
	maxStretchRatio float64
	stretcher       Stretcher // nil when the capability is unavailable
}

func NewReconciler(ctx context.Context, stretcher Stretcher) Reconciler {
	var r Reconciler
	r.ctx = ctx
	r.toleranceMS = DefaultToleranceMS
	r.minStretchRatio = DefaultMinStretchRatio
	r.maxStretchRatio = DefaultMaxStretchRatio
	r.stretcher = stretcher
	return r
}

// Decide selects the action for a produced duration against a target
// duration. Stretch is chosen only when the ratio lies within the safe
// bounds and a stretcher is available; otherwise short audio is padded
// and long audio is trimmed from the tail.
func (r *Reconciler) Decide(producedMS int64, targetMS int64) Decision {
	diff := targetMS - producedMS
	if diff >= -r.toleranceMS && diff <= r.toleranceMS {
		return Decision{Action: input.ACCEPTED}
	}
	if producedMS > 0 && r.stretcher != nil {
		ratio := float64(targetMS) / float64(producedMS)
		if ratio >= r.minStretchRatio && ratio <= r.maxStretchRatio {
			return Decision{Action: input.STRETCHED, StretchRatio: ratio}
		}
	}
	if producedMS < targetMS {
		return Decision{Action: input.PADDED}
	}
	return Decision{Action: input.TRIMMED}
}

// Apply executes a decision on the produced audio file and returns the
// final file, its duration, and the outcome record. A stretch that the
// external capability rejects falls back to pad or trim. Trimming only
// removes trailing audio; leading audio is never dropped.
func (r *Reconciler) Apply(audio AudioEditor, decision Decision, audioFile string,
	producedMS int64, targetMS int64) (string, input.SegmentOutcome, *log.Status) {
	outcome := input.SegmentOutcome{
		ProducedDurationMS: producedMS,
		TargetDurationMS:   targetMS,
		ActionTaken:        decision.Action,
	}
	switch decision.Action {
	case input.ACCEPTED:
		outcome.FinalDurationMS = producedMS
	case input.STRETCHED:
		stretched, status := r.stretcher.TimeStretch(audioFile, decision.StretchRatio)
		if status != nil {
			// StretchOutOfRange or any other stretch failure is
			// recovered locally by pad or trim.
			log.Warn(r.ctx, "Time stretch failed, falling back", status.Message)
			fallback := Decision{Action: input.PADDED}
			if producedMS > targetMS {
				fallback.Action = input.TRIMMED
			}
			return r.Apply(audio, fallback, audioFile, producedMS, targetMS)
		}
		audioFile = stretched
		durationMS, status := audio.DurationMS(audioFile)
		if status != nil {
			return audioFile, outcome, status
		}
		outcome.FinalDurationMS = durationMS
	case input.PADDED:
		padded, status := audio.PadTail(audioFile, targetMS-producedMS)
		if status != nil {
			return audioFile, outcome, status
		}
		audioFile = padded
		outcome.FinalDurationMS = targetMS
	case input.TRIMMED:
		trimmed, status := audio.TrimTail(audioFile, targetMS)
		if status != nil {
			return audioFile, outcome, status
		}
		audioFile = trimmed
		outcome.FinalDurationMS = targetMS
	}
	outcome.DurationErrorMS = absInt64(outcome.FinalDurationMS - targetMS)
	return audioFile, outcome, nil
}

// AudioEditor is the narrow audio capability the reconciler needs
// beyond stretching.
type AudioEditor interface {
	DurationMS(audioFile string) (int64, *log.Status)
	PadTail(audioFile string, silenceMS int64) (string, *log.Status)
	TrimTail(audioFile string, keepMS int64) (string, *log.Status)
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
