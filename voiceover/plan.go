package voiceover

import (
	"github.com/leakydata/srt-voiceover/align"
	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
	"github.com/leakydata/srt-voiceover/rate"
	"github.com/leakydata/srt-voiceover/speaker"
	"github.com/leakydata/srt-voiceover/voice"
)

// Plan runs the timing passes: align each segment's text against the
// recognized words, derive a clamped rate, widen strained windows with
// neighboring silence, then smooth rates across consecutive segments.
// Input validation failures abort the run; an empty or useless word
// timing list does not, it just degrades every segment to static pace.
func (v *Voiceover) Plan(segments []input.TimedSegment, words []input.WordTiming) ([]input.SegmentPlan, *log.Status) {
	status := input.ValidateSegments(v.ctx, segments)
	if status != nil {
		return nil, status
	}
	status = input.ValidateWordTimings(v.ctx, words)
	if status != nil {
		return nil, status
	}
	segments = speaker.Resolve(segments)
	aligner := align.NewWordAligner(v.ctx)
	expander := rate.NewWindowExpander()
	plans := make([]input.SegmentPlan, len(segments))
	for i, seg := range segments {
		voiceID := voice.VoiceForSpeaker(seg.Speaker, v.options.SpeakerVoices, v.options.DefaultVoice)
		profile := voice.GetProfile(voiceID)
		minRate, maxRate := effectiveBounds(profile)
		plan := input.SegmentPlan{
			SegmentIndex:  seg.Index,
			TargetStartMS: seg.StartMS,
			TargetEndMS:   seg.EndMS,
			Text:          seg.Text,
			Speaker:       seg.Speaker,
			VoiceID:       voiceID,
		}
		match := aligner.Align(seg, words)
		plan = rate.PlanRate(plan, match, profile.BaselineWPM, minRate, maxRate)
		prevEndMS := int64(-1)
		if i > 0 {
			prevEndMS = segments[i-1].EndMS
		}
		nextStartMS := int64(-1)
		if i < len(segments)-1 {
			nextStartMS = segments[i+1].StartMS
		}
		plan = expander.Expand(plan, prevEndMS, nextStartMS, profile.BaselineWPM, minRate, maxRate)
		plans[i] = plan
	}
	plans = rate.Smooth(plans, rate.DefaultMaxDeltaPercent)
	return plans, nil
}

// effectiveBounds intersects the engine's default clamp with what the
// voice itself can sustain.
func effectiveBounds(profile voice.Profile) (int, int) {
	minRate := rate.DefaultMinRate
	if profile.MinRate > minRate {
		minRate = profile.MinRate
	}
	maxRate := rate.DefaultMaxRate
	if profile.MaxRate < maxRate {
		maxRate = profile.MaxRate
	}
	return minRate, maxRate
}
