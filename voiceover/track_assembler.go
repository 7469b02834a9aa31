package voiceover

import (
	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

// AssembleTrack lays the segment audio files onto a single timeline,
// generating silence for the gaps between target windows, and
// concatenates everything into outputFile. Windows widened during
// planning already consumed their borrowed silence, so the gaps here
// are computed from the planned windows and the final durations.
func (v *Voiceover) AssembleTrack(plans []input.SegmentPlan, outcomes []input.SegmentOutcome,
	audioFiles []string, outputFile string) *log.Status {
	if len(plans) != len(outcomes) || len(plans) != len(audioFiles) {
		return log.ErrorNoErr(v.ctx, 500, "Track assembly input lengths do not agree")
	}
	var track []string
	var positionMS int64
	for i := range plans {
		gapMS := plans[i].TargetStartMS - positionMS
		if gapMS > 0 {
			silenceFile, status := v.editor.Silence(gapMS)
			if status != nil {
				return status
			}
			track = append(track, silenceFile)
			positionMS += gapMS
		} else if gapMS < 0 {
			log.Debug(v.ctx, "Segment", plans[i].SegmentIndex, "starts", -gapMS,
				"ms before the current track position")
		}
		track = append(track, audioFiles[i])
		positionMS += outcomes[i].FinalDurationMS
	}
	if len(track) == 0 {
		return log.ErrorNoErr(v.ctx, 400, "No segments to assemble")
	}
	return v.editor.Concat(track, outputFile)
}
