package tts

import (
	log "github.com/leakydata/srt-voiceover/logger"
)

// SynthResult is the audio produced for one segment.
type SynthResult struct {
	AudioFile  string
	DurationMS int64
}

// Synthesizer renders text with a voice at a signed rate percentage
// relative to the voice's baseline pace. Implementations are external
// engines; a call may fail without affecting engine state, and failures
// are recovered per segment by the caller.
type Synthesizer interface {
	Synthesize(text string, voiceID string, ratePercent int) (SynthResult, *log.Status)
	Close()
}
