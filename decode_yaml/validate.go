package decode_yaml

import (
	"strings"

	"github.com/leakydata/srt-voiceover/decode_yaml/request"
	log "github.com/leakydata/srt-voiceover/logger"
	"github.com/leakydata/srt-voiceover/voice"
)

func (r *RequestDecoder) Validate(req *request.Request) {
	r.checkRequired(req)
	r.checkVoices(req)
	r.checkDelivery(&req.Delivery)
	if req.Concurrency < 0 {
		r.errors = append(r.errors, `concurrency: must not be negative`)
	}
}

func (r *RequestDecoder) checkRequired(req *request.Request) {
	if req.DatasetName == `` {
		r.errors = append(r.errors, `Required field dataset_name: is empty`)
	}
	if req.Username == `` {
		r.errors = append(r.errors, `Required field username: is empty`)
	}
	if req.SubtitleFile == `` {
		r.errors = append(r.errors, `Required field subtitle_file: is empty`)
	}
	if req.AudioOutput == `` {
		r.errors = append(r.errors, `Required field audio_output: is empty`)
	}
	req.DatasetName = strings.Replace(req.DatasetName, ` `, `_`, -1)
}

// checkVoices warns on voices without a profile rather than rejecting
// them. An unknown voice still synthesizes; it just runs on default
// pacing assumptions.
func (r *RequestDecoder) checkVoices(req *request.Request) {
	if req.DefaultVoice == `` {
		req.DefaultVoice = voice.DefaultVoice
	}
	r.warnUnknownVoice(req.DefaultVoice)
	for speaker, voiceID := range req.SpeakerVoices {
		if voiceID == `` {
			r.errors = append(r.errors, `speaker_voices: empty voice for speaker `+speaker)
			continue
		}
		r.warnUnknownVoice(voiceID)
	}
}

func (r *RequestDecoder) warnUnknownVoice(voiceID string) {
	profile := voice.GetProfile(voiceID)
	if profile.DisplayName == voiceID {
		log.Warn(r.ctx, "No voice profile for", voiceID, "using default pacing")
	}
}

func (r *RequestDecoder) checkDelivery(delivery *request.Delivery) {
	if delivery.SNSTopic != `` && !strings.HasPrefix(delivery.SNSTopic, `arn:`) {
		r.errors = append(r.errors, `delivery.sns_topic: must be a topic ARN`)
	}
}
