package decode_yaml

import (
	"context"
	"strings"
	"testing"
)

const goodRequest = `
dataset_name: demo run
username: tester
subtitle_file: demo.srt
word_timings_file: demo_words.json
audio_output: demo.wav
default_voice: en-US-GuyNeural
speaker_voices:
  NARRATOR: en-GB-RyanNeural
  MARY: en-US-JennyNeural
delivery:
  s3_bucket: my-output-bucket
notify_ok:
  - tester@example.com
`

func TestDecodeGoodRequest(t *testing.T) {
	decoder := NewRequestDecoder(context.Background())
	req, status := decoder.Process([]byte(goodRequest))
	if status != nil {
		t.Fatal(status)
	}
	if req.DatasetName != "demo_run" {
		t.Errorf("spaces should become underscores, got %q", req.DatasetName)
	}
	if req.SpeakerVoices["MARY"] != "en-US-JennyNeural" {
		t.Errorf("speaker voice map not decoded: %v", req.SpeakerVoices)
	}
	if req.Delivery.S3Bucket != "my-output-bucket" {
		t.Errorf("delivery not decoded: %v", req.Delivery)
	}
	if req.TranslateEnabled() {
		t.Error("translate should be off when no target language is set")
	}
}

func TestDecodeMissingRequired(t *testing.T) {
	decoder := NewRequestDecoder(context.Background())
	_, status := decoder.Process([]byte("dataset_name: x\n"))
	if status == nil {
		t.Fatal("expected validation errors")
	}
	if status.Status != 400 {
		t.Errorf("expected 400, got %d", status.Status)
	}
	for _, field := range []string{"username", "subtitle_file", "audio_output"} {
		if !strings.Contains(status.Message, field) {
			t.Errorf("expected %s error in %q", field, status.Message)
		}
	}
}

func TestDecodeDefaultVoiceApplied(t *testing.T) {
	decoder := NewRequestDecoder(context.Background())
	req, status := decoder.Process([]byte(
		"dataset_name: a\nusername: b\nsubtitle_file: c.srt\naudio_output: d.wav\n"))
	if status != nil {
		t.Fatal(status)
	}
	if req.DefaultVoice == "" {
		t.Error("default voice should be filled in")
	}
}

func TestDecodeBadSNSTopic(t *testing.T) {
	decoder := NewRequestDecoder(context.Background())
	_, status := decoder.Process([]byte(
		"dataset_name: a\nusername: b\nsubtitle_file: c.srt\naudio_output: d.wav\n" +
			"delivery:\n  sns_topic: not-an-arn\n"))
	if status == nil {
		t.Fatal("expected ARN validation error")
	}
}

func TestDecodeMalformedYAML(t *testing.T) {
	decoder := NewRequestDecoder(context.Background())
	_, status := decoder.Process([]byte(":\n  - ]["))
	if status == nil {
		t.Fatal("expected decode error")
	}
}
