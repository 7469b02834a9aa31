package speaker

import (
	"testing"

	"github.com/leakydata/srt-voiceover/input"
)

func TestParseSpeaker(t *testing.T) {
	tests := []struct {
		raw     string
		speaker string
		text    string
	}{
		{"Nathan: Essentially, there aren't really", "Nathan", "Essentially, there aren't really"},
		{"Mary Jane: Hello\nthere", "Mary Jane", "Hello there"},
		{"No speaker here.", "", "No speaker here."},
		{"https://example.com: not a speaker", "", "https://example.com: not a speaker"},
		{"lowercase: not a speaker", "", "lowercase: not a speaker"},
		{"", "", ""},
	}
	for _, tc := range tests {
		speaker, text := ParseSpeaker(tc.raw)
		if speaker != tc.speaker {
			t.Errorf("ParseSpeaker(%q) speaker = %q, want %q", tc.raw, speaker, tc.speaker)
		}
		if text != tc.text {
			t.Errorf("ParseSpeaker(%q) text = %q, want %q", tc.raw, text, tc.text)
		}
	}
}

func TestInferSpeaker(t *testing.T) {
	if got := InferSpeaker("and then we left.", "Nathan"); got != "Nathan" {
		t.Errorf("continuation word should keep speaker, got %q", got)
	}
	if got := InferSpeaker("without any capital", "Nathan"); got != "Nathan" {
		t.Errorf("lowercase opening should keep speaker, got %q", got)
	}
	if got := InferSpeaker("Welcome to a new topic.", "Nathan"); got != "" {
		t.Errorf("new sentence should not infer, got %q", got)
	}
	if got := InferSpeaker("and more", ""); got != "" {
		t.Errorf("no previous speaker should infer nothing, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	segments := []input.TimedSegment{
		{Index: 0, StartMS: 0, EndMS: 1000, Text: "Nathan: We started early."},
		{Index: 1, StartMS: 1000, EndMS: 2000, Text: "and kept going."},
		{Index: 2, StartMS: 2000, EndMS: 3000, Text: "Maria: Not quite."},
	}
	resolved := Resolve(segments)
	if resolved[0].Speaker != "Nathan" || resolved[0].Text != "We started early." {
		t.Errorf("unexpected first segment: %+v", resolved[0])
	}
	if resolved[1].Speaker != "Nathan" {
		t.Errorf("expected continuation to inherit Nathan, got %q", resolved[1].Speaker)
	}
	if resolved[2].Speaker != "Maria" {
		t.Errorf("expected Maria, got %q", resolved[2].Speaker)
	}
	if segments[0].Text != "Nathan: We started early." {
		t.Error("Resolve must not modify its input")
	}
}

func TestGetStats(t *testing.T) {
	segments := []input.TimedSegment{
		{Speaker: "Nathan"}, {Speaker: "Nathan"}, {Speaker: "Maria"}, {},
	}
	stats := GetStats(segments)
	if stats.TotalSegments != 4 || stats.Labeled != 3 || stats.Unlabeled != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.PrimarySpeaker != "Nathan" {
		t.Errorf("expected Nathan primary, got %q", stats.PrimarySpeaker)
	}
	if !stats.MultipleSpeakers {
		t.Error("expected multiple speakers")
	}
}
