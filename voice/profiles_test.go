package voice

import "testing"

func TestGetProfileKnown(t *testing.T) {
	profile := GetProfile("en-US-AndrewMultilingualNeural")
	if profile.BaselineWPM != 155 {
		t.Errorf("expected baseline 155, got %f", profile.BaselineWPM)
	}
	if profile.MinRate != -35 || profile.MaxRate != 35 {
		t.Errorf("unexpected rate bounds: %d..%d", profile.MinRate, profile.MaxRate)
	}
}

func TestGetProfileUnknown(t *testing.T) {
	profile := GetProfile("xx-XX-NobodyNeural")
	if profile.BaselineWPM != 150 {
		t.Errorf("expected default baseline 150, got %f", profile.BaselineWPM)
	}
	if profile.DisplayName != "xx-XX-NobodyNeural" {
		t.Errorf("expected voice id as display name, got %q", profile.DisplayName)
	}
}

func TestVoiceForSpeaker(t *testing.T) {
	voices := map[string]string{"Nathan": "en-US-GuyNeural"}
	if got := VoiceForSpeaker("Nathan", voices, "en-GB-RyanNeural"); got != "en-US-GuyNeural" {
		t.Errorf("expected mapped voice, got %q", got)
	}
	if got := VoiceForSpeaker("Maria", voices, "en-GB-RyanNeural"); got != "en-GB-RyanNeural" {
		t.Errorf("expected default voice, got %q", got)
	}
	if got := VoiceForSpeaker("", nil, ""); got != DefaultVoice {
		t.Errorf("expected built-in default, got %q", got)
	}
}

func TestListVoicesOrdered(t *testing.T) {
	voices := ListVoices()
	if len(voices) < 10 {
		t.Fatalf("expected profile table, got %d entries", len(voices))
	}
	for i := 1; i < len(voices); i++ {
		if voices[i].VoiceID < voices[i-1].VoiceID {
			t.Fatalf("voices not ordered at %d: %s < %s", i, voices[i].VoiceID, voices[i-1].VoiceID)
		}
	}
}
