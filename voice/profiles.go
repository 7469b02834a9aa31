package voice

import "sort"

// Profile holds the speaking characteristics of one TTS voice: its
// natural pace and the rate adjustment range it can sustain without
// sounding strained.
type Profile struct {
	VoiceID     string
	DisplayName string
	BaselineWPM float64
	MinRate     int // percent, negative slows down
	MaxRate     int // percent, positive speeds up
}

// DefaultVoice is used when a job names no voice and a speaker has no
// mapping.
const DefaultVoice = "en-US-AndrewMultilingualNeural"

var profiles = map[string]Profile{
	"en-US-AndrewMultilingualNeural": {DisplayName: "Andrew (US Male, Multilingual)", BaselineWPM: 155, MinRate: -35, MaxRate: 35},
	"en-US-GuyNeural":                {DisplayName: "Guy (US Male)", BaselineWPM: 150, MinRate: -40, MaxRate: 40},
	"en-US-EmmaMultilingualNeural":   {DisplayName: "Emma (US Female, Multilingual)", BaselineWPM: 160, MinRate: -40, MaxRate: 40},
	"en-US-JennyNeural":              {DisplayName: "Jenny (US Female)", BaselineWPM: 165, MinRate: -35, MaxRate: 35},
	"en-US-AriaNeural":               {DisplayName: "Aria (US Female)", BaselineWPM: 158, MinRate: -38, MaxRate: 38},
	"en-GB-RyanNeural":               {DisplayName: "Ryan (UK Male)", BaselineWPM: 145, MinRate: -40, MaxRate: 35},
	"en-GB-LibbyNeural":              {DisplayName: "Libby (UK Female)", BaselineWPM: 150, MinRate: -40, MaxRate: 35},
	"en-AU-DuncanNeural":             {DisplayName: "Duncan (AU Male)", BaselineWPM: 152, MinRate: -35, MaxRate: 35},
	"en-AU-NatashaNeural":            {DisplayName: "Natasha (AU Female)", BaselineWPM: 155, MinRate: -35, MaxRate: 35},
	"en-IN-NeerjaNeural":             {DisplayName: "Neerja (India Female)", BaselineWPM: 160, MinRate: -30, MaxRate: 40},
	"en-IN-PrabhatNeural":            {DisplayName: "Prabhat (India Male)", BaselineWPM: 158, MinRate: -35, MaxRate: 35},
	"es-ES-AlvaroNeural":             {DisplayName: "Alvaro (Spain Male)", BaselineWPM: 148, MinRate: -40, MaxRate: 35},
	"es-MX-JorgeNeural":              {DisplayName: "Jorge (Mexico Male)", BaselineWPM: 155, MinRate: -35, MaxRate: 40},
	"fr-FR-HenriNeural":              {DisplayName: "Henri (France Male)", BaselineWPM: 140, MinRate: -40, MaxRate: 35},
	"fr-FR-DeniseNeural":             {DisplayName: "Denise (France Female)", BaselineWPM: 145, MinRate: -40, MaxRate: 35},
	"de-DE-KayanNeural":              {DisplayName: "Kayan (Germany Male)", BaselineWPM: 135, MinRate: -40, MaxRate: 30},
	"it-IT-DiegoNeural":              {DisplayName: "Diego (Italy Male)", BaselineWPM: 150, MinRate: -35, MaxRate: 35},
	"ja-JP-KeitaNeural":              {DisplayName: "Keita (Japan Male)", BaselineWPM: 130, MinRate: -30, MaxRate: 40},
	"zh-CN-YunxiNeural":              {DisplayName: "Yunxi (China Male)", BaselineWPM: 125, MinRate: -30, MaxRate: 40},
}

// GetProfile returns the profile for a voice, or a safe default profile
// when the voice is unknown.
func GetProfile(voiceID string) Profile {
	profile, ok := profiles[voiceID]
	if !ok {
		return Profile{
			VoiceID:     voiceID,
			DisplayName: voiceID,
			BaselineWPM: 150,
			MinRate:     -35,
			MaxRate:     35,
		}
	}
	profile.VoiceID = voiceID
	return profile
}

// VoiceForSpeaker resolves a speaker label to a voice id using the job's
// speaker-to-voice map, falling back to the default voice.
func VoiceForSpeaker(speaker string, speakerVoices map[string]string, defaultVoice string) string {
	if defaultVoice == "" {
		defaultVoice = DefaultVoice
	}
	if speaker != "" {
		if voiceID, ok := speakerVoices[speaker]; ok {
			return voiceID
		}
	}
	return defaultVoice
}

// ListVoices returns all known profiles ordered by voice id.
func ListVoices() []Profile {
	var results []Profile
	for voiceID := range profiles {
		results = append(results, GetProfile(voiceID))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].VoiceID < results[j].VoiceID
	})
	return results
}
