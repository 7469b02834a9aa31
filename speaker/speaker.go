package speaker

import (
	"strings"
	"unicode"

	"github.com/leakydata/srt-voiceover/input"
)

// continuationWords are leading words that signal a segment is the same
// speaker carrying on, used when no explicit label is present.
var continuationWords = map[string]bool{
	"and": true, "but": true, "so": true, "or": true, "because": true,
	"that": true, "they": true, "it": true, "this": true, "there": true,
	"here": true,
}

// ParseSpeaker extracts a leading "Name: text" label from subtitle text.
// Returns the speaker name ("" if none) and the text without the label.
func ParseSpeaker(rawText string) (string, string) {
	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	name, rest, found := strings.Cut(lines[0], ":")
	if found {
		name = strings.TrimSpace(name)
		if IsSpeakerName(name) {
			content := []string{}
			if rest = strings.TrimSpace(rest); rest != "" {
				content = append(content, rest)
			}
			content = append(content, lines[1:]...)
			return name, strings.Join(content, " ")
		}
	}
	return "", strings.Join(lines, " ")
}

// InferSpeaker decides whether unlabeled text continues the previous
// speaker. It is a pure function over a static pattern table: text that
// opens with a continuation word or a lowercase letter is treated as the
// previous speaker carrying on. Returns "" when nothing can be inferred.
func InferSpeaker(text string, prevSpeaker string) string {
	if prevSpeaker == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	firstWord := strings.ToLower(strings.Fields(text)[0])
	firstWord = strings.TrimFunc(firstWord, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if continuationWords[firstWord] {
		return prevSpeaker
	}
	if unicode.IsLower(rune(text[0])) {
		return prevSpeaker
	}
	return ""
}

// IsSpeakerName reports whether a string looks like a speaker label:
// uppercase first letter, alphabetic apart from spaces and hyphens, and
// of sensible length. Rejects URLs and timecodes.
func IsSpeakerName(name string) bool {
	if name == "" || len(name) > 30 {
		return false
	}
	if strings.Contains(name, "://") {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return false
		}
	}
	return true
}

// Resolve fills in the Speaker field on each segment, parsing explicit
// labels out of the text and inferring continuations. Segment text is
// rewritten without the label. Returns a new slice; the input is not
// modified.
func Resolve(segments []input.TimedSegment) []input.TimedSegment {
	results := make([]input.TimedSegment, len(segments))
	var prevSpeaker string
	for i, seg := range segments {
		name, text := ParseSpeaker(seg.Text)
		if name == "" && seg.Speaker != "" {
			name = seg.Speaker
		}
		if name == "" {
			name = InferSpeaker(text, prevSpeaker)
		}
		seg.Speaker = name
		seg.Text = text
		results[i] = seg
		if name != "" {
			prevSpeaker = name
		}
	}
	return results
}

// Stats summarizes the speakers found in a segment sequence.
type Stats struct {
	TotalSegments    int
	Labeled          int
	Unlabeled        int
	SpeakerCounts    map[string]int
	PrimarySpeaker   string
	MultipleSpeakers bool
}

func GetStats(segments []input.TimedSegment) Stats {
	stats := Stats{
		TotalSegments: len(segments),
		SpeakerCounts: make(map[string]int),
	}
	for _, seg := range segments {
		if seg.Speaker == "" {
			stats.Unlabeled++
			continue
		}
		stats.Labeled++
		stats.SpeakerCounts[seg.Speaker]++
	}
	maxCount := 0
	for name, count := range stats.SpeakerCounts {
		if count > maxCount || (count == maxCount && name < stats.PrimarySpeaker) {
			maxCount = count
			stats.PrimarySpeaker = name
		}
	}
	stats.MultipleSpeakers = len(stats.SpeakerCounts) > 1
	return stats
}
