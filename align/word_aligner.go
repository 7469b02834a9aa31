package align

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

const (
	// DefaultThreshold is the minimum similarity for a token to accept a
	// candidate word.
	DefaultThreshold = 0.70
	// DefaultSlackMS widens the candidate window on both sides so words
	// recognized slightly outside the segment boundary still qualify.
	DefaultSlackMS = int64(300)
)

var (
	asideRegexp = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	tokenRegexp = regexp.MustCompile(`[\p{L}']+`)
)

// WordAligner matches recognized words against segment text, tolerant
// of spelling and punctuation drift between transcript and subtitle.
type WordAligner struct {
	ctx       context.Context
	threshold float64
	slackMS   int64
	dmp       *diffmatchpatch.DiffMatchPatch
}

func NewWordAligner(ctx context.Context) WordAligner {
	var w WordAligner
	w.ctx = ctx
	w.threshold = DefaultThreshold
	w.slackMS = DefaultSlackMS
	w.dmp = diffmatchpatch.New()
	return w
}

func (w *WordAligner) SetThreshold(threshold float64) {
	w.threshold = threshold
}

// Align matches the segment's tokens against word timings whose start
// falls within the segment window plus slack. Each candidate is used at
// most once. Confidence is the fraction of tokens matched; a segment
// with no tokens needs no timing justification and scores 1.0.
func (w *WordAligner) Align(segment input.TimedSegment, wordTimings []input.WordTiming) input.MatchResult {
	var result input.MatchResult
	tokens := Tokenize(segment.Text)
	result.TokenCount = len(tokens)
	if len(tokens) == 0 {
		result.Confidence = 1.0
		return result
	}
	windowStart := segment.StartMS - w.slackMS
	windowEnd := segment.EndMS + w.slackMS
	var candidates []input.WordTiming
	for _, word := range wordTimings {
		if word.StartMS >= windowStart && word.StartMS <= windowEnd {
			candidates = append(candidates, word)
		}
	}
	if len(candidates) == 0 {
		log.Debug(w.ctx, "No candidate words in window", segment.StartMS, segment.EndMS)
		result.Unmatched = tokens
		return result
	}
	used := make([]bool, len(candidates))
	for _, token := range tokens {
		bestIndex := -1
		bestScore := 0.0
		for i, candidate := range candidates {
			if used[i] {
				continue
			}
			score := w.Similarity(token, candidate.Word)
			if score > bestScore {
				bestScore = score
				bestIndex = i
			}
		}
		if bestIndex >= 0 && bestScore >= w.threshold {
			used[bestIndex] = true
			result.Matched = append(result.Matched, candidates[bestIndex])
		} else {
			result.Unmatched = append(result.Unmatched, token)
		}
	}
	result.Confidence = float64(len(result.Matched)) / float64(len(tokens))
	return result
}

// Similarity scores two words in [0,1] by normalized edit distance.
// Contraction variants are treated as equivalent: the apostrophe-free
// forms are compared as well and the better score wins.
func (w *WordAligner) Similarity(a string, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0.0
	}
	score := w.editRatio(a, b)
	if strings.ContainsRune(a, '\'') || strings.ContainsRune(b, '\'') {
		plain := w.editRatio(
			strings.ReplaceAll(a, "'", ""),
			strings.ReplaceAll(b, "'", ""))
		if plain > score {
			score = plain
		}
	}
	return score
}

func (w *WordAligner) editRatio(a string, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 0.0
	}
	diffs := w.dmp.DiffMain(a, b, false)
	distance := w.dmp.DiffLevenshtein(diffs)
	return 1.0 - float64(distance)/float64(maxLen)
}

// Tokenize splits segment text into matchable words: parenthetical and
// bracketed asides are dropped, punctuation is stripped, contractions
// are kept whole.
func Tokenize(text string) []string {
	text = asideRegexp.ReplaceAllString(text, " ")
	return tokenRegexp.FindAllString(text, -1)
}
