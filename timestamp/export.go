package timestamp

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

const (
	// Grouping breaks on a silence longer than this.
	groupGapMS = int64(1000)
	// Or when a group would exceed this duration.
	groupMaxMS = int64(5000)
)

// GroupWords clusters a word timing sequence into phrase-sized spans,
// breaking on long silences and capping span duration. Useful for
// turning raw recognizer output into reviewable cues.
func GroupWords(words []input.WordTiming) []input.TimedSegment {
	var results []input.TimedSegment
	var texts []string
	var startMS, endMS int64
	flush := func() {
		if len(texts) == 0 {
			return
		}
		results = append(results, input.TimedSegment{
			Index:   len(results),
			StartMS: startMS,
			EndMS:   endMS,
			Text:    strings.Join(texts, " "),
		})
		texts = nil
	}
	for _, word := range words {
		if len(texts) > 0 {
			gap := word.StartMS - endMS
			if gap > groupGapMS || word.EndMS-startMS > groupMaxMS {
				flush()
			}
		}
		if len(texts) == 0 {
			startMS = word.StartMS
		}
		texts = append(texts, word.Word)
		endMS = word.EndMS
	}
	flush()
	return results
}

// ExportJSON writes word timings in the same shape LoadWordTimings
// reads, so timing data round-trips between runs.
func ExportJSON(ctx context.Context, words []input.WordTiming, filePath string) *log.Status {
	type record struct {
		Word    string `json:"word"`
		StartMS int64  `json:"start_ms"`
		EndMS   int64  `json:"end_ms"`
	}
	records := make([]record, 0, len(words))
	for _, word := range words {
		records = append(records, record{Word: word.Word, StartMS: word.StartMS, EndMS: word.EndMS})
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return log.Error(ctx, 500, err, "Error encoding word timings")
	}
	err = os.WriteFile(filePath, content, 0644)
	if err != nil {
		return log.Error(ctx, 500, err, "Error writing word timings", filePath)
	}
	return nil
}

func ExportCSV(ctx context.Context, words []input.WordTiming, filePath string) *log.Status {
	file, err := os.Create(filePath)
	if err != nil {
		return log.Error(ctx, 500, err, "Error creating word timings file", filePath)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	_ = writer.Write([]string{"word", "start_ms", "end_ms"})
	for _, word := range words {
		err = writer.Write([]string{word.Word,
			strconv.FormatInt(word.StartMS, 10), strconv.FormatInt(word.EndMS, 10)})
		if err != nil {
			return log.Error(ctx, 500, err, "Error writing word timings", filePath)
		}
	}
	writer.Flush()
	if writer.Error() != nil {
		return log.Error(ctx, 500, writer.Error(), "Error writing word timings", filePath)
	}
	return nil
}

// ExportVTT writes grouped word spans as WebVTT cues.
func ExportVTT(ctx context.Context, words []input.WordTiming, filePath string) *log.Status {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for _, segment := range GroupWords(words) {
		sb.WriteString(fmt.Sprintf("%s --> %s\n%s\n\n",
			vttTime(segment.StartMS), vttTime(segment.EndMS), segment.Text))
	}
	err := os.WriteFile(filePath, []byte(sb.String()), 0644)
	if err != nil {
		return log.Error(ctx, 500, err, "Error writing VTT file", filePath)
	}
	return nil
}

// ExportSRT writes grouped word spans as SubRip cues, usable as a
// starting subtitle file when none exists.
func ExportSRT(ctx context.Context, words []input.WordTiming, filePath string) *log.Status {
	return input.WriteSRT(ctx, filePath, GroupWords(words))
}

func vttTime(ms int64) string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
