package input

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/leakydata/srt-voiceover/logger"
)

// ParseSRT reads a SubRip subtitle file into ordered TimedSegments.
// Multi-line cue text is joined with single spaces. Cue numbers in the
// file are ignored; Index is assigned by position.
func ParseSRT(ctx context.Context, filePath string) ([]TimedSegment, *log.Status) {
	var results []TimedSegment
	file, err := os.Open(filePath)
	if err != nil {
		return results, log.Error(ctx, 400, err, "Unable to open SRT file", filePath)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimPrefix(scanner.Text(), "\uFEFF"))
	}
	if err = scanner.Err(); err != nil {
		return results, log.Error(ctx, 400, err, "Error reading SRT file", filePath)
	}
	lines = append(lines, "") // ensure final cue is flushed
	var textLines []string
	var startMS, endMS int64 = -1, -1
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if startMS >= 0 && len(textLines) > 0 {
				results = append(results, TimedSegment{
					Index:   len(results),
					StartMS: startMS,
					EndMS:   endMS,
					Text:    strings.Join(textLines, " "),
				})
			}
			textLines = nil
			startMS, endMS = -1, -1
			continue
		}
		if strings.Contains(trimmed, "-->") {
			var status *log.Status
			startMS, endMS, status = parseTimeRange(ctx, trimmed)
			if status != nil {
				return results, status
			}
			continue
		}
		if startMS < 0 {
			continue // cue number line
		}
		textLines = append(textLines, trimmed)
	}
	return results, nil
}

// WriteSRT writes segments back out as a SubRip file.
func WriteSRT(ctx context.Context, filePath string, segments []TimedSegment) *log.Status {
	var sb strings.Builder
	for i, seg := range segments {
		text := seg.Text
		if seg.Speaker != "" {
			text = seg.Speaker + ": " + text
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString("\n")
		sb.WriteString(FormatSRTTime(seg.StartMS))
		sb.WriteString(" --> ")
		sb.WriteString(FormatSRTTime(seg.EndMS))
		sb.WriteString("\n")
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	err := os.WriteFile(filePath, []byte(sb.String()), 0644)
	if err != nil {
		return log.Error(ctx, 500, err, "Unable to write SRT file", filePath)
	}
	return nil
}

func parseTimeRange(ctx context.Context, line string) (int64, int64, *log.Status) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, log.ErrorNoErr(ctx, 400, "Malformed SRT time range:", line)
	}
	startMS, err := ParseSRTTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, log.Error(ctx, 400, err, "Malformed SRT start time:", line)
	}
	endMS, err := ParseSRTTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, log.Error(ctx, 400, err, "Malformed SRT end time:", line)
	}
	return startMS, endMS, nil
}

// ParseSRTTime converts HH:MM:SS,mmm to milliseconds. A period is
// accepted in place of the comma.
func ParseSRTTime(value string) (int64, error) {
	value = strings.Replace(value, ".", ",", 1)
	main, msPart, found := strings.Cut(value, ",")
	if !found {
		return 0, fmt.Errorf("missing millisecond separator in %q", value)
	}
	fields := strings.Split(main, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("expected HH:MM:SS in %q", value)
	}
	hours, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, err
	}
	millis, err := strconv.Atoi(msPart)
	if err != nil {
		return 0, err
	}
	return int64(hours)*3600000 + int64(minutes)*60000 + int64(seconds)*1000 + int64(millis), nil
}

// FormatSRTTime converts milliseconds to HH:MM:SS,mmm.
func FormatSRTTime(ms int64) string {
	hours := ms / 3600000
	ms -= hours * 3600000
	minutes := ms / 60000
	ms -= minutes * 60000
	seconds := ms / 1000
	ms -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}
