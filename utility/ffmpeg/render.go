package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	log "github.com/leakydata/srt-voiceover/logger"
)

// Editor performs the audio edits the reconciliation step needs:
// duration probing, pitch-preserving time stretch, tail padding, tail
// trimming, silence generation, and concatenation. Intermediate files
// land in tempDir.
type Editor struct {
	ctx     context.Context
	tempDir string
}

func NewEditor(ctx context.Context, tempDir string) *Editor {
	return &Editor{ctx: ctx, tempDir: tempDir}
}

func (e *Editor) DurationMS(audioFile string) (int64, *log.Status) {
	return GetAudioDurationMS(e.ctx, audioFile)
}

// TimeStretch changes an audio file's duration by ratio (>1 makes it
// longer) without changing pitch, using ffmpeg's atempo filter. atempo
// takes a tempo factor, the inverse of the duration ratio, and supports
// 0.5 to 2.0; ratios outside that range are an error here, not a crash
// in ffmpeg.
func (e *Editor) TimeStretch(audioFile string, ratio float64) (string, *log.Status) {
	if ratio <= 0 {
		return "", log.ErrorNoErr(e.ctx, 400, fmt.Sprintf("Invalid stretch ratio %.3f", ratio))
	}
	tempo := 1.0 / ratio
	if tempo < 0.5 || tempo > 2.0 {
		return "", log.ErrorNoErr(e.ctx, 400,
			fmt.Sprintf("Stretch ratio %.3f is outside the supported atempo range", ratio))
	}
	outputFile := e.tempFile("stretch")
	err := ffmpeg.Input(audioFile).Output(outputFile, ffmpeg.KwArgs{
		"af": fmt.Sprintf("atempo=%.6f", tempo),
		"y":  "",
	}).Silent(true).OverWriteOutput().Run()
	if err != nil {
		return "", log.Error(e.ctx, 500, err, "Error stretching audio", audioFile)
	}
	return outputFile, nil
}

// PadTail appends silenceMS of silence to the end of the file.
func (e *Editor) PadTail(audioFile string, silenceMS int64) (string, *log.Status) {
	if silenceMS <= 0 {
		return audioFile, nil
	}
	outputFile := e.tempFile("pad")
	err := ffmpeg.Input(audioFile).Output(outputFile, ffmpeg.KwArgs{
		"af": fmt.Sprintf("apad=pad_dur=%.3f", float64(silenceMS)/1000.0),
		"y":  "",
	}).Silent(true).OverWriteOutput().Run()
	if err != nil {
		return "", log.Error(e.ctx, 500, err, "Error padding audio", audioFile)
	}
	return outputFile, nil
}

// TrimTail cuts the file down to keepMS, removing trailing audio only.
func (e *Editor) TrimTail(audioFile string, keepMS int64) (string, *log.Status) {
	outputFile := e.tempFile("trim")
	err := ffmpeg.Input(audioFile).Output(outputFile, ffmpeg.KwArgs{
		"t": fmt.Sprintf("%.3f", float64(keepMS)/1000.0),
		"y": "",
	}).Silent(true).OverWriteOutput().Run()
	if err != nil {
		return "", log.Error(e.ctx, 500, err, "Error trimming audio", audioFile)
	}
	return outputFile, nil
}

// Silence generates a mono silent file of the given duration.
func (e *Editor) Silence(durationMS int64) (string, *log.Status) {
	outputFile := e.tempFile("silence")
	err := ffmpeg.Input("anullsrc=r=44100:cl=mono", ffmpeg.KwArgs{
		"f": "lavfi",
	}).Output(outputFile, ffmpeg.KwArgs{
		"t":      fmt.Sprintf("%.3f", float64(durationMS)/1000.0),
		"acodec": "pcm_s16le",
		"y":      "",
	}).Silent(true).OverWriteOutput().Run()
	if err != nil {
		return "", log.Error(e.ctx, 500, err, "Error generating silence")
	}
	return outputFile, nil
}

// Concat joins the files in order into outputFile using the concat
// demuxer, re-encoding so mixed sources are tolerated.
func (e *Editor) Concat(files []string, outputFile string) *log.Status {
	if len(files) == 0 {
		return log.ErrorNoErr(e.ctx, 400, "No audio files to concatenate")
	}
	var sb strings.Builder
	for _, file := range files {
		absolute, err := filepath.Abs(file)
		if err != nil {
			return log.Error(e.ctx, 500, err, "Error resolving path", file)
		}
		sb.WriteString("file '")
		sb.WriteString(absolute)
		sb.WriteString("'\n")
	}
	listFile := e.tempFile("concat") + ".txt"
	err := os.WriteFile(listFile, []byte(sb.String()), 0644)
	if err != nil {
		return log.Error(e.ctx, 500, err, "Error writing concat list")
	}
	err = ffmpeg.Input(listFile, ffmpeg.KwArgs{
		"f":    "concat",
		"safe": "0",
	}).Output(outputFile, ffmpeg.KwArgs{
		"y": "",
	}).Silent(true).OverWriteOutput().Run()
	if err != nil {
		return log.Error(e.ctx, 500, err, "Error concatenating audio")
	}
	return nil
}

func (e *Editor) tempFile(prefix string) string {
	return filepath.Join(e.tempDir, fmt.Sprintf("%s_%d.wav", prefix, time.Now().UnixNano()))
}
