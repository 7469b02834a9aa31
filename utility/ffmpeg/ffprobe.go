package ffmpeg

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	log "github.com/leakydata/srt-voiceover/logger"
)

type ProbeData struct {
	Format ProbeFormat `json:"format"`
}

type ProbeFormat struct {
	Filename       string `json:"filename"`
	NBStreams      int    `json:"nb_streams"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	StartTime      string `json:"start_time"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
	ProbeScore     int    `json:"probe_score"`
}

// GetAudioDurationMS returns an audio file's duration in milliseconds.
func GetAudioDurationMS(ctx context.Context, filePath string) (int64, *log.Status) {
	seconds, status := GetAudioDuration(ctx, filePath)
	if status != nil {
		return 0, status
	}
	return int64(seconds * 1000.0), nil
}

func GetAudioDuration(ctx context.Context, filePath string) (float64, *log.Status) {
	var result float64
	probeData, status := GetProbeData(ctx, filePath)
	if status != nil {
		return result, status
	}
	duration := strings.TrimSpace(probeData.Format.Duration)
	if duration == "" {
		return result, log.ErrorNoErr(ctx, 500, "No duration reported by probe for", filePath)
	}
	var err error
	result, err = strconv.ParseFloat(duration, 64)
	if err != nil {
		return result, log.Error(ctx, 500, err, "Data conversion error in ffmpeg.GetAudioDuration")
	}
	return result, nil
}

func GetAudioSize(ctx context.Context, filePath string) (float64, *log.Status) {
	var result float64
	probeData, status := GetProbeData(ctx, filePath)
	if status != nil {
		return result, status
	}
	var err error
	result, err = strconv.ParseFloat(probeData.Format.Size, 64)
	if err != nil {
		return result, log.Error(ctx, 500, err, "Data conversion error in ffmpeg.GetAudioSize")
	}
	return result, nil
}

func GetProbeData(ctx context.Context, filePath string) (ProbeData, *log.Status) {
	var result ProbeData
	data, err := ffmpeg.Probe(filePath)
	if err != nil {
		return result, log.Error(ctx, 500, err, "Error in ffmpeg.GetProbeData", filePath)
	}
	err = json.Unmarshal([]byte(data), &result)
	if err != nil {
		return result, log.Error(ctx, 500, err, "Error in ffmpeg.GetProbeData", filePath)
	}
	return result, nil
}
