package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/leakydata/srt-voiceover/logger"
	"github.com/leakydata/srt-voiceover/utility/ffmpeg"
	"github.com/leakydata/srt-voiceover/utility/stdio_exec"
)

// EdgeTTSAdapter synthesizes speech through an edge-tts Python helper
// driven over JSON stdio, one request line per segment. The bridge is a
// single pipe, so concurrent callers are serialized here.
type EdgeTTSAdapter struct {
	ctx      context.Context
	bridge   *stdio_exec.StdioExec
	tempDir  string
	sequence int
	mutex    sync.Mutex
}

func NewEdgeTTSAdapter(ctx context.Context) (*EdgeTTSAdapter, *log.Status) {
	adapter := &EdgeTTSAdapter{ctx: ctx}
	var err error
	adapter.tempDir, err = os.MkdirTemp(os.Getenv("SRT_VOICEOVER_TMP"), "edge_tts_")
	if err != nil {
		return nil, log.Error(ctx, 500, err, "Error creating temp directory for TTS")
	}
	goproj := os.Getenv("GOPROJ")
	if goproj == "" {
		return nil, log.ErrorNoErr(ctx, 500, "GOPROJ environment variable not set")
	}
	pythonScript := filepath.Join(goproj, "tts/python/edge_tts_bridge.py")
	if _, err = os.Stat(pythonScript); os.IsNotExist(err) {
		return nil, log.Error(ctx, 500, err, "Python script not found", pythonScript)
	}
	pythonEnv := os.Getenv("SRT_VOICEOVER_PYTHON")
	if pythonEnv == "" {
		pythonEnv = "python3"
	}
	var status *log.Status
	adapter.bridge, status = stdio_exec.NewStdioExec(ctx, pythonEnv, pythonScript)
	if status != nil {
		return nil, status
	}
	return adapter, nil
}

type bridgeRequest struct {
	Text       string `json:"text"`
	Voice      string `json:"voice"`
	Rate       string `json:"rate"`
	OutputPath string `json:"output_path"`
}

type bridgeResponse struct {
	OutputPath string `json:"output_path"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error"`
}

func (a *EdgeTTSAdapter) Synthesize(text string, voiceID string, ratePercent int) (SynthResult, *log.Status) {
	var result SynthResult
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.sequence++
	request := bridgeRequest{
		Text:       text,
		Voice:      voiceID,
		Rate:       fmt.Sprintf("%+d%%", ratePercent),
		OutputPath: filepath.Join(a.tempDir, fmt.Sprintf("tts_%04d.wav", a.sequence)),
	}
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return result, log.Error(a.ctx, 500, err, "Error marshalling TTS request")
	}
	responseJSON, status := a.bridge.Process(string(requestJSON))
	if status != nil {
		return result, status
	}
	var response bridgeResponse
	err = json.Unmarshal([]byte(responseJSON), &response)
	if err != nil {
		return result, log.Error(a.ctx, 500, err, "Error parsing TTS response", responseJSON)
	}
	if response.Error != "" {
		return result, log.ErrorNoErr(a.ctx, 500, "TTS generation error:", response.Error)
	}
	if response.OutputPath == "" {
		return result, log.ErrorNoErr(a.ctx, 500, "TTS response missing output_path")
	}
	result.AudioFile = response.OutputPath
	result.DurationMS = response.DurationMS
	if result.DurationMS == 0 {
		result.DurationMS, status = ffmpeg.GetAudioDurationMS(a.ctx, result.AudioFile)
		if status != nil {
			return result, status
		}
	}
	return result, nil
}

func (a *EdgeTTSAdapter) Close() {
	if a.bridge != nil {
		a.bridge.Close()
	}
}
