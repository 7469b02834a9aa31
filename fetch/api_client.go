package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	log "github.com/leakydata/srt-voiceover/logger"
)

// GetOllamaHost returns the Ollama base host from environment variable
// or default.
func GetOllamaHost() string {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		return "http://localhost:11434"
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	host = strings.TrimRight(host, "/")
	return host
}

func HttpGet(ctx context.Context, url string, desc string) ([]byte, *log.Status) {
	var body []byte
	resp, err := http.Get(url)
	if err != nil {
		return body, log.Error(ctx, 0, err, "Error in HTTP request for:", desc)
	}
	defer resp.Body.Close()
	if resp.Status[0] != '2' {
		return body, log.ErrorNoErr(ctx, resp.StatusCode, resp.Status, desc)
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return body, log.Error(ctx, resp.StatusCode, err, "Error reading HTTP response for:", desc)
	}
	return body, nil
}

func HttpPostJSON(ctx context.Context, url string, request []byte, desc string) ([]byte, *log.Status) {
	var body []byte
	resp, err := http.Post(url, "application/json", bytes.NewReader(request))
	if err != nil {
		return body, log.Error(ctx, 0, err, "Error in HTTP request for:", desc)
	}
	defer resp.Body.Close()
	if resp.Status[0] != '2' {
		return body, log.ErrorNoErr(ctx, resp.StatusCode, resp.Status, desc)
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return body, log.Error(ctx, resp.StatusCode, err, "Error reading HTTP response for:", desc)
	}
	return body, nil
}
