package decode_yaml

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leakydata/srt-voiceover/decode_yaml/request"
	log "github.com/leakydata/srt-voiceover/logger"
)

// RequestDecoder parses and validates one YAML job request. Validation
// problems accumulate so the submitter sees all of them at once.
type RequestDecoder struct {
	ctx    context.Context
	errors []string
}

func NewRequestDecoder(ctx context.Context) RequestDecoder {
	var r RequestDecoder
	r.ctx = ctx
	return r
}

// Process decodes and validates the request in one step.
func (r *RequestDecoder) Process(yamlContent []byte) (request.Request, *log.Status) {
	req, status := r.Decode(yamlContent)
	if status != nil {
		return req, status
	}
	r.Validate(&req)
	return req, r.Errors()
}

func (r *RequestDecoder) Decode(yamlContent []byte) (request.Request, *log.Status) {
	var req request.Request
	err := yaml.Unmarshal(yamlContent, &req)
	if err != nil {
		return req, log.Error(r.ctx, 400, err, "Error decoding YAML request")
	}
	return req, nil
}

// Errors folds accumulated validation messages into one status, or nil
// when the request was clean.
func (r *RequestDecoder) Errors() *log.Status {
	if len(r.errors) == 0 {
		return nil
	}
	return log.ErrorNoErr(r.ctx, 400, strings.Join(r.errors, "; "))
}
