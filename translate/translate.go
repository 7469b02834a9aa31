package translate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/leakydata/srt-voiceover/fetch"
	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

const DefaultModel = "llama3.1"

// Translator rewrites segment text into a target language through a
// local Ollama server before synthesis. Timing windows and speaker
// labels pass through untouched.
type Translator struct {
	ctx            context.Context
	host           string
	model          string
	targetLanguage string
}

func NewTranslator(ctx context.Context, model string, targetLanguage string) Translator {
	var t Translator
	t.ctx = ctx
	t.host = fetch.GetOllamaHost()
	t.model = model
	if t.model == "" {
		t.model = DefaultModel
	}
	t.targetLanguage = targetLanguage
	return t
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// TranslateSegments returns a new slice with each segment's text
// translated. A failure on one segment aborts; partial translation
// would desynchronize the voice track from the subtitles.
func (t *Translator) TranslateSegments(segments []input.TimedSegment) ([]input.TimedSegment, *log.Status) {
	results := make([]input.TimedSegment, len(segments))
	for i, seg := range segments {
		translated, status := t.TranslateText(seg.Text)
		if status != nil {
			return nil, status
		}
		seg.Text = translated
		results[i] = seg
	}
	log.Info(t.ctx, "Translated", len(results), "segments to", t.targetLanguage)
	return results, nil
}

func (t *Translator) TranslateText(text string) (string, *log.Status) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	request := generateRequest{
		Model:  t.model,
		Prompt: t.BuildPrompt(text),
		Stream: false,
	}
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return "", log.Error(t.ctx, 500, err, "Error encoding translation request")
	}
	body, status := fetch.HttpPostJSON(t.ctx, t.host+"/api/generate", requestJSON, "translation")
	if status != nil {
		return "", status
	}
	var response generateResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return "", log.Error(t.ctx, 500, err, "Error parsing translation response")
	}
	result := strings.TrimSpace(response.Response)
	if result == "" {
		return "", log.ErrorNoErr(t.ctx, 500, "Empty translation for:", text)
	}
	return result, nil
}

// BuildPrompt instructs the model to return only the translated line.
// Names and interjections stay as they are so speaker attribution in
// the text is not lost.
func (t *Translator) BuildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Translate the following subtitle line to ")
	sb.WriteString(t.targetLanguage)
	sb.WriteString(". Keep proper names unchanged. Reply with only the translation, no explanation.\n\n")
	sb.WriteString(text)
	return sb.String()
}
