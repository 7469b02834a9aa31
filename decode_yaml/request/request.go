package request

// Request is one voiceover job as submitted in YAML.
type Request struct {
	DatasetName     string            `yaml:"dataset_name"`
	Username        string            `yaml:"username"`
	SubtitleFile    string            `yaml:"subtitle_file"`
	WordTimingsFile string            `yaml:"word_timings_file"`
	AudioOutput     string            `yaml:"audio_output"`
	DefaultVoice    string            `yaml:"default_voice"`
	SpeakerVoices   map[string]string `yaml:"speaker_voices"`
	Concurrency     int               `yaml:"concurrency"`
	Translate       Translate         `yaml:"translate"`
	Delivery        Delivery          `yaml:"delivery"`
	NotifyOk        []string          `yaml:"notify_ok"`
	NotifyErr       []string          `yaml:"notify_err"`
}

// Translate, when a target language is set, routes segment text through
// the translation step before synthesis.
type Translate struct {
	TargetLanguage string `yaml:"target_language"`
	Model          string `yaml:"model"`
}

// Delivery selects where run outputs go beyond the local filesystem.
type Delivery struct {
	S3Bucket string `yaml:"s3_bucket"`
	SNSTopic string `yaml:"sns_topic"`
	SQSQueue string `yaml:"sqs_queue"`
}

func (r *Request) TranslateEnabled() bool {
	return r.Translate.TargetLanguage != ""
}
