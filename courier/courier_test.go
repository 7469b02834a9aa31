package courier

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleRequest = `dataset_name: demo_film
username: tester
subtitle_file: demo.srt
audio_output: demo.wav
`

func TestNewCourierParsesRequest(t *testing.T) {
	ctx := context.Background()
	c := NewCourier(ctx, []byte(sampleRequest))
	if c.username != "tester" {
		t.Error("username should be tester, it is:", c.username)
	}
	if c.dataset != "demo_film" {
		t.Error("dataset should be demo_film, it is:", c.dataset)
	}
}

func TestParseYamlMissingField(t *testing.T) {
	c := NewCourier(context.Background(), []byte("dataset_name: x\n"))
	if c.username != "unknown-username" {
		t.Errorf("missing field should yield placeholder, got %q", c.username)
	}
}

func TestParseYamlLastLineNoNewline(t *testing.T) {
	c := NewCourier(context.Background(), []byte("dataset_name: x\nusername: final"))
	if c.username != "final" {
		t.Errorf("field on unterminated last line not parsed: %q", c.username)
	}
}

func TestAddOutputsAndFilter(t *testing.T) {
	c := NewCourier(context.Background(), []byte(sampleRequest))
	c.AddOutput("run/report.json")
	c.AddOutput("run/report.xlsx")
	c.AddOutput("run/track.wav")
	c.AddOutput("")
	if len(c.GetOutputPaths()) != 3 {
		t.Errorf("empty path should be skipped, have %v", c.GetOutputPaths())
	}
	wavs := c.GetOutputByExt(".wav")
	if len(wavs) != 1 || wavs[0] != "run/track.wav" {
		t.Errorf("extension filter failed: %v", wavs)
	}
}

func TestAddJson(t *testing.T) {
	c := NewCourier(context.Background(), []byte(sampleRequest))
	filePath := filepath.Join(t.TempDir(), "summary.json")
	c.AddJson(map[string]int{"total_segments": 12}, filePath)
	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) == 0 {
		t.Error("json output is empty")
	}
	if len(c.GetOutputPaths()) != 1 {
		t.Error("json file should be registered as an output")
	}
}

func TestCreateKey(t *testing.T) {
	c := NewCourier(context.Background(), []byte(sampleRequest))
	key := c.createKey(3, "output", "/tmp/work/track.wav")
	if key != "tester/demo_film/00003/output/track.wav" {
		t.Errorf("key %q", key)
	}
}

// PersistToBucket and Notification are guarded by testing.Testing() so
// they no-op here unless IsUnitTest is set against a real bucket.
func TestPersistToBucketSkipsInTests(t *testing.T) {
	c := NewCourier(context.Background(), []byte(sampleRequest))
	c.AddOutput("does_not_exist.wav")
	if status := c.PersistToBucket(); status != nil {
		t.Fatal(status)
	}
	if status := c.Notification(nil, 0, []string{"a@example.com"}, nil); status != nil {
		t.Fatal(status)
	}
}
