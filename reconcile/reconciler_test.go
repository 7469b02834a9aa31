package reconcile

import (
	"context"
	"testing"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

type fakeStretcher struct {
	fail   bool
	called int
	ratio  float64
}

func (f *fakeStretcher) TimeStretch(audioFile string, ratio float64) (string, *log.Status) {
	f.called++
	f.ratio = ratio
	if f.fail {
		return "", log.ErrorNoErr(context.Background(), 500, "ratio unsupported")
	}
	return audioFile + ".stretched", nil
}

type fakeEditor struct {
	durationMS int64
}

func (f *fakeEditor) DurationMS(audioFile string) (int64, *log.Status) {
	return f.durationMS, nil
}

func (f *fakeEditor) PadTail(audioFile string, silenceMS int64) (string, *log.Status) {
	return audioFile + ".padded", nil
}

func (f *fakeEditor) TrimTail(audioFile string, keepMS int64) (string, *log.Status) {
	return audioFile + ".trimmed", nil
}

func TestDecideAccepted(t *testing.T) {
	r := NewReconciler(context.Background(), &fakeStretcher{})
	decision := r.Decide(4900, 5000)
	if decision.Action != input.ACCEPTED {
		t.Errorf("within tolerance should accept, got %s", decision.Action)
	}
}

func TestDecideStretch(t *testing.T) {
	r := NewReconciler(context.Background(), &fakeStretcher{})
	decision := r.Decide(4200, 5000)
	if decision.Action != input.STRETCHED {
		t.Fatalf("expected STRETCHED, got %s", decision.Action)
	}
	if decision.StretchRatio < 1.189 || decision.StretchRatio > 1.191 {
		t.Errorf("expected ratio 1.190, got %f", decision.StretchRatio)
	}
}

func TestDecidePadOutOfBounds(t *testing.T) {
	r := NewReconciler(context.Background(), &fakeStretcher{})
	// Ratio 1.67 is outside the safe stretch range.
	decision := r.Decide(3000, 5000)
	if decision.Action != input.PADDED {
		t.Errorf("expected PADDED, got %s", decision.Action)
	}
}

func TestDecideTrimOutOfBounds(t *testing.T) {
	r := NewReconciler(context.Background(), &fakeStretcher{})
	decision := r.Decide(8000, 5000)
	if decision.Action != input.TRIMMED {
		t.Errorf("expected TRIMMED, got %s", decision.Action)
	}
}

func TestDecideNoStretcherFallsBack(t *testing.T) {
	r := NewReconciler(context.Background(), nil)
	decision := r.Decide(4200, 5000)
	if decision.Action != input.PADDED {
		t.Errorf("without stretch capability expected PADDED, got %s", decision.Action)
	}
}

func TestDecideStretchOnlyInsideBounds(t *testing.T) {
	r := NewReconciler(context.Background(), &fakeStretcher{})
	for producedMS := int64(1000); producedMS <= 10000; producedMS += 250 {
		decision := r.Decide(producedMS, 5000)
		if decision.Action == input.STRETCHED {
			if decision.StretchRatio < DefaultMinStretchRatio || decision.StretchRatio > DefaultMaxStretchRatio {
				t.Errorf("stretch chosen at unsafe ratio %f for produced %d", decision.StretchRatio, producedMS)
			}
		}
	}
}

func TestApplyPad(t *testing.T) {
	r := NewReconciler(context.Background(), nil)
	editor := &fakeEditor{}
	file, outcome, status := r.Apply(editor, Decision{Action: input.PADDED}, "seg.wav", 3000, 5000)
	if status != nil {
		t.Fatalf("Apply failed: %s", status)
	}
	if file != "seg.wav.padded" {
		t.Errorf("expected padded file, got %s", file)
	}
	if outcome.FinalDurationMS != 5000 || outcome.DurationErrorMS != 0 {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
}

func TestApplyStretchFallsBackToTrim(t *testing.T) {
	stretcher := &fakeStretcher{fail: true}
	r := NewReconciler(context.Background(), stretcher)
	editor := &fakeEditor{}
	decision := r.Decide(5800, 5000)
	if decision.Action != input.STRETCHED {
		t.Fatalf("fixture expects STRETCHED, got %s", decision.Action)
	}
	file, outcome, status := r.Apply(editor, decision, "seg.wav", 5800, 5000)
	if status != nil {
		t.Fatalf("Apply failed: %s", status)
	}
	if stretcher.called != 1 {
		t.Errorf("stretcher should be tried once, called %d", stretcher.called)
	}
	if outcome.ActionTaken != input.TRIMMED {
		t.Errorf("expected fallback TRIMMED, got %s", outcome.ActionTaken)
	}
	if file != "seg.wav.trimmed" {
		t.Errorf("expected trimmed file, got %s", file)
	}
}

func TestApplyStretch(t *testing.T) {
	stretcher := &fakeStretcher{}
	r := NewReconciler(context.Background(), stretcher)
	editor := &fakeEditor{durationMS: 4980}
	decision := r.Decide(4200, 5000)
	file, outcome, status := r.Apply(editor, decision, "seg.wav", 4200, 5000)
	if status != nil {
		t.Fatalf("Apply failed: %s", status)
	}
	if file != "seg.wav.stretched" {
		t.Errorf("expected stretched file, got %s", file)
	}
	if outcome.DurationErrorMS != 20 {
		t.Errorf("expected residual error 20ms, got %d", outcome.DurationErrorMS)
	}
}
