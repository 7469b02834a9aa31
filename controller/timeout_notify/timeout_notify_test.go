package timeout_notify

import (
	"context"
	"testing"
	"time"

	log "github.com/leakydata/srt-voiceover/logger"
)

func TestRunCompletesBeforeTimeout(t *testing.T) {
	watchdog := NewTimeoutNotify(context.Background(), "fast-job", nil)
	status := watchdog.Run(time.Second, func(ctx context.Context) *log.Status {
		return nil
	})
	if status != nil {
		t.Fatal(status)
	}
}

func TestRunReturnsJobError(t *testing.T) {
	watchdog := NewTimeoutNotify(context.Background(), "bad-job", nil)
	status := watchdog.Run(time.Second, func(ctx context.Context) *log.Status {
		return log.ErrorNoErr(ctx, 500, "boom")
	})
	if status == nil || status.Status != 500 {
		t.Fatalf("expected job error, got %v", status)
	}
}

func TestRunContinuesPastAlert(t *testing.T) {
	watchdog := NewTimeoutNotify(context.Background(), "slow-job", nil)
	start := time.Now()
	status := watchdog.Run(10*time.Millisecond, func(ctx context.Context) *log.Status {
		time.Sleep(50 * time.Millisecond)
		return nil
	})
	if status != nil {
		t.Fatal(status)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("job should run to completion after the alert")
	}
}
