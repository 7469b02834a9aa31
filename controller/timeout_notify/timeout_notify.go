package timeout_notify

import (
	"context"
	"fmt"
	"time"

	"github.com/leakydata/srt-voiceover/courier"
	log "github.com/leakydata/srt-voiceover/logger"
)

// TimeoutNotify runs a job under a deadline and emails an alert when
// the deadline passes. The job keeps running after the alert; synthesis
// of a long film legitimately takes hours and the alert is a heads-up,
// not a kill.
type TimeoutNotify struct {
	ctx        context.Context
	jobName    string
	recipients []string
}

func NewTimeoutNotify(ctx context.Context, jobName string, recipients []string) TimeoutNotify {
	var t TimeoutNotify
	t.ctx = ctx
	t.jobName = jobName
	t.recipients = recipients
	return t
}

// Run executes job, alerting once if it outlives timeout.
func (t *TimeoutNotify) Run(timeout time.Duration, job func(ctx context.Context) *log.Status) *log.Status {
	done := make(chan *log.Status, 1)
	go func() {
		done <- job(t.ctx)
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	alert := timer.C
	for {
		select {
		case status := <-done:
			return status
		case <-alert:
			t.sendAlert(fmt.Sprintf("Job %s has been running longer than %v", t.jobName, timeout))
			alert = nil // alert once
		}
	}
}

func (t *TimeoutNotify) sendAlert(message string) {
	log.Warn(t.ctx, message)
	if len(t.recipients) > 0 {
		subject := "SLOW: " + t.jobName
		status := courier.SendEmail(t.ctx, t.recipients, subject, message, nil)
		if status != nil {
			log.Warn(t.ctx, "Unable to send timeout alert:", status.Message)
		}
	}
}
