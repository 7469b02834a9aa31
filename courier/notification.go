package courier

import (
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	log "github.com/leakydata/srt-voiceover/logger"
)

const presignExpiry = 7 * 24 * time.Hour // SigV4 maximum

// Notification emails the run result to the requester. notifyOk gets
// success mail with presigned links to the outputs, notifyErr gets
// failure mail with the error trace. Either list may be empty.
func (c *Courier) Notification(status *log.Status, duration time.Duration,
	notifyOk []string, notifyErr []string) *log.Status {
	var st *log.Status
	if !testing.Testing() || c.IsUnitTest {
		if status == nil {
			if len(notifyOk) > 0 {
				st = SendEmail(c.ctx, notifyOk, "SUCCESS: "+c.dataset, c.successMsg(duration), nil)
			}
		} else {
			if len(notifyErr) > 0 {
				st = SendEmail(c.ctx, notifyErr, "FAILED: "+c.dataset,
					c.failureMsg(status, duration), []string{c.logFile})
			}
		}
	}
	return st
}

func (c *Courier) failureMsg(status *log.Status, duration time.Duration) string {
	var message []string
	message = append(message, "FAILED: "+c.dataset)
	message = append(message, status.Message)
	message = append(message, "Duration: "+duration.String())
	message = append(message, status.Trace)
	return strings.Join(message, "\n")
}

func (c *Courier) successMsg(duration time.Duration) string {
	var message []string
	message = append(message, "SUCCESS: "+c.dataset)
	message = append(message, "Duration: "+duration.String())
	client, status := c.presignClient()
	if status == nil {
		for i, output := range c.outputs {
			message = append(message, output)
			if i < len(c.outputKeys) {
				signedURL := c.genPresignedURL(client, c.outputKeys[i])
				message = append(message, signedURL)
			}
		}
	}
	return strings.Join(message, "\n")
}

func (c *Courier) presignClient() (*s3.PresignClient, *log.Status) {
	cfg, err := config.LoadDefaultConfig(c.ctx, config.WithRegion("us-west-2"))
	if err != nil {
		return nil, log.Error(c.ctx, 500, err, "unable to create S3 presign client")
	}
	return s3.NewPresignClient(s3.NewFromConfig(cfg)), nil
}

func (c *Courier) genPresignedURL(client *s3.PresignClient, key string) string {
	input := &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	}
	request, err := client.PresignGetObject(c.ctx, input,
		s3.WithPresignExpires(presignExpiry))
	if err != nil {
		log.Warn(c.ctx, err, "unable to sign URL for", key)
		return ""
	}
	return request.URL
}
