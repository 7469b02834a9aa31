package courier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/leakydata/srt-voiceover/db"
	log "github.com/leakydata/srt-voiceover/logger"
)

// Courier collects the artifacts of one voiceover run (audio track,
// quality reports, run database, log) and delivers them to the S3
// bucket under username/dataset/run, then notifies the requester.
type Courier struct {
	ctx         context.Context
	IsUnitTest  bool // set true by bucket integration tests
	start       time.Time
	bucket      string
	username    string
	dataset     string
	run         int
	yamlContent string
	logFile     string
	databases   []string
	outputs     []string
	outputKeys  []string
}

func NewCourier(ctx context.Context, yamlContent []byte) Courier {
	var c Courier
	c.ctx = ctx
	c.start = time.Now()
	c.bucket = os.Getenv("SRT_VOICEOVER_BUCKET")
	c.yamlContent = string(yamlContent)
	c.username = c.parseYaml(`username`)
	c.dataset = c.parseYaml(`dataset_name`)
	logDir := os.Getenv("SRT_VOICEOVER_LOG_DIR")
	if logDir != `` {
		c.AddPerJobLogFile(logDir)
	}
	return c
}

// AddPerJobLogFile creates a new log file for this job, named so files
// sort by start time, and points a latest.log symlink at it.
func (c *Courier) AddPerJobLogFile(logDir string) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn(c.ctx, "Failed to create log directory:", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	jobLogFile := filepath.Join(logDir, fmt.Sprintf("%s-%s-%s.log",
		timestamp, c.username, c.dataset))
	c.logFile = jobLogFile
	log.SetOutput(jobLogFile)
	latestLink := filepath.Join(logDir, "latest.log")
	_ = os.Remove(latestLink)
	_ = os.Symlink(filepath.Base(jobLogFile), latestLink)
}

// SetBucket overrides the bucket from the environment, for requests
// that name their own destination.
func (c *Courier) SetBucket(bucket string) {
	if bucket != `` {
		c.bucket = bucket
	}
}

func (c *Courier) AddDatabase(conn db.DBAdapter) {
	c.databases = append(c.databases, conn.DatabasePath)
}

func (c *Courier) AddOutput(outputPath string) {
	if len(outputPath) > 0 {
		c.outputs = append(c.outputs, outputPath)
	}
}

// AddJson writes records to filePath and registers it as an output.
func (c *Courier) AddJson(records any, filePath string) {
	jsonData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Warn(c.ctx, err, "Failed to marshal ", filePath)
	} else {
		err = os.WriteFile(filePath, jsonData, 0644)
		if err != nil {
			log.Warn(c.ctx, err, "Failed to write ", filePath)
		} else {
			c.AddOutput(filePath)
		}
	}
}

func (c *Courier) GetOutputPaths() []string {
	return c.outputs
}

func (c *Courier) GetOutputByExt(fileExt string) []string {
	var results []string
	for _, path := range c.outputs {
		if strings.HasSuffix(path, fileExt) {
			results = append(results, path)
		}
	}
	return results
}

// PersistToBucket uploads the request, log, run databases, and outputs
// under the next run number. Individual upload failures are collected
// and the first is returned, after every upload has been attempted.
func (c *Courier) PersistToBucket() *log.Status {
	var allStatus []*log.Status
	var status *log.Status
	if !testing.Testing() || c.IsUnitTest {
		cfg, err := config.LoadDefaultConfig(c.ctx, config.WithRegion("us-west-2"))
		if err != nil {
			return log.Error(c.ctx, 500, err, "Error loading AWS config.")
		}
		client := s3.NewFromConfig(cfg)
		c.run, status = c.findLastRun(client)
		allStatus = append(allStatus, status)
		c.run++
		_, status = c.uploadString(client, c.run, "request", c.dataset+".yaml", c.yamlContent)
		allStatus = append(allStatus, status)
		if c.logFile != `` {
			_, status = c.uploadFile(client, c.run, "log", c.logFile)
			allStatus = append(allStatus, status)
		}
		for _, database := range c.databases {
			_, status = c.uploadFile(client, c.run, "database", database)
			allStatus = append(allStatus, status)
		}
		for _, output := range c.outputs {
			outputKey, status2 := c.uploadFile(client, c.run, "output", output)
			allStatus = append(allStatus, status2)
			c.outputKeys = append(c.outputKeys, outputKey)
		}
		_, status = c.uploadString(client, c.run, "duration", time.Since(c.start).String(), "")
		allStatus = append(allStatus, status)
		for _, stat := range allStatus {
			if stat != nil {
				status = stat
				break
			}
		}
	}
	return status
}

// parseYaml pulls a scalar field out of the raw request without a full
// decode, so delivery still works when the request failed validation.
func (c *Courier) parseYaml(name string) string {
	var result string
	index := strings.Index(c.yamlContent, name+":")
	if index == -1 {
		result = "unknown-" + name
	} else {
		start := index + len(name) + 1
		end := strings.Index(c.yamlContent[start:], "\n")
		if end == -1 {
			end = len(c.yamlContent) - start
		}
		result = strings.TrimSpace(c.yamlContent[start : start+end])
	}
	return result
}

func (c *Courier) findLastRun(client *s3.Client) (int, *log.Status) {
	var result int
	var status *log.Status
	prefix := c.username + "/" + c.dataset + "/"
	output, err := client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket: &c.bucket,
		Prefix: &prefix,
	})
	if err != nil {
		return result, log.Error(c.ctx, 500, err, "Error listing bucket objects.")
	}
	maxRun := 0
	for _, obj := range output.Contents {
		parts := strings.Split(*obj.Key, "/")
		if len(parts) < 4 {
			continue
		}
		runNum, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		if runNum > maxRun {
			maxRun = runNum
		}
	}
	return maxRun, status
}

func (c *Courier) uploadString(client *s3.Client, run int, typ string, filename string, content string) (string, *log.Status) {
	var status *log.Status
	objectKey := c.createKey(run, typ, filename)
	input := &s3.PutObjectInput{
		Bucket: &c.bucket,
		Key:    &objectKey,
		Body:   strings.NewReader(content),
	}
	_, err := client.PutObject(c.ctx, input)
	if err != nil {
		status = log.Error(c.ctx, 500, err, "Error uploading string content.")
	}
	return objectKey, status
}

func (c *Courier) uploadFile(client *s3.Client, run int, typ string, filePath string) (string, *log.Status) {
	var objectKey string
	var status *log.Status
	file, err := os.Open(filePath)
	if err != nil {
		log.Warn(c.ctx, 500, err, "Error opening file to upload to S3.")
		return objectKey, status
	}
	defer file.Close()
	objectKey = c.createKey(run, typ, filePath)
	_, err = client.PutObject(c.ctx, &s3.PutObjectInput{
		Bucket: &c.bucket,
		Key:    &objectKey,
		Body:   file,
	})
	if err != nil {
		status = log.Error(c.ctx, 500, err, "Error uploading file to S3.")
	}
	return objectKey, status
}

func (c *Courier) createKey(run int, typ string, filename string) string {
	runStr := fmt.Sprintf("%05d", run)
	filename = filepath.Base(filename)
	return c.username + "/" + c.dataset + "/" + runStr + "/" + typ + "/" + filename
}
