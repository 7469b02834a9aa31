package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leakydata/srt-voiceover/cleanup"
	"github.com/leakydata/srt-voiceover/controller/timeout_notify"
	"github.com/leakydata/srt-voiceover/courier"
	"github.com/leakydata/srt-voiceover/db"
	"github.com/leakydata/srt-voiceover/decode_yaml"
	"github.com/leakydata/srt-voiceover/decode_yaml/request"
	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
	"github.com/leakydata/srt-voiceover/timestamp"
	"github.com/leakydata/srt-voiceover/translate"
	"github.com/leakydata/srt-voiceover/tts"
	"github.com/leakydata/srt-voiceover/utility/ffmpeg"
	"github.com/leakydata/srt-voiceover/voiceover"
)

const slowRunAlert = 4 * time.Hour

func main() {
	requestFile := flag.String("request", "", "YAML job request file")
	flag.Parse()
	if *requestFile == "" && flag.NArg() > 0 {
		*requestFile = flag.Arg(0)
	}
	if *requestFile == "" {
		fmt.Println("Usage: srt_voiceover -request <job.yaml>")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  ./srt_voiceover -request jobs/demo_film.yaml")
		os.Exit(1)
	}
	ctx := context.Background()
	yamlContent, err := os.ReadFile(*requestFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read %s: %v\n", *requestFile, err)
		os.Exit(1)
	}
	deliver := courier.NewCourier(ctx, yamlContent)
	start := time.Now()
	decoder := decode_yaml.NewRequestDecoder(ctx)
	req, status := decoder.Process(yamlContent)
	if status == nil {
		deliver.SetBucket(req.Delivery.S3Bucket)
		watchdog := timeout_notify.NewTimeoutNotify(ctx, req.DatasetName, req.NotifyErr)
		status = watchdog.Run(slowRunAlert, func(ctx context.Context) *log.Status {
			return processRequest(ctx, req, &deliver)
		})
	}
	if st := deliver.PersistToBucket(); st != nil && status == nil {
		status = st
	}
	_ = deliver.Notification(status, time.Since(start), req.NotifyOk, req.NotifyErr)
	cleanup.CleanupScratchDirectories(ctx)
	if status != nil {
		fmt.Fprintln(os.Stderr, status.Error())
		os.Exit(1)
	}
}

func processRequest(ctx context.Context, req request.Request, deliver *courier.Courier) *log.Status {
	segments, status := input.ParseSRT(ctx, req.SubtitleFile)
	if status != nil {
		return status
	}
	var words []input.WordTiming
	if req.WordTimingsFile != "" {
		words, status = timestamp.LoadWordTimings(ctx, req.WordTimingsFile)
		if status != nil {
			return status
		}
	} else {
		log.Warn(ctx, "No word timings supplied, all segments will use static pacing")
	}
	if req.TranslateEnabled() {
		translator := translate.NewTranslator(ctx, req.Translate.Model, req.Translate.TargetLanguage)
		segments, status = translator.TranslateSegments(segments)
		if status != nil {
			return status
		}
	}
	workDir, err := os.MkdirTemp(os.Getenv("SRT_VOICEOVER_TMP"), req.DatasetName+"_")
	if err != nil {
		return log.Error(ctx, 500, err, "Unable to create work directory")
	}
	conn, status := db.NewDBAdapter(ctx, filepath.Join(workDir, req.DatasetName+".db"))
	if status != nil {
		return status
	}
	defer conn.Close()
	deliver.AddDatabase(conn)
	synthesizer, status := tts.NewEdgeTTSAdapter(ctx)
	if status != nil {
		return status
	}
	defer synthesizer.Close()
	editor := ffmpeg.NewEditor(ctx, workDir)
	engine := voiceover.NewVoiceover(ctx, &conn, synthesizer, editor, voiceover.Options{
		DefaultVoice:  req.DefaultVoice,
		SpeakerVoices: req.SpeakerVoices,
		Concurrency:   req.Concurrency,
		OutputPath:    req.AudioOutput,
	})
	result, status := engine.ProcessRun(segments, words)
	if status != nil {
		return status
	}
	result.Report.Print(ctx)
	reportJSON := filepath.Join(workDir, req.DatasetName+"_quality.json")
	if st := result.Report.ExportJSON(ctx, reportJSON); st == nil {
		deliver.AddOutput(reportJSON)
	}
	reportExcel := filepath.Join(workDir, req.DatasetName+"_quality.xlsx")
	if st := result.Report.ExportExcel(ctx, reportExcel); st == nil {
		deliver.AddOutput(reportExcel)
	}
	deliver.AddOutput(result.TrackFile)
	return announce(ctx, req, result)
}

// announce publishes the run completion to the delivery targets the
// request named.
func announce(ctx context.Context, req request.Request, result voiceover.RunResult) *log.Status {
	event := map[string]any{
		"dataset_name":   req.DatasetName,
		"username":       req.Username,
		"total_segments": result.Report.Summary.TotalSegments,
		"count_flagged":  result.Report.Summary.CountFlagged,
		"confidence":     result.Report.Summary.ConfidenceLevel,
		"audio_output":   req.AudioOutput,
	}
	if req.Delivery.SNSTopic != "" {
		_, status := courier.PublishSNSMessage(ctx, req.Delivery.SNSTopic, "Voiceover complete", event)
		if status != nil {
			return status
		}
	}
	if req.Delivery.SQSQueue != "" {
		_, status := courier.SQSEnqueue(ctx, req.Delivery.SQSQueue, event)
		if status != nil {
			return status
		}
	}
	return nil
}
