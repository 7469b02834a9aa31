package timestamp

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

// wordRecord is the JSON shape of one recognized word. Seconds are
// accepted as well as milliseconds so output from common recognizers
// loads without conversion scripts.
type wordRecord struct {
	Word    string  `json:"word"`
	StartMS *int64  `json:"start_ms"`
	EndMS   *int64  `json:"end_ms"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// LoadWordTimings reads recognized word timings from a JSON or CSV file,
// chosen by extension.
func LoadWordTimings(ctx context.Context, filePath string) ([]input.WordTiming, *log.Status) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return loadJSON(ctx, filePath)
	case ".csv":
		return loadCSV(ctx, filePath)
	default:
		return nil, log.ErrorNoErr(ctx, 400, "Unsupported word timings format", filePath)
	}
}

func loadJSON(ctx context.Context, filePath string) ([]input.WordTiming, *log.Status) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, log.Error(ctx, 400, err, "Error reading word timings", filePath)
	}
	var records []wordRecord
	err = json.Unmarshal(content, &records)
	if err != nil {
		return nil, log.Error(ctx, 400, err, "Error parsing word timings JSON", filePath)
	}
	results := make([]input.WordTiming, 0, len(records))
	for _, record := range records {
		word := input.WordTiming{Word: record.Word}
		if record.StartMS != nil && record.EndMS != nil {
			word.StartMS = *record.StartMS
			word.EndMS = *record.EndMS
		} else {
			word.StartMS = int64(record.Start * 1000.0)
			word.EndMS = int64(record.End * 1000.0)
		}
		results = append(results, word)
	}
	return results, nil
}

// loadCSV expects word,start_ms,end_ms with an optional header row.
func loadCSV(ctx context.Context, filePath string) ([]input.WordTiming, *log.Status) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, log.Error(ctx, 400, err, "Error reading word timings", filePath)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, log.Error(ctx, 400, err, "Error parsing word timings CSV", filePath)
	}
	var results []input.WordTiming
	for i, row := range rows {
		if len(row) < 3 {
			return nil, log.ErrorNoErr(ctx, 400,
				"Word timings CSV row "+strconv.Itoa(i)+" needs word,start_ms,end_ms")
		}
		startMS, err1 := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		endMS, err2 := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err1 != nil || err2 != nil {
			if i == 0 {
				continue // header row
			}
			return nil, log.ErrorNoErr(ctx, 400, "Word timings CSV row "+strconv.Itoa(i)+" has non-numeric times")
		}
		results = append(results, input.WordTiming{Word: row[0], StartMS: startMS, EndMS: endMS})
	}
	return results, nil
}
