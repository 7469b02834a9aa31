package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	log "github.com/leakydata/srt-voiceover/logger"
)

// ExportJSON writes the frozen report as an indented JSON document with
// the stable field names of ReportVersion.
func (rep *Report) ExportJSON(ctx context.Context, filePath string) *log.Status {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return log.Error(ctx, 500, err, "Error marshalling quality report")
	}
	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return log.Error(ctx, 500, err, "Error writing quality report", filePath)
	}
	return nil
}

// ExportExcel writes the report as a spreadsheet with a summary sheet
// and a per-segment sheet, flagged rows in red.
func (rep *Report) ExportExcel(ctx context.Context, filePath string) *log.Status {
	file := excelize.NewFile()
	defer file.Close()
	sheet := "Summary"
	err := file.SetSheetName("Sheet1", sheet)
	if err != nil {
		return log.Error(ctx, 500, err, "Error renaming summary sheet")
	}
	summaryRows := [][]any{
		{"Report Version", rep.Version},
		{"Generated", rep.Timestamp},
		{"Total Segments", rep.Summary.TotalSegments},
		{"Average Confidence", rep.Summary.AvgConfidence},
		{"Minimum Confidence", rep.Summary.MinConfidence},
		{"Maximum Confidence", rep.Summary.MaxConfidence},
		{"Confidence Level", rep.Summary.ConfidenceLevel},
		{"Flagged Segments", rep.Summary.CountFlagged},
		{"Max Rate Delta", rep.Summary.MaxRateDelta},
	}
	for i, row := range summaryRows {
		err = file.SetSheetRow(sheet, "A"+strconv.Itoa(i+1), &row)
		if err != nil {
			return log.Error(ctx, 500, err, "Error writing summary row")
		}
	}
	segSheet := "Segments"
	_, err = file.NewSheet(segSheet)
	if err != nil {
		return log.Error(ctx, 500, err, "Error creating segments sheet")
	}
	header := []any{"Index", "Speaker", "Confidence", "Raw Rate", "Smoothed Rate",
		"Delta", "Strategy", "Action", "Error ms", "Issues", "Text"}
	err = file.SetSheetRow(segSheet, "A1", &header)
	if err != nil {
		return log.Error(ctx, 500, err, "Error writing segment header")
	}
	flaggedStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "CC0000"},
	})
	if err != nil {
		return log.Error(ctx, 500, err, "Error creating flagged style")
	}
	for i, record := range rep.Segments {
		row := []any{record.SegmentIndex, record.Speaker, record.Confidence,
			record.RawRatePercent, record.SmoothedRatePercent, record.RateDelta,
			record.Strategy, record.ActionTaken, record.DurationErrorMS,
			joinIssues(record.Issues), record.Text}
		cell := "A" + strconv.Itoa(i+2)
		err = file.SetSheetRow(segSheet, cell, &row)
		if err != nil {
			return log.Error(ctx, 500, err, "Error writing segment row")
		}
		if len(record.Issues) > 0 {
			endCell := "K" + strconv.Itoa(i+2)
			err = file.SetCellStyle(segSheet, cell, endCell, flaggedStyle)
			if err != nil {
				return log.Error(ctx, 500, err, "Error styling flagged row")
			}
		}
	}
	err = file.SaveAs(filePath)
	if err != nil {
		return log.Error(ctx, 500, err, "Error saving quality report", filePath)
	}
	return nil
}

// Print writes a readable report to the log output via Info.
func (rep *Report) Print(ctx context.Context) {
	log.Info(ctx, "Quality report version", rep.Version)
	log.Info(ctx, "Total segments", rep.Summary.TotalSegments)
	log.Info(ctx, fmt.Sprintf("Average confidence %.1f%% (%s)",
		rep.Summary.AvgConfidence*100, rep.Summary.ConfidenceLevel))
	log.Info(ctx, "Flagged segments", rep.Summary.CountFlagged)
	log.Info(ctx, "Max rate delta", rep.Summary.MaxRateDelta)
	for _, record := range rep.FlaggedSegments() {
		log.Info(ctx, "Segment", record.SegmentIndex, joinIssues(record.Issues))
	}
}

func joinIssues(issues []string) string {
	var result string
	for i, issue := range issues {
		if i > 0 {
			result += "; "
		}
		result += issue
	}
	return result
}
