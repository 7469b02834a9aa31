package db

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/leakydata/srt-voiceover/input"
	log "github.com/leakydata/srt-voiceover/logger"
)

// DBAdapter owns the per-run sqlite database. Everything a run decides
// is stored here so reports can be regenerated and runs compared.
type DBAdapter struct {
	Ctx          context.Context
	DB           *sql.DB
	DatabasePath string
}

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS segments (
	segment_index INTEGER PRIMARY KEY,
	start_ms INTEGER NOT NULL,
	end_ms INTEGER NOT NULL,
	text TEXT NOT NULL,
	speaker TEXT NOT NULL DEFAULT '');
CREATE TABLE IF NOT EXISTS words (
	word_id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	start_ms INTEGER NOT NULL,
	end_ms INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS plans (
	segment_index INTEGER PRIMARY KEY,
	target_start_ms INTEGER NOT NULL,
	target_end_ms INTEGER NOT NULL,
	raw_rate_percent INTEGER NOT NULL,
	smoothed_rate_percent INTEGER NOT NULL,
	confidence REAL NOT NULL,
	strategy TEXT NOT NULL,
	voice_id TEXT NOT NULL,
	matched_count INTEGER NOT NULL,
	token_count INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS outcomes (
	segment_index INTEGER PRIMARY KEY,
	produced_duration_ms INTEGER NOT NULL,
	target_duration_ms INTEGER NOT NULL,
	final_duration_ms INTEGER NOT NULL,
	action_taken TEXT NOT NULL,
	duration_error_ms INTEGER NOT NULL,
	audio_file TEXT NOT NULL,
	synthesis_failed INTEGER NOT NULL DEFAULT 0);
`

func NewDBAdapter(ctx context.Context, databasePath string) (DBAdapter, *log.Status) {
	var conn DBAdapter
	conn.Ctx = ctx
	conn.DatabasePath = databasePath
	var err error
	conn.DB, err = sql.Open("sqlite3", databasePath)
	if err != nil {
		return conn, log.Error(ctx, 500, err, "Error opening database", databasePath)
	}
	_, err = conn.DB.Exec(createTablesSQL)
	if err != nil {
		return conn, log.Error(ctx, 500, err, "Error creating database tables")
	}
	return conn, nil
}

func (d *DBAdapter) Close() {
	if d.DB != nil {
		_ = d.DB.Close()
	}
}

func (d *DBAdapter) InsertSegments(segments []input.TimedSegment) *log.Status {
	query := `INSERT OR REPLACE INTO segments (segment_index, start_ms, end_ms, text, speaker)
		VALUES (?,?,?,?,?)`
	tx, stmt, status := d.prepare(query)
	if status != nil {
		return status
	}
	for _, seg := range segments {
		_, err := stmt.Exec(seg.Index, seg.StartMS, seg.EndMS, seg.Text, seg.Speaker)
		if err != nil {
			_ = tx.Rollback()
			return log.Error(d.Ctx, 500, err, "Error inserting segment", seg.Index)
		}
	}
	return d.commit(tx, stmt)
}

func (d *DBAdapter) InsertWordTimings(words []input.WordTiming) *log.Status {
	query := `INSERT INTO words (word, start_ms, end_ms) VALUES (?,?,?)`
	tx, stmt, status := d.prepare(query)
	if status != nil {
		return status
	}
	for _, word := range words {
		_, err := stmt.Exec(word.Word, word.StartMS, word.EndMS)
		if err != nil {
			_ = tx.Rollback()
			return log.Error(d.Ctx, 500, err, "Error inserting word timing", word.Word)
		}
	}
	return d.commit(tx, stmt)
}

func (d *DBAdapter) InsertPlans(plans []input.SegmentPlan) *log.Status {
	query := `INSERT OR REPLACE INTO plans (segment_index, target_start_ms, target_end_ms,
		raw_rate_percent, smoothed_rate_percent, confidence, strategy, voice_id,
		matched_count, token_count) VALUES (?,?,?,?,?,?,?,?,?,?)`
	tx, stmt, status := d.prepare(query)
	if status != nil {
		return status
	}
	for _, plan := range plans {
		_, err := stmt.Exec(plan.SegmentIndex, plan.TargetStartMS, plan.TargetEndMS,
			plan.RawRatePercent, plan.SmoothedRatePercent, plan.Confidence,
			string(plan.Strategy), plan.VoiceID, plan.MatchedCount, plan.TokenCount)
		if err != nil {
			_ = tx.Rollback()
			return log.Error(d.Ctx, 500, err, "Error inserting plan", plan.SegmentIndex)
		}
	}
	return d.commit(tx, stmt)
}

func (d *DBAdapter) InsertOutcomes(outcomes []input.SegmentOutcome) *log.Status {
	query := `INSERT OR REPLACE INTO outcomes (segment_index, produced_duration_ms,
		target_duration_ms, final_duration_ms, action_taken, duration_error_ms,
		audio_file, synthesis_failed) VALUES (?,?,?,?,?,?,?,?)`
	tx, stmt, status := d.prepare(query)
	if status != nil {
		return status
	}
	for _, outcome := range outcomes {
		_, err := stmt.Exec(outcome.SegmentIndex, outcome.ProducedDurationMS,
			outcome.TargetDurationMS, outcome.FinalDurationMS, string(outcome.ActionTaken),
			outcome.DurationErrorMS, outcome.AudioFile, outcome.SynthesisFailed)
		if err != nil {
			_ = tx.Rollback()
			return log.Error(d.Ctx, 500, err, "Error inserting outcome", outcome.SegmentIndex)
		}
	}
	return d.commit(tx, stmt)
}

func (d *DBAdapter) SelectPlans() ([]input.SegmentPlan, *log.Status) {
	var results []input.SegmentPlan
	query := `SELECT segment_index, target_start_ms, target_end_ms, raw_rate_percent,
		smoothed_rate_percent, confidence, strategy, voice_id, matched_count, token_count
		FROM plans ORDER BY segment_index`
	rows, err := d.DB.Query(query)
	if err != nil {
		return results, log.Error(d.Ctx, 500, err, "Error selecting plans")
	}
	defer rows.Close()
	for rows.Next() {
		var plan input.SegmentPlan
		var strategy string
		err = rows.Scan(&plan.SegmentIndex, &plan.TargetStartMS, &plan.TargetEndMS,
			&plan.RawRatePercent, &plan.SmoothedRatePercent, &plan.Confidence,
			&strategy, &plan.VoiceID, &plan.MatchedCount, &plan.TokenCount)
		if err != nil {
			return results, log.Error(d.Ctx, 500, err, "Error scanning plan row")
		}
		plan.Strategy = input.Strategy(strategy)
		results = append(results, plan)
	}
	err = rows.Err()
	if err != nil {
		return results, log.Error(d.Ctx, 500, err, "Error reading plan rows")
	}
	return results, nil
}

func (d *DBAdapter) SelectOutcomes() ([]input.SegmentOutcome, *log.Status) {
	var results []input.SegmentOutcome
	query := `SELECT segment_index, produced_duration_ms, target_duration_ms,
		final_duration_ms, action_taken, duration_error_ms, audio_file, synthesis_failed
		FROM outcomes ORDER BY segment_index`
	rows, err := d.DB.Query(query)
	if err != nil {
		return results, log.Error(d.Ctx, 500, err, "Error selecting outcomes")
	}
	defer rows.Close()
	for rows.Next() {
		var outcome input.SegmentOutcome
		var action string
		err = rows.Scan(&outcome.SegmentIndex, &outcome.ProducedDurationMS,
			&outcome.TargetDurationMS, &outcome.FinalDurationMS, &action,
			&outcome.DurationErrorMS, &outcome.AudioFile, &outcome.SynthesisFailed)
		if err != nil {
			return results, log.Error(d.Ctx, 500, err, "Error scanning outcome row")
		}
		outcome.ActionTaken = input.Action(action)
		results = append(results, outcome)
	}
	err = rows.Err()
	if err != nil {
		return results, log.Error(d.Ctx, 500, err, "Error reading outcome rows")
	}
	return results, nil
}

func (d *DBAdapter) prepare(query string) (*sql.Tx, *sql.Stmt, *log.Status) {
	tx, err := d.DB.Begin()
	if err != nil {
		return nil, nil, log.Error(d.Ctx, 500, err, "Error beginning transaction")
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, log.Error(d.Ctx, 500, err, "Error preparing statement")
	}
	return tx, stmt, nil
}

func (d *DBAdapter) commit(tx *sql.Tx, stmt *sql.Stmt) *log.Status {
	_ = stmt.Close()
	err := tx.Commit()
	if err != nil {
		return log.Error(d.Ctx, 500, err, "Error committing transaction")
	}
	return nil
}
