package db

import (
	"fmt"
	"time"
)

// Run is one recorded pipeline invocation.
type Run struct {
	RunID      int64
	Command    string
	StartedAt  time.Time
	FinishedAt *time.Time
	Sources    int
}

// SourceStats are the per-input counters recorded for a run.
type SourceStats struct {
	Path           string
	RecordsRead    int
	RecordsKept    int
	RecordsSkipped int
	ParseErrors    int
}

// StartRun inserts a run row and returns its ID.
func (db *DB) StartRun(command string) (int64, error) {
	res, err := db.Exec("INSERT INTO runs (command) VALUES (?)", command)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's completion time.
func (db *DB) FinishRun(runID int64) error {
	_, err := db.Exec("UPDATE runs SET finished_at = CURRENT_TIMESTAMP WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	return nil
}

// RecordSource attaches per-input counters to a run.
func (db *DB) RecordSource(runID int64, s SourceStats) error {
	_, err := db.Exec(`
		INSERT INTO sources (run_id, path, records_read, records_kept, records_skipped, parse_errors)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, s.Path, s.RecordsRead, s.RecordsKept, s.RecordsSkipped, s.ParseErrors,
	)
	if err != nil {
		return fmt.Errorf("failed to record source %s: %w", s.Path, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT r.run_id, r.command, r.started_at, r.finished_at, COUNT(s.source_id)
		FROM runs r
		LEFT JOIN sources s ON s.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Command, &r.StartedAt, &r.FinishedAt, &r.Sources); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunSources returns the per-input counters recorded for one run.
func (db *DB) RunSources(runID int64) ([]SourceStats, error) {
	rows, err := db.Query(`
		SELECT path, records_read, records_kept, records_skipped, parse_errors
		FROM sources WHERE run_id = ? ORDER BY source_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources for run %d: %w", runID, err)
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var s SourceStats
		if err := rows.Scan(&s.Path, &s.RecordsRead, &s.RecordsKept, &s.RecordsSkipped, &s.ParseErrors); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
