package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run represents one tracking run: a tracker opened against a log
// file, observations added over time, then closed.
type Run struct {
	ID        int64
	RunID     string
	Mode      string
	StartYear int
	EndYear   int
	LogPath   string
	Added     int
	StartedAt int64
	EndedAt   *int64
}

// BeginRun records the start of a tracking run and returns it.
func (db *DB) BeginRun(mode string, startYear, endYear int, logPath string) (*Run, error) {
	now := time.Now().UnixMilli()
	runID := uuid.NewString()

	result, err := db.Exec(`
		INSERT INTO runs (run_id, mode, start_year, end_year, log_path, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, mode, startYear, endYear, logPath, now)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Run{
		ID:        id,
		RunID:     runID,
		Mode:      mode,
		StartYear: startYear,
		EndYear:   endYear,
		LogPath:   logPath,
		StartedAt: now,
	}, nil
}

// GetRun returns a run by its run_id, or nil if not found.
func (db *DB) GetRun(runID string) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT id, run_id, mode, start_year, end_year, log_path, added, started_at, ended_at
		FROM runs WHERE run_id = ?
	`, runID).Scan(&r.ID, &r.RunID, &r.Mode, &r.StartYear, &r.EndYear, &r.LogPath, &r.Added, &r.StartedAt, &r.EndedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &r, nil
}

// RecordAdded increments the added counter for an open run.
func (db *DB) RecordAdded(runID string) error {
	_, err := db.Exec(`
		UPDATE runs SET added = added + 1
		WHERE run_id = ? AND ended_at IS NULL
	`, runID)
	if err != nil {
		return fmt.Errorf("record added: %w", err)
	}
	return nil
}

// EndRun finalizes a run. Ending an already-ended run is a no-op.
func (db *DB) EndRun(runID string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE runs SET ended_at = ?
		WHERE run_id = ? AND ended_at IS NULL
	`, now, runID)
	if err != nil {
		return fmt.Errorf("end run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, ordered by started_at DESC.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, run_id, mode, start_year, end_year, log_path, added, started_at, ended_at
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.RunID, &r.Mode, &r.StartYear, &r.EndYear, &r.LogPath, &r.Added, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
