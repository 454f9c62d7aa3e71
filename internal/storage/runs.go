package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/csvsmith/internal/common"
)

// Run is one recorded classification run.
type Run struct {
	StartedAt    time.Time
	Source       string
	Dest         string
	Mode         string
	Match        string
	ManifestPath string
	ID           int64
	Moved        int
	Planned      int
	Simulated    int
	Failed       int
	ReportOnly   bool
}

// RecordRun inserts a run into the history and returns its id.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, source, dest, mode, match, report_only,
			manifest_path, moved, planned, simulated, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.Source, run.Dest, run.Mode, run.Match, run.ReportOnly,
		run.ManifestPath, run.Moved, run.Planned, run.Simulated, run.Failed)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, source, dest, mode, match, report_only,
			manifest_path, moved, planned, simulated, failed
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Source, &r.Dest, &r.Mode, &r.Match,
			&r.ReportOnly, &r.ManifestPath, &r.Moved, &r.Planned, &r.Simulated, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestManifest returns the manifest path of the most recent run that
// persisted one.
func (s *Store) LatestManifest(ctx context.Context) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx, `
		SELECT manifest_path FROM runs
		WHERE manifest_path != ''
		ORDER BY started_at DESC, id DESC
		LIMIT 1`).Scan(&path)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: no recorded run has a manifest", common.ErrManifestNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to find latest manifest: %w", err)
	}
	return path, nil
}
