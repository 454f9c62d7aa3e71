package main

import (
	"context"
	"log/slog"

	"github.com/Veraticus/csvsmith/internal/model"
	"github.com/Veraticus/csvsmith/internal/storage"
)

// recordRunHistory appends a persisted run to the history database.
// History is an index, not the record of truth, so failures here only warn.
func recordRunHistory(ctx context.Context, m *model.Manifest, dest, manifestPath string) {
	store, err := openHistory(ctx)
	if err != nil {
		slog.Warn("Failed to open run history", "error", err)
		return
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close history database", "error", closeErr)
		}
	}()

	id, err := store.RecordRun(ctx, storage.Run{
		StartedAt:    m.Timestamp,
		Source:       m.SourcePath,
		Dest:         dest,
		Mode:         string(m.Mode),
		Match:        string(m.Match),
		ReportOnly:   m.ReportOnly,
		ManifestPath: manifestPath,
		Moved:        m.CountByStatus(model.StatusSuccess),
		Planned:      m.CountByStatus(model.StatusPlanned),
		Simulated:    m.CountByStatus(model.StatusSimulated),
		Failed:       m.CountByStatus(model.StatusFailed),
	})
	if err != nil {
		slog.Warn("Failed to record run history", "error", err)
		return
	}
	slog.Debug("Recorded run", "id", id)
}
