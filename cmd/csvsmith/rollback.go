package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/common"
	"github.com/Veraticus/csvsmith/internal/config"
	"github.com/Veraticus/csvsmith/internal/manifest"
	"github.com/Veraticus/csvsmith/internal/model"
	"github.com/Veraticus/csvsmith/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func rollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore files moved by a previous classify run",
		Long: `Replay a classification manifest in reverse, moving every successfully
classified file back to its original location.

Examples:
  csvsmith rollback --manifest ./sorted/manifest_20240101_120000.json
  csvsmith rollback --last
  csvsmith rollback --last --dry-run`,
		RunE: runRollback,
	}

	cmd.Flags().String("manifest", "", "Path to the manifest of the run to undo")
	cmd.Flags().Bool("last", false, "Roll back the most recent recorded run")
	cmd.Flags().Bool("dry-run", false, "Preview restorations without moving anything")

	return cmd
}

func runRollback(cmd *cobra.Command, _ []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	last, _ := cmd.Flags().GetBool("last")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if manifestPath == "" && !last {
		return fmt.Errorf("%w: either --manifest or --last is required", common.ErrMissingConfig)
	}

	if manifestPath == "" {
		var err error
		manifestPath, err = latestManifestPath(cmd.Context())
		if err != nil {
			return err
		}
	}

	return runRollbackManifest(config.ExpandPath(manifestPath), dryRun)
}

// runRollbackManifest is shared with `classify --rollback`.
func runRollbackManifest(manifestPath string, dryRun bool) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	engine := manifest.NewRollback(dryRun, cli.NewOutput(os.Stdout))
	res := engine.Run(m)

	slog.Info("Rollback complete",
		"restored", res.Restored,
		"skipped", res.Skipped,
		"eligible", m.CountByStatus(model.StatusSuccess))
	return nil
}

func latestManifestPath(ctx context.Context) (string, error) {
	store, err := openHistory(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close history database", "error", closeErr)
		}
	}()

	return store.LatestManifest(ctx)
}

func openHistory(ctx context.Context) (*storage.Store, error) {
	path := viper.GetString("history.path")
	if path == "" {
		path = config.DefaultHistoryPath()
	} else {
		path = config.ExpandPath(path)
	}

	store, err := storage.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate run history: %w", err)
	}
	return store, nil
}
