package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/model"
	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded classification runs",
		RunE:  runRuns,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")

	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close history database", "error", closeErr)
		}
	}()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No classification runs recorded yet."))
		return nil
	}

	for _, r := range runs {
		line := fmt.Sprintf("#%d  %s  %s -> %s  mode=%s match=%s",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Source, r.Dest, r.Mode, r.Match)
		if r.ReportOnly {
			line += "  (report-only)"
		}
		fmt.Fprintln(os.Stdout, cli.BoldStyle.Render(line))

		summary := fmt.Sprintf("    %s=%d %s=%d %s=%d %s=%d",
			model.StatusSuccess, r.Moved,
			model.StatusPlanned, r.Planned,
			model.StatusSimulated, r.Simulated,
			model.StatusFailed, r.Failed)
		fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render(summary))

		if r.ManifestPath != "" {
			fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render("    manifest: "+r.ManifestPath))
		}
	}
	return nil
}
