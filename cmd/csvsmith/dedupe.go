package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/config"
	"github.com/Veraticus/csvsmith/internal/dataset"
	"github.com/spf13/cobra"
)

func dedupeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe INPUT",
		Short: "Drop duplicate rows and write a duplicate-group report",
		Long: `Drop duplicate rows from a CSV file and write both the deduplicated CSV
and a report CSV with one row per duplicate group.

Examples:
  csvsmith dedupe data.csv --deduped clean.csv --report dupes.csv
  csvsmith dedupe data.csv --deduped clean.csv --report dupes.csv --exclude id created_at
  csvsmith dedupe data.csv --deduped clean.csv --report dupes.csv --keep none`,
		Args: cobra.ExactArgs(1),
		RunE: runDedupe,
	}

	cmd.Flags().StringSlice("subset", nil, "Columns to consider when detecting duplicates (default: all)")
	cmd.Flags().StringSlice("exclude", nil, "Columns to exclude from duplicate detection")
	cmd.Flags().String("keep", "first", "Which duplicate to keep (first, last, none)")
	cmd.Flags().String("digest-col", dataset.DefaultDigestColumn, "Digest column name in the report")
	cmd.Flags().String("deduped", "", "Path to write the deduplicated CSV")
	cmd.Flags().String("report", "", "Path to write the duplicate-report CSV")
	_ = cmd.MarkFlagRequired("deduped")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}

func runDedupe(cmd *cobra.Command, args []string) error {
	input := config.ExpandPath(args[0])
	subset, _ := cmd.Flags().GetStringSlice("subset")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	keep, _ := cmd.Flags().GetString("keep")
	digestCol, _ := cmd.Flags().GetString("digest-col")
	dedupedPath, _ := cmd.Flags().GetString("deduped")
	reportPath, _ := cmd.Flags().GetString("report")

	table, err := dataset.ReadFile(input)
	if err != nil {
		return err
	}

	deduped, report, err := table.Dedupe(subset, exclude, dataset.KeepPolicy(keep))
	if err != nil {
		return err
	}

	for _, path := range []string{dedupedPath, reportPath} {
		if err := os.MkdirAll(filepath.Dir(config.ExpandPath(path)), 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := deduped.WriteFile(config.ExpandPath(dedupedPath)); err != nil {
		return err
	}
	if err := dataset.ReportTable(report, digestCol).WriteFile(config.ExpandPath(reportPath)); err != nil {
		return err
	}

	out := cli.NewOutput(os.Stdout)
	out.Plainf("Wrote deduped CSV to: %s", dedupedPath)
	out.Plainf("Wrote duplicate report to: %s", reportPath)
	return nil
}
