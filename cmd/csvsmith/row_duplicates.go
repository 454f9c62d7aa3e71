package main

import (
	"os"

	"github.com/Veraticus/csvsmith/internal/config"
	"github.com/Veraticus/csvsmith/internal/dataset"
	"github.com/spf13/cobra"
)

func rowDuplicatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row-duplicates INPUT",
		Short: "Print only rows that have duplicates",
		Long: `Show rows that participate in duplicate groups, preserving their
original order.

Examples:
  csvsmith row-duplicates data.csv
  csvsmith row-duplicates data.csv --subset email
  csvsmith row-duplicates data.csv --exclude id -o dupes.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runRowDuplicates,
	}

	cmd.Flags().StringSlice("subset", nil, "Columns to consider when detecting duplicates (default: all)")
	cmd.Flags().StringSlice("exclude", nil, "Columns to exclude from duplicate detection")
	cmd.Flags().StringP("output", "o", "", "Output CSV file (default: stdout)")

	return cmd
}

func runRowDuplicates(cmd *cobra.Command, args []string) error {
	input := config.ExpandPath(args[0])
	subset, _ := cmd.Flags().GetStringSlice("subset")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	output, _ := cmd.Flags().GetString("output")

	table, err := dataset.ReadFile(input)
	if err != nil {
		return err
	}

	dupes, err := table.DuplicateRows(subset, exclude)
	if err != nil {
		return err
	}

	if output == "" {
		return dupes.Write(os.Stdout)
	}
	return dupes.WriteFile(config.ExpandPath(output))
}
