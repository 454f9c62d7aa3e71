package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/csvsmith/internal/classify"
	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/common"
	"github.com/Veraticus/csvsmith/internal/config"
	"github.com/Veraticus/csvsmith/internal/header"
	"github.com/Veraticus/csvsmith/internal/model"
	"github.com/Veraticus/csvsmith/internal/sigconfig"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Sort CSV files into folders by header signature",
		Long: `Classify every CSV file directly under --src into category folders
under --dest, matching headers against the signatures in --config.

Examples:
  csvsmith classify --src ./inbox --dest ./sorted --config signatures.json
  csvsmith classify --src ./inbox --dest ./sorted --config signatures.json --dry-run
  csvsmith classify --src ./inbox --dest ./sorted --auto --match contains
  csvsmith classify --rollback ./sorted/manifest_20240101_120000.json`,
		RunE: runClassify,
	}

	cmd.Flags().String("src", "", "Source directory containing CSV files")
	cmd.Flags().String("dest", "", "Destination root for category folders")
	cmd.Flags().String("config", "", "Path to signature JSON (category -> expected columns)")
	cmd.Flags().String("mode", "strict", "Header comparison mode (strict, relaxed)")
	cmd.Flags().String("match", "exact", "Signature match strategy (exact, contains)")
	cmd.Flags().Bool("auto", false, "Auto-cluster unmatched headers into derived folders")
	cmd.Flags().Bool("dry-run", false, "Preview moves without touching the filesystem or writing a manifest")
	cmd.Flags().Bool("report-only", false, "Write a manifest of planned moves without touching the filesystem")
	cmd.Flags().String("encoding", header.EncodingUTF8Sig, "File encoding (utf-8-sig, utf-8)")
	cmd.Flags().Bool("no-strip", false, "Keep surrounding whitespace in header cells")
	cmd.Flags().Bool("casefold", false, "Lowercase header cells before comparison")
	cmd.Flags().Bool("keep-empty", false, "Keep blank header cells")
	cmd.Flags().String("rollback", "", "Roll back a previous run from its manifest instead of classifying")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("classify.mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("classify.match", cmd.Flags().Lookup("match"))
	_ = viper.BindPFlag("classify.encoding", cmd.Flags().Lookup("encoding"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if manifestPath, _ := cmd.Flags().GetString("rollback"); manifestPath != "" {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return runRollbackManifest(config.ExpandPath(manifestPath), dryRun)
	}

	src, _ := cmd.Flags().GetString("src")
	dest, _ := cmd.Flags().GetString("dest")
	if src == "" || dest == "" {
		return fmt.Errorf("%w: --src and --dest are required unless --rollback is given", common.ErrMissingConfig)
	}
	src = config.ExpandPath(src)
	dest = config.ExpandPath(dest)

	var sigs sigconfig.Signatures
	if sigPath, _ := cmd.Flags().GetString("config"); sigPath != "" {
		var err error
		sigs, err = sigconfig.Load(config.ExpandPath(sigPath))
		if err != nil {
			return common.NewUserError("could not load signature config", err)
		}
	}

	auto, _ := cmd.Flags().GetBool("auto")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	reportOnly, _ := cmd.Flags().GetBool("report-only")
	noStrip, _ := cmd.Flags().GetBool("no-strip")
	casefold, _ := cmd.Flags().GetBool("casefold")
	keepEmpty, _ := cmd.Flags().GetBool("keep-empty")

	classifier, err := classify.New(classify.Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: sigs,
		Mode:       model.Mode(viper.GetString("classify.mode")),
		Match:      model.MatchStrategy(viper.GetString("classify.match")),
		Auto:       auto,
		DryRun:     dryRun,
		ReportOnly: reportOnly,
		Header: header.Options{
			Encoding:  viper.GetString("classify.encoding"),
			Strip:     !noStrip,
			Casefold:  casefold,
			DropEmpty: !keepEmpty,
		},
		Output:   cli.NewOutput(os.Stdout),
		Progress: classifyProgressBar(countCandidates(src)),
	})
	if err != nil {
		return err
	}

	slog.Info("Starting classification", "src", src, "dest", dest,
		"dry_run", dryRun, "report_only", reportOnly)

	manifest, savedTo, err := classifier.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Classification complete",
		"files", len(manifest.Operations),
		"moved", manifest.CountByStatus(model.StatusSuccess),
		"failed", manifest.CountByStatus(model.StatusFailed))

	if savedTo != "" {
		recordRunHistory(ctx, manifest, dest, savedTo)
	}
	return nil
}

func countCandidates(src string) int {
	files, err := filepath.Glob(filepath.Join(src, "*.csv"))
	if err != nil {
		return 0
	}
	return len(files)
}

func classifyProgressBar(total int) classify.Progress {
	if total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying files..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
