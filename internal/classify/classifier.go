package classify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/common"
	"github.com/Veraticus/csvsmith/internal/header"
	"github.com/Veraticus/csvsmith/internal/manifest"
	"github.com/Veraticus/csvsmith/internal/model"
	"github.com/Veraticus/csvsmith/internal/sigconfig"
)

// Progress receives one tick per processed file. schollz/progressbar
// satisfies it directly.
type Progress interface {
	Add(n int) error
}

// Config holds everything a Classifier needs for one run.
type Config struct {
	SourceDir  string
	DestDir    string
	Signatures sigconfig.Signatures
	Mode       model.Mode
	Match      model.MatchStrategy
	Auto       bool
	DryRun     bool
	ReportOnly bool
	Header     header.Options
	Clock      common.Clock
	Output     *cli.Output
	Progress   Progress
}

// Classifier drives the per-file pipeline: header extraction, signature
// matching, auto-naming, and the move executor, then persists the run
// manifest once at the end. One instance owns one manifest for one run.
type Classifier struct {
	cfg      Config
	reader   *header.Reader
	matcher  *Matcher
	mover    *Mover
	store    *manifest.Store
	manifest *model.Manifest
}

// New validates the configuration and builds a classifier. Invalid mode,
// match, or encoding values abort here, before any file is touched.
func New(cfg Config) (*Classifier, error) {
	if cfg.Mode == "" {
		cfg.Mode = model.ModeStrict
	}
	if cfg.Match == "" {
		cfg.Match = model.MatchExact
	}
	if cfg.Header == (header.Options{}) {
		cfg.Header = header.DefaultOptions()
	}
	if cfg.Clock == nil {
		cfg.Clock = common.SystemClock{}
	}
	if cfg.Output == nil {
		cfg.Output = cli.NewOutput(nil)
	}

	if err := cfg.Mode.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if err := cfg.Match.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if err := cfg.Header.Validate(); err != nil {
		return nil, err
	}

	reader := header.NewReader(cfg.Header)

	return &Classifier{
		cfg:     cfg,
		reader:  reader,
		matcher: NewMatcher(cfg.Signatures, cfg.Mode, cfg.Match, reader),
		mover:   NewMover(cfg.DestDir, cfg.ReportOnly, cfg.DryRun, cfg.Clock, cfg.Output),
		store:   manifest.NewStore(cfg.DestDir, cfg.Clock),
		manifest: &model.Manifest{
			SchemaVersion: model.ManifestSchemaVersion,
			SourcePath:    mustAbs(cfg.SourceDir),
			Timestamp:     cfg.Clock.Now(),
			Mode:          cfg.Mode,
			Match:         cfg.Match,
			ReportOnly:    cfg.ReportOnly,
			Operations:    []model.Operation{},
		},
	}, nil
}

// Run classifies every *.csv file directly under the source directory and
// saves the manifest. It returns the manifest and the path it was persisted
// to ("" when nothing was written). Errors local to one file never abort
// the batch; ctx cancellation stops between files.
func (c *Classifier) Run(ctx context.Context) (*model.Manifest, string, error) {
	info, err := os.Stat(c.cfg.SourceDir)
	if err != nil || !info.IsDir() {
		return nil, "", fmt.Errorf("source directory %s does not exist", c.cfg.SourceDir)
	}

	files, err := filepath.Glob(filepath.Join(c.cfg.SourceDir, "*.csv"))
	if err != nil {
		return nil, "", fmt.Errorf("failed to list source files: %w", err)
	}

	for _, filePath := range files {
		if ctx.Err() != nil {
			return c.manifest, "", ctx.Err()
		}
		c.classifyFile(filePath)
		if c.cfg.Progress != nil {
			if addErr := c.cfg.Progress.Add(1); addErr != nil {
				slog.Warn("Failed to update progress", "error", addErr)
			}
		}
	}

	savedTo, err := c.store.Save(c.manifest, c.cfg.DryRun)
	if err != nil {
		return c.manifest, "", fmt.Errorf("failed to save manifest: %w", err)
	}
	if savedTo != "" {
		c.cfg.Output.Infof("Manifest saved: %s", savedTo)
	}
	return c.manifest, savedTo, nil
}

func (c *Classifier) classifyFile(filePath string) {
	raw := c.reader.Read(filePath)
	if raw == nil {
		// Unusable header: wrong extension, unreadable, empty, or a
		// purely numeric data row.
		c.mover.Move(c.manifest, filePath, model.UnclassifiedCategory, []string{})
		return
	}

	norm := c.reader.Normalize(raw)

	category, ok := c.matcher.Match(norm)
	if !ok {
		if c.cfg.Auto {
			category = AutoCategory(model.NewHeaderKey(norm, c.cfg.Mode))
		} else {
			category = model.UnclassifiedCategory
		}
	}

	c.mover.Move(c.manifest, filePath, category, norm)
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
