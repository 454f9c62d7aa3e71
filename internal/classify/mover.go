package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/common"
	"github.com/Veraticus/csvsmith/internal/fsutil"
	"github.com/Veraticus/csvsmith/internal/model"
)

const collisionTimeFormat = "20060102150405"

// Mover plans and executes per-file moves, appending one terminal operation
// record per file to the manifest. Effect modes are mutually exclusive and
// checked in priority order: report-only, dry-run, apply.
type Mover struct {
	destRoot   string
	reportOnly bool
	dryRun     bool
	clock      common.Clock
	out        *cli.Output
}

// NewMover creates a mover targeting destRoot.
func NewMover(destRoot string, reportOnly, dryRun bool, clock common.Clock, out *cli.Output) *Mover {
	return &Mover{
		destRoot:   destRoot,
		reportOnly: reportOnly,
		dryRun:     dryRun,
		clock:      clock,
		out:        out,
	}
}

// Move routes one file into its category, recording the outcome in the
// manifest. Failures are per-file: they are reported on the output channel
// and recorded as failed, never returned, so the batch continues.
func (m *Mover) Move(manifest *model.Manifest, filePath, category string, headersNorm []string) {
	targetDir := filepath.Join(m.destRoot, category)
	destFile := filepath.Join(targetDir, filepath.Base(filePath))

	op := model.Operation{
		OriginalPath: absPath(filePath),
		PlannedTo:    absPath(destFile),
		Category:     category,
		Headers:      headersNorm,
		Status:       model.StatusPending,
	}

	if m.reportOnly {
		op.Status = model.StatusPlanned
		manifest.Append(op)
		return
	}

	if m.dryRun {
		m.out.Previewf("Would move: %s -> %s/", filepath.Base(filePath), category)
		op.Status = model.StatusSimulated
		manifest.Append(op)
		return
	}

	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		m.out.Errorf("Failed to move %s: %v", filepath.Base(filePath), err)
		op.Status = model.StatusFailed
		manifest.Append(op)
		return
	}

	// Collision handling happens only at apply time.
	if _, err := os.Stat(destFile); err == nil {
		destFile = m.collisionRename(targetDir, filepath.Base(filePath))
		op.PlannedTo = absPath(destFile)
	}

	if err := fsutil.Move(filePath, destFile); err != nil {
		m.out.Errorf("Failed to move %s: %v", filepath.Base(filePath), err)
		op.Status = model.StatusFailed
		manifest.Append(op)
		return
	}

	m.out.Successf("Moved: %s -> %s/", filepath.Base(filePath), category)
	op.Status = model.StatusSuccess
	op.MovedTo = absPath(destFile)
	manifest.Append(op)
}

// collisionRename inserts a timestamp suffix before the extension.
func (m *Mover) collisionRename(targetDir, name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	ts := m.clock.Now().Format(collisionTimeFormat)
	return filepath.Join(targetDir, fmt.Sprintf("%s_%s%s", stem, ts, ext))
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
