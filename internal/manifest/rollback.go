package manifest

import (
	"os"
	"path/filepath"

	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/fsutil"
	"github.com/Veraticus/csvsmith/internal/model"
)

// Rollback replays a manifest in reverse, restoring moved files to their
// original locations. Only records that reached success represent a real
// filesystem effect; everything else is skipped. Processing is strictly
// sequential in recorded order to keep failure reporting deterministic.
type Rollback struct {
	dryRun bool
	out    *cli.Output
}

// NewRollback creates a rollback engine. With dryRun set it only prints the
// intended restorations.
func NewRollback(dryRun bool, out *cli.Output) *Rollback {
	if out == nil {
		out = cli.NewOutput(nil)
	}
	return &Rollback{dryRun: dryRun, out: out}
}

// Result summarizes a rollback pass.
type Result struct {
	Restored int
	Skipped  int
}

// Run restores every successful operation in the manifest. Records whose
// file can no longer be found are warned about and skipped; they never
// abort the batch.
func (r *Rollback) Run(m *model.Manifest) Result {
	r.out.Infof("Starting rollback for session: %s", m.Timestamp.Format("2006-01-02T15:04:05"))

	var res Result
	for _, op := range m.Operations {
		if op.Status != model.StatusSuccess {
			continue
		}

		currentLoc := op.MovedTo
		if currentLoc == "" {
			currentLoc = op.PlannedTo
		}
		if currentLoc == "" {
			r.out.Warningf("Warning: manifest operation missing moved_to/planned_to; skipping")
			res.Skipped++
			continue
		}

		if _, err := os.Stat(currentLoc); err != nil {
			r.out.Warningf("Warning: could not find file to restore: %s", currentLoc)
			res.Skipped++
			continue
		}

		if r.dryRun {
			r.out.Previewf("Would restore: %s -> %s", filepath.Base(currentLoc), op.OriginalPath)
			res.Skipped++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(op.OriginalPath), 0o750); err != nil {
			r.out.Errorf("Failed to restore %s: %v", filepath.Base(currentLoc), err)
			res.Skipped++
			continue
		}
		if err := fsutil.Move(currentLoc, op.OriginalPath); err != nil {
			r.out.Errorf("Failed to restore %s: %v", filepath.Base(currentLoc), err)
			res.Skipped++
			continue
		}

		r.out.Successf("Restored: %s", filepath.Base(currentLoc))
		res.Restored++
	}
	return res
}
