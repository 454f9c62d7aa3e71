// Package manifest persists classification run manifests and replays them
// in reverse to restore moved files.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/csvsmith/internal/common"
	"github.com/Veraticus/csvsmith/internal/model"
)

const fileTimeFormat = "20060102_150405"

// Store persists manifests as standalone timestamped JSON files under the
// destination root. The file is an independent copy: once written it has no
// tie to the in-memory manifest.
type Store struct {
	root  string
	clock common.Clock
}

// NewStore creates a store rooted at the destination directory.
func NewStore(root string, clock common.Clock) *Store {
	if clock == nil {
		clock = common.SystemClock{}
	}
	return &Store{root: root, clock: clock}
}

// Save writes the manifest and returns the path written. It is a no-op
// (returning "") when the manifest has no operations, or when the run was a
// pure dry run: previews must leave no persisted evidence so they can be
// re-run freely.
func (s *Store) Save(m *model.Manifest, dryRun bool) (string, error) {
	if len(m.Operations) == 0 {
		return "", nil
	}
	if dryRun {
		return "", nil
	}

	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return "", fmt.Errorf("failed to create destination root: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(s.root, fmt.Sprintf("manifest_%s.json", s.clock.Now().Format(fileTimeFormat)))
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// Load reads a previously saved manifest. A missing file yields
// ErrManifestNotFound; malformed content yields ErrManifestCorrupt.
// Documents without a schema_version field predate versioning and are
// treated as version 1.
func Load(path string) (*model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m model.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrManifestCorrupt, path, err)
	}
	if m.SchemaVersion == 0 {
		m.SchemaVersion = 1
	}
	if m.SchemaVersion > model.ManifestSchemaVersion {
		return nil, fmt.Errorf("%w: %s: unsupported schema version %d",
			common.ErrManifestCorrupt, path, m.SchemaVersion)
	}
	return &m, nil
}
