package classify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/csvsmith/internal/cli"
	"github.com/Veraticus/csvsmith/internal/common"
	"github.com/Veraticus/csvsmith/internal/manifest"
	"github.com/Veraticus/csvsmith/internal/model"
	"github.com/Veraticus/csvsmith/internal/sigconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func testClock() fixedClock {
	return fixedClock{t: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)}
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func defaultSignatures() sigconfig.Signatures {
	return sigconfig.Signatures{
		{Category: "Sales", Columns: []string{"date", "item", "price"}},
		{Category: "Users", Columns: []string{"user_id", "email"}},
	}
}

func newTestClassifier(t *testing.T, cfg Config) (*Classifier, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = cli.NewOutput(&buf)
	if cfg.Clock == nil {
		cfg.Clock = testClock()
	}
	c, err := New(cfg)
	require.NoError(t, err)
	return c, &buf
}

func TestNew_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "bad mode", cfg: Config{SourceDir: "s", DestDir: "d", Mode: "fuzzy"}},
		{name: "bad match", cfg: Config{SourceDir: "s", DestDir: "d", Match: "best"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestRun_MissingSourceDir(t *testing.T) {
	c, _ := newTestClassifier(t, Config{
		SourceDir: filepath.Join(t.TempDir(), "nope"),
		DestDir:   t.TempDir(),
	})
	_, _, err := c.Run(context.Background())
	assert.Error(t, err)
}

func TestRun_Scenario(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeCSV(t, src, "sales_01.csv", "date,item,price\n2024-01-01,apple,1.50\n")
	writeCSV(t, src, "users_01.csv", "user_id,email,signup_date\n1,a@b.c,2024-01-01\n")
	writeCSV(t, src, "weather.csv", "temp,humidity\n20,80\n")

	c, _ := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
		Match:      model.MatchContains,
		Auto:       true,
	})

	m, savedTo, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Operations, 3)
	assert.Equal(t, 3, m.CountByStatus(model.StatusSuccess))

	assert.FileExists(t, filepath.Join(dest, "Sales", "sales_01.csv"))
	assert.FileExists(t, filepath.Join(dest, "Users", "users_01.csv"))

	// weather.csv matched nothing and auto-clustered.
	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	var clusterDir string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "cluster_temp__humidity__h") {
			clusterDir = e.Name()
		}
	}
	require.NotEmpty(t, clusterDir, "expected an auto-cluster folder for weather.csv")
	assert.FileExists(t, filepath.Join(dest, clusterDir, "weather.csv"))

	// Source files are gone.
	assert.NoFileExists(t, filepath.Join(src, "sales_01.csv"))

	// Manifest was persisted and loads back.
	require.NotEmpty(t, savedTo)
	loaded, err := manifest.Load(savedTo)
	require.NoError(t, err)
	assert.Equal(t, model.ManifestSchemaVersion, loaded.SchemaVersion)
	assert.Len(t, loaded.Operations, 3)
}

func TestRun_UnusableHeaderGoesUnclassified(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeCSV(t, src, "data.csv", "1,2,3\n4,5,6\n")

	c, _ := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
	})

	m, _, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Operations, 1)
	assert.Equal(t, model.UnclassifiedCategory, m.Operations[0].Category)
	assert.Empty(t, m.Operations[0].Headers)
	assert.FileExists(t, filepath.Join(dest, model.UnclassifiedCategory, "data.csv"))
}

func TestRun_NoAutoFallsBackToUnclassified(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeCSV(t, src, "weather.csv", "temp,humidity\n20,80\n")

	c, _ := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
	})

	m, _, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.UnclassifiedCategory, m.Operations[0].Category)
}

func TestRun_DryRunNeverMutates(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "dest")
	writeCSV(t, src, "sales.csv", "date,item,price\n")

	c, out := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
		DryRun:     true,
	})

	m, savedTo, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, m.CountByStatus(model.StatusSimulated))
	assert.Contains(t, out.String(), "Would move: sales.csv -> Sales/")

	// Source untouched, destination never created, no manifest persisted.
	assert.FileExists(t, filepath.Join(src, "sales.csv"))
	assert.NoDirExists(t, dest)
	assert.Empty(t, savedTo)
}

func TestRun_ReportOnlyWritesManifestButNotFiles(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "dest")
	writeCSV(t, src, "sales.csv", "date,item,price\n")

	c, _ := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
		ReportOnly: true,
	})

	m, savedTo, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, m.CountByStatus(model.StatusPlanned))
	assert.FileExists(t, filepath.Join(src, "sales.csv"))
	assert.NoDirExists(t, filepath.Join(dest, "Sales"))

	require.NotEmpty(t, savedTo)
	loaded, err := manifest.Load(savedTo)
	require.NoError(t, err)
	assert.True(t, loaded.ReportOnly)
}

func TestRun_CollisionRenamesWithTimestamp(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	// A file with the same name already classified into Sales.
	require.NoError(t, os.MkdirAll(filepath.Join(dest, "Sales"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "Sales", "sales.csv"), []byte("old\n"), 0o600))

	writeCSV(t, src, "sales.csv", "date,item,price\n")

	c, _ := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
		Clock:      testClock(),
	})

	m, _, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Operations, 1)

	op := m.Operations[0]
	assert.Equal(t, model.StatusSuccess, op.Status)

	renamed := filepath.Join(dest, "Sales", "sales_20240315103000.csv")
	assert.Equal(t, renamed, op.MovedTo)
	assert.Equal(t, op.PlannedTo, op.MovedTo)
	assert.FileExists(t, renamed)

	// The pre-existing file was not overwritten.
	old, err := os.ReadFile(filepath.Join(dest, "Sales", "sales.csv"))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(old))
}

func TestRun_FailedMoveContinuesBatch(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	// Making "Sales" a file forces MkdirAll to fail for sales.csv only.
	require.NoError(t, os.WriteFile(filepath.Join(dest, "Sales"), []byte("not a dir"), 0o600))

	writeCSV(t, src, "sales.csv", "date,item,price\n")
	writeCSV(t, src, "users.csv", "user_id,email\n")

	c, out := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
	})

	m, _, err := c.Run(context.Background())
	require.NoError(t, err, "per-file failures must not abort the run")

	assert.Equal(t, 1, m.CountByStatus(model.StatusFailed))
	assert.Equal(t, 1, m.CountByStatus(model.StatusSuccess))
	assert.Contains(t, out.String(), "Failed to move sales.csv")
	assert.FileExists(t, filepath.Join(dest, "Users", "users.csv"))
}

func TestRun_RollbackRoundTrip(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	salesBody := "date,item,price\n2024-01-01,apple,1.50\n"
	usersBody := "user_id,email\n1,a@b.c\n"
	writeCSV(t, src, "sales.csv", salesBody)
	writeCSV(t, src, "users.csv", usersBody)

	c, _ := newTestClassifier(t, Config{
		SourceDir:  src,
		DestDir:    dest,
		Signatures: defaultSignatures(),
	})

	_, savedTo, err := c.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, savedTo)
	assert.NoFileExists(t, filepath.Join(src, "sales.csv"))

	loaded, err := manifest.Load(savedTo)
	require.NoError(t, err)

	var buf bytes.Buffer
	res := manifest.NewRollback(false, cli.NewOutput(&buf)).Run(loaded)
	assert.Equal(t, 2, res.Restored)

	// Original directory restored byte for byte; destination emptied.
	got, err := os.ReadFile(filepath.Join(src, "sales.csv"))
	require.NoError(t, err)
	assert.Equal(t, salesBody, string(got))

	got, err = os.ReadFile(filepath.Join(src, "users.csv"))
	require.NoError(t, err)
	assert.Equal(t, usersBody, string(got))

	assert.NoFileExists(t, filepath.Join(dest, "Sales", "sales.csv"))
	assert.NoFileExists(t, filepath.Join(dest, "Users", "users.csv"))
}
