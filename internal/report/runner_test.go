package report

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dfir-tools/sqltriage/internal/config"
	"github.com/dfir-tools/sqltriage/internal/sqlitedb"
)

func createUsersDB(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err = db.Exec("INSERT INTO users (name) VALUES (?)", name)
		require.NoError(t, err)
	}
}

func newTestRunner(cfg config.Run, at time.Time) *Runner {
	r := NewRunner(cfg, zerolog.Nop())
	r.now = func() time.Time { return at }
	return r
}

func TestRunnerRun(t *testing.T) {
	// One well-formed database, one text file wearing a database suffix,
	// and one corrupted header, all in the same source tree.
	source := t.TempDir()
	createUsersDB(t, filepath.Join(source, "good.db"))
	require.NoError(t, os.WriteFile(filepath.Join(source, "readme.db"), []byte("plain text, not a database\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "corrupt.sqlite"), []byte("SQLite format 3\x00 garbage"), 0o644))

	outDir := filepath.Join(t.TempDir(), "report")
	cfg := config.New(source, outDir)
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	rep, err := newTestRunner(cfg, at).Run()
	require.NoError(t, err)

	assert.Equal(t, 3, rep.TotalFiles)
	require.Len(t, rep.Databases, 3)

	byName := make(map[string]*Artifact, 3)
	for path, art := range rep.Databases {
		assert.True(t, filepath.IsAbs(path))
		byName[filepath.Base(path)] = art
	}

	t.Run("well-formed database fully analyzed", func(t *testing.T) {
		art := byName["good.db"]
		require.NotNil(t, art)
		assert.Empty(t, art.Err)
		assert.Equal(t, sqlitedb.VerdictOK, art.Integrity)

		require.NotNil(t, art.Structure)
		assert.Equal(t, []string{"users"}, art.Structure.Tables)
		assert.Equal(t, int64(3), art.Structure.TableInfo["users"].RowCount)

		require.NotNil(t, art.FreeSpace)
		assert.Equal(t, sqlitedb.FreeSpaceCaveat, art.FreeSpace.Note)

		exported := art.Exports["users"]
		require.NotEmpty(t, exported)
		f, err := os.Open(exported)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 4) // header + 3 rows
		assert.Equal(t, []string{"id", "name"}, records[0])
	})

	t.Run("bad files carry errors and no exports", func(t *testing.T) {
		for _, name := range []string{"readme.db", "corrupt.sqlite"} {
			art := byName[name]
			require.NotNil(t, art, name)
			assert.True(t, strings.HasPrefix(art.Integrity, "error: "), "%s integrity: %q", name, art.Integrity)
			require.NotNil(t, art.Structure, name)
			assert.NotEmpty(t, art.Structure.Err, name)
			assert.Empty(t, art.Exports, name)
		}
	})

	t.Run("snapshot and narrative persisted with run timestamp", func(t *testing.T) {
		assert.Equal(t, filepath.Join(rep.OutputDirectory, "forensic_report_20260314_150926.json"), rep.SnapshotPath)
		assert.Equal(t, filepath.Join(rep.OutputDirectory, "text_report_20260314_150926.txt"), rep.NarrativePath)

		raw, err := os.ReadFile(rep.SnapshotPath)
		require.NoError(t, err)
		var snap map[string]any
		require.NoError(t, json.Unmarshal(raw, &snap))
		assert.Equal(t, float64(3), snap["total_files"])
		assert.Equal(t, source, snap["directory"])
		dbs, ok := snap["databases"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, dbs, 3)

		narrative, err := os.ReadFile(rep.NarrativePath)
		require.NoError(t, err)
		text := string(narrative)
		assert.Contains(t, text, "FILE: good.db")
		assert.Contains(t, text, "Result: ok")
		assert.Contains(t, text, sqlitedb.FreeSpaceCaveat)
	})
}

func TestRunnerEmptyDiscovery(t *testing.T) {
	// A run over a tree with no database files still leaves a report behind.
	cfg := config.New(t.TempDir(), filepath.Join(t.TempDir(), "report"))
	rep, err := newTestRunner(cfg, time.Now()).Run()
	require.NoError(t, err)

	assert.Equal(t, 0, rep.TotalFiles)
	assert.Empty(t, rep.Databases)
	_, err = os.Stat(rep.SnapshotPath)
	assert.NoError(t, err)
	_, err = os.Stat(rep.NarrativePath)
	assert.NoError(t, err)
}

func TestRunnerUnwritableOutput(t *testing.T) {
	// The output location is the only fatal condition.
	blocker := filepath.Join(t.TempDir(), "report")
	require.NoError(t, os.WriteFile(blocker, []byte("a file where the directory should go"), 0o644))

	cfg := config.New(t.TempDir(), blocker)
	_, err := newTestRunner(cfg, time.Now()).Run()
	require.Error(t, err)
}

func TestRunnerMissingSource(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "report")
	cfg := config.New(filepath.Join(t.TempDir(), "nope"), outDir)
	_, err := newTestRunner(cfg, time.Now()).Run()
	require.Error(t, err)

	// No snapshot may exist for a run that never analyzed anything.
	entries, readErr := os.ReadDir(outDir)
	if readErr == nil {
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), "forensic_report_"), "partial report persisted: %s", e.Name())
		}
	}
}
