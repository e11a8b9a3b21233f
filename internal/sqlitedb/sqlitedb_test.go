package sqlitedb

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// createEvidenceDB builds a small database with a populated table, an empty
// table, an index, and a trigger — enough surface for every inspection path.
func createEvidenceDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "evidence.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	stmts := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, email TEXT DEFAULT 'unknown')`,
		`CREATE TABLE messages (id INTEGER PRIMARY KEY, body TEXT)`,
		`CREATE INDEX idx_users_name ON users(name)`,
		`CREATE TRIGGER trg_users_audit AFTER INSERT ON users BEGIN UPDATE users SET name = name WHERE id = NEW.id; END`,
		`INSERT INTO users (id, name, email) VALUES (1, 'alice', 'alice@example.com')`,
		`INSERT INTO users (id, name, email) VALUES (2, 'bob', NULL)`,
		`INSERT INTO users (id, name) VALUES (3, 'carol')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
	return path
}

// writeGarbage drops a file that carries a database suffix but is not a
// database.
func writeGarbage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("this is not a sqlite file, just text\n"), 0o644))
	return path
}
