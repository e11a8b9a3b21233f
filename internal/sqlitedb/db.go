// Package sqlitedb inspects SQLite database files: integrity verification,
// schema reflection, free-page accounting, and table export. Every entry
// point opens its own read-only connection and closes it before returning,
// so a handle is never left holding a lock on evidence.
package sqlitedb

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// openRead opens a read-only connection to the database file. Forensic
// reads must never mutate the evidence. The driver defers touching the file
// until the first statement, so "not a database" surfaces as a query error.
func openRead(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// quoteIdent double-quotes an identifier so table names recovered from an
// untrusted file cannot break out of a statement.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
