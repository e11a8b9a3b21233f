package sqlitedb

import "strings"

// VerdictOK is the canonical verdict of a clean consistency check.
const VerdictOK = "ok"

// CheckIntegrity runs the engine's built-in consistency check and returns
// the verdict. A clean store yields exactly VerdictOK. Structural anomalies
// come back verbatim from the engine, joined when it reports more than one.
// A file that cannot be read as a database at all yields an "error: ..."
// string, so callers can tell "not a database" apart from "corrupted
// database". The verdict is computed fresh on every call.
func CheckIntegrity(path string) string {
	db, err := openRead(path)
	if err != nil {
		return "error: " + err.Error()
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query("PRAGMA integrity_check")
	if err != nil {
		return "error: " + err.Error()
	}
	defer func() { _ = rows.Close() }()

	var findings []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return "error: " + err.Error()
		}
		findings = append(findings, line)
	}
	if err := rows.Err(); err != nil {
		return "error: " + err.Error()
	}

	if len(findings) == 1 && findings[0] == VerdictOK {
		return VerdictOK
	}
	return strings.Join(findings, "; ")
}
