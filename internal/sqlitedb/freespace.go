package sqlitedb

// FreeSpaceCaveat accompanies every free-page figure. The freelist count is
// a weak proxy for prior deletions, not evidence of them, and reports must
// reproduce this note verbatim so the signal is not over-interpreted.
const FreeSpaceCaveat = "freelist count is an advisory signal only; use specialized recovery tooling for deep analysis"

// FreeSpace is the engine's free-page accounting for one file.
type FreeSpace struct {
	FreelistPages int64  `json:"freelist_pages"`
	Note          string `json:"note,omitempty"`
	Err           string `json:"error,omitempty"`
}

// QueryFreeSpace reads the database's free-page count as a coarse signal of
// deleted or unused space.
func QueryFreeSpace(path string) FreeSpace {
	db, err := openRead(path)
	if err != nil {
		return FreeSpace{Err: err.Error()}
	}
	defer func() { _ = db.Close() }()

	var pages int64
	if err := db.QueryRow("PRAGMA freelist_count").Scan(&pages); err != nil {
		return FreeSpace{Err: err.Error()}
	}
	return FreeSpace{FreelistPages: pages, Note: FreeSpaceCaveat}
}
