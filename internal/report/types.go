// Package report orchestrates the analysis pipeline and synthesizes the
// run's outputs: a machine-readable JSON snapshot and a narrative text
// document rendered from the same in-memory report, so the two can never
// drift apart.
package report

import (
	"github.com/dfir-tools/sqltriage/internal/identity"
	"github.com/dfir-tools/sqltriage/internal/sqlitedb"
)

// Artifact aggregates everything derived from one discovered file. When Err
// is set the analysis never got past reading the file's attributes and all
// other fields are empty. Capability-level failures live inside the
// capability's own field, so one broken facet never hides the others.
type Artifact struct {
	Metadata  *identity.FileIdentity `json:"metadata,omitempty"`
	Integrity string                 `json:"integrity,omitempty"`
	Structure *sqlitedb.Schema       `json:"database_info,omitempty"`
	FreeSpace *sqlitedb.FreeSpace    `json:"deleted_records,omitempty"`
	Exports   map[string]string      `json:"exported_tables,omitempty"`
	Err       string                 `json:"error,omitempty"`
}

// RunReport is the aggregate result of one run. It is built in memory while
// files are analyzed and persisted exactly once at the end; it is never
// mutated after persistence.
type RunReport struct {
	AnalysisDate    string               `json:"analysis_date"`
	Directory       string               `json:"directory"`
	OutputDirectory string               `json:"output_directory"`
	TotalFiles      int                  `json:"total_files"`
	Databases       map[string]*Artifact `json:"databases"`

	// Locations of the persisted outputs, filled in by the runner.
	SnapshotPath  string `json:"-"`
	NarrativePath string `json:"-"`
}
