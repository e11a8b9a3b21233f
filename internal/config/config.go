// Package config holds the explicit run configuration for an analysis run.
// A Run value is constructed once at the CLI layer and handed to the
// pipeline; nothing below the CLI reads flags, env vars, or other ambient
// state.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// DefaultPatterns are the filename suffixes treated as candidate SQLite
// database files during discovery.
var DefaultPatterns = []string{".sqlitedb", ".sqlite", ".db", ".sqlite3"}

// DefaultReportDir is the report directory created beside the run when the
// caller does not choose one.
const DefaultReportDir = "forensic_report"

// Run configures one analysis run.
type Run struct {
	// SourceDir is the directory tree to scan for database files.
	SourceDir string `hcl:"source_dir"`
	// OutputDir receives the snapshot, the narrative report, and the
	// exported table data.
	OutputDir string `hcl:"output_dir,optional"`
	// Patterns are the filename suffixes to treat as database files.
	Patterns []string `hcl:"patterns,optional"`
}

// New builds a Run for the given source directory, filling defaults for
// anything left empty.
func New(sourceDir, outputDir string) Run {
	r := Run{SourceDir: sourceDir, OutputDir: outputDir}
	r.applyDefaults()
	return r
}

// LoadFile reads a case file in HCL form, e.g.
//
//	source_dir = "/evidence/case_123/databases"
//	output_dir = "/evidence/case_123/report"
//	patterns   = [".db", ".sqlite"]
func LoadFile(path string) (Run, error) {
	var r Run
	if err := hclsimple.DecodeFile(path, nil, &r); err != nil {
		return Run{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	r.applyDefaults()
	return r, nil
}

func (r *Run) applyDefaults() {
	if r.OutputDir == "" {
		r.OutputDir = DefaultReportDir
	}
	if len(r.Patterns) == 0 {
		r.Patterns = DefaultPatterns
	}
}
