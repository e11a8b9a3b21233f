package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/rs/zerolog"

	"github.com/dfir-tools/sqltriage/internal/config"
	"github.com/dfir-tools/sqltriage/internal/discover"
	"github.com/dfir-tools/sqltriage/internal/identity"
	"github.com/dfir-tools/sqltriage/internal/sqlitedb"
)

// exportSubdir holds one CSV per table per source database.
const exportSubdir = "exported_data"

// Runner drives one full analysis run: discovery, per-file analysis, and
// report persistence. It holds no state between runs.
type Runner struct {
	cfg config.Run
	log zerolog.Logger
	now func() time.Time // test seam for the run timestamp
}

func NewRunner(cfg config.Run, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log, now: time.Now}
}

// Run analyzes every discovered database file under the configured source
// directory and persists the JSON snapshot and narrative report. Nothing is
// written until every file has been analyzed, so an interrupted run never
// leaves a report claiming files it did not finish. The only fatal
// conditions are an unusable source or output location; every per-file and
// per-capability failure is captured as report data.
func (r *Runner) Run() (*RunReport, error) {
	start := r.now()

	outDir, err := filepath.Abs(r.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	exportDir := filepath.Join(outDir, exportSubdir)
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	files, err := discover.Find(r.cfg.SourceDir, r.cfg.Patterns, r.log)
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("directory", r.cfg.SourceDir).Int("files", len(files)).Msg("discovery complete")

	rep := &RunReport{
		AnalysisDate:    start.Format(identity.TimeLayout),
		Directory:       r.cfg.SourceDir,
		OutputDirectory: outDir,
		TotalFiles:      len(files),
		Databases:       make(map[string]*Artifact, len(files)),
	}
	for _, path := range files {
		r.log.Info().Str("file", filepath.Base(path)).Msg("analyzing")
		rep.Databases[path] = r.analyze(path, exportDir)
	}

	if err := r.persist(rep, start, outDir); err != nil {
		return nil, err
	}
	return rep, nil
}

// analyze runs every capability against one file. Capabilities fail
// independently; their errors are recorded in the artifact, never returned.
func (r *Runner) analyze(path, exportDir string) *Artifact {
	meta, err := identity.Collect(path)
	if err != nil {
		r.log.Warn().Err(err).Str("file", path).Msg("analysis failed")
		return &Artifact{Err: err.Error()}
	}

	art := &Artifact{Metadata: &meta}
	art.Integrity = sqlitedb.CheckIntegrity(path)
	art.Structure = sqlitedb.Introspect(path)
	freeSpace := sqlitedb.QueryFreeSpace(path)
	art.FreeSpace = &freeSpace

	if art.Structure.Err == "" && len(art.Structure.Tables) > 0 {
		art.Exports = make(map[string]string, len(art.Structure.Tables))
		for _, table := range art.Structure.Tables {
			out, err := sqlitedb.ExportTable(path, table, exportDir)
			if err != nil {
				// Isolated at table granularity: the error becomes the
				// table's export entry and the remaining tables proceed.
				r.log.Warn().Err(err).Str("file", path).Str("table", table).Msg("export failed")
				art.Exports[table] = "export error: " + err.Error()
				continue
			}
			art.Exports[table] = out
		}
	}
	return art
}

func (r *Runner) persist(rep *RunReport, start time.Time, outDir string) error {
	stamp := start.Format("20060102_150405")

	data, err := oj.Marshal(rep, 2)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	rep.SnapshotPath = filepath.Join(outDir, "forensic_report_"+stamp+".json")
	if err := os.WriteFile(rep.SnapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	narrative, err := RenderNarrative(rep)
	if err != nil {
		return fmt.Errorf("render narrative: %w", err)
	}
	rep.NarrativePath = filepath.Join(outDir, "text_report_"+stamp+".txt")
	if err := os.WriteFile(rep.NarrativePath, []byte(narrative), 0o644); err != nil {
		return fmt.Errorf("write narrative: %w", err)
	}

	r.log.Info().
		Str("snapshot", rep.SnapshotPath).
		Str("narrative", rep.NarrativePath).
		Msg("report saved")
	return nil
}
