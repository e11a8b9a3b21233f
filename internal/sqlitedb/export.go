package sqlitedb

import (
	"crypto/sha256"
	"database/sql"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportTable serializes every row of the table to a CSV file under
// destDir and returns the output path. The header row carries the column
// names in declaration order; a zero-row table still gets its header. NULL
// values are written as empty cells.
func ExportTable(dbPath, table, destDir string) (string, error) {
	db, err := openRead(dbPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	cols, err := tableColumns(db, table)
	if err != nil {
		return "", fmt.Errorf("reflect %s: %w", table, err)
	}
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}

	rows, err := db.Query("SELECT * FROM " + quoteIdent(table))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	outPath := filepath.Join(destDir, exportName(dbPath, table))
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	w := csv.NewWriter(f)
	writeErr := func() error {
		if err := w.Write(header); err != nil {
			return err
		}
		cells := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range cells {
			dest[i] = &cells[i]
		}
		for rows.Next() {
			if err := rows.Scan(dest...); err != nil {
				return fmt.Errorf("scan %s: %w", table, err)
			}
			record := make([]string, len(cells))
			for i, c := range cells {
				if c.Valid {
					record[i] = c.String
				}
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}()
	if writeErr != nil {
		_ = f.Close()
		return "", fmt.Errorf("export %s: %w", table, writeErr)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return outPath, nil
}

// exportName namespaces the CSV by a digest of the source path, so two
// databases with the same base name in different directories never
// overwrite each other's exports.
func exportName(dbPath, table string) string {
	base := filepath.Base(dbPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	sum := sha256.Sum256([]byte(dbPath))
	return fmt.Sprintf("%s-%s_%s.csv", stem, hex.EncodeToString(sum[:4]), table)
}
