package sqlitedb

import (
	"database/sql"
	"fmt"
)

// Column describes one column as reported by PRAGMA table_info, in
// declaration order.
type Column struct {
	Position     int     `json:"id"`
	Name         string  `json:"name"`
	DeclaredType string  `json:"type"`
	NotNull      bool    `json:"not_null"`
	Default      *string `json:"default"`
	PrimaryKey   bool    `json:"pk"`
}

// TableInfo is one table's reflection result. Err is set when reflecting
// this single table failed; the other fields are then zero.
type TableInfo struct {
	RowCount int64    `json:"row_count"`
	Columns  []Column `json:"columns,omitempty"`
	Err      string   `json:"error,omitempty"`
}

// Schema is the structural snapshot of one database file. Err is set when
// the file could not be introspected at all, in which case every other
// field is empty.
type Schema struct {
	SQLiteVersion string               `json:"sqlite_version,omitempty"`
	TableCount    int                  `json:"tables_count,omitempty"`
	Tables        []string             `json:"tables,omitempty"`
	TableInfo     map[string]TableInfo `json:"tables_info,omitempty"`
	Indexes       []string             `json:"indexes,omitempty"`
	Triggers      []string             `json:"triggers,omitempty"`
	Err           string               `json:"error,omitempty"`
}

// Introspect reflects the database's structure: engine version, table,
// index and trigger names, and per-table row counts and columns. A failure
// on one table is recorded under that table's key and the remaining tables
// are still processed; only a file-level failure marks the whole snapshot
// with Err.
func Introspect(path string) *Schema {
	s, err := introspect(path)
	if err != nil {
		return &Schema{Err: err.Error()}
	}
	return s
}

func introspect(path string) (*Schema, error) {
	db, err := openRead(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	s := &Schema{TableInfo: make(map[string]TableInfo)}
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&s.SQLiteVersion); err != nil {
		return nil, fmt.Errorf("engine version: %w", err)
	}

	if s.Tables, err = masterNames(db, "table"); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	s.TableCount = len(s.Tables)

	for _, table := range s.Tables {
		info, err := reflectTable(db, table)
		if err != nil {
			// Single-table failure (e.g. a missing virtual-table module)
			// must not abort the remaining tables.
			s.TableInfo[table] = TableInfo{Err: err.Error()}
			continue
		}
		s.TableInfo[table] = info
	}

	if s.Indexes, err = masterNames(db, "index"); err != nil {
		return nil, fmt.Errorf("list indexes: %w", err)
	}
	if s.Triggers, err = masterNames(db, "trigger"); err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	return s, nil
}

// masterNames lists catalog object names of one kind, name-ordered for
// reproducible reports.
func masterNames(db *sql.DB, kind string) ([]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = ? ORDER BY name", kind)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func reflectTable(db *sql.DB, table string) (TableInfo, error) {
	var info TableInfo
	if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(table)).Scan(&info.RowCount); err != nil {
		return TableInfo{}, fmt.Errorf("count rows: %w", err)
	}
	cols, err := tableColumns(db, table)
	if err != nil {
		return TableInfo{}, err
	}
	info.Columns = cols
	return info, nil
}

// tableColumns returns the table's columns in declaration order, mirroring
// PRAGMA table_info.
func tableColumns(db *sql.DB, table string) ([]Column, error) {
	rows, err := db.Query("PRAGMA table_info(" + quoteIdent(table) + ")")
	if err != nil {
		return nil, fmt.Errorf("table_info: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []Column
	for rows.Next() {
		var (
			c           Column
			notNull, pk int
			dflt        sql.NullString
		)
		if err := rows.Scan(&c.Position, &c.Name, &c.DeclaredType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info: %w", err)
		}
		c.NotNull = notNull != 0
		c.PrimaryKey = pk != 0
		if dflt.Valid {
			v := dflt.String
			c.Default = &v
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}
