// Package sqlite reads and writes Tables as tables of a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/datasource"
	"github.com/go-sif/geoprep/table"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DefaultTable is the name of the database table used when none is given
const DefaultTable = "dataset"

// SplitPath separates a "path#table" reference into the database path and table name
func SplitPath(ref string) (path string, tableName string) {
	idx := strings.LastIndex(ref, "#")
	if idx < 0 || idx == len(ref)-1 {
		return strings.TrimSuffix(ref, "#"), DefaultTable
	}
	return ref[:idx], ref[idx+1:]
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

// ReadTable reads every row of tableName. Column types are inferred from the stored
// values, except for textColumns, which are always read as strings.
func ReadTable(ctx context.Context, path string, tableName string, textColumns []string) (*table.Table, error) {
	db, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quote(tableName))
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", tableName, err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	columns := make([][]interface{}, len(names))
	scanned := make([]interface{}, len(names))
	ptrs := make([]interface{}, len(names))
	for i := range scanned {
		ptrs[i] = &scanned[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		for i, v := range scanned {
			columns[i] = append(columns[i], fromSQL(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return datasource.BuildTable(names, columns, textColumns)
}

func fromSQL(v interface{}) interface{} {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case int64, float64, string, bool, nil:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func affinity(colType geoprep.ColumnType) string {
	switch colType.(type) {
	case *geoprep.Int64ColumnType, *geoprep.BoolColumnType:
		return "INTEGER"
	case *geoprep.Float64ColumnType:
		return "REAL"
	default:
		return "TEXT"
	}
}

// WriteTable replaces tableName with the contents of t, in a single transaction
func WriteTable(ctx context.Context, path string, tableName string, t *table.Table) error {
	db, err := open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	names := t.ColumnNames()
	types := t.ColumnTypes()
	if len(names) == 0 {
		return fmt.Errorf("sqlite: cannot write a table with no columns")
	}
	defs := make([]string, len(names))
	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quote(name)
		defs[i] = quoted[i] + " " + affinity(types[i])
		placeholders[i] = "?"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmts := []string{
		"DROP TABLE IF EXISTS " + quote(tableName),
		fmt.Sprintf("CREATE TABLE %s (%s)", quote(tableName), strings.Join(defs, ", ")),
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite: exec: %w", err)
		}
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(tableName), strings.Join(quoted, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(names))
	for i := 0; i < t.NumRows(); i++ {
		for c, name := range names {
			v, err := t.Value(i, name)
			if err != nil {
				_ = tx.Rollback()
				return err
			}
			args[c] = toSQL(types[c], v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite: insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func toSQL(colType geoprep.ColumnType, v interface{}) interface{} {
	switch t := v.(type) {
	case nil, int64, float64, string:
		return t
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	default:
		return colType.ToString(v)
	}
}
