package writer

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// writeSQLite creates a fresh SQLite database at path containing one table
// (named from params["table_name"], default "data") with one TEXT column
// per output column, then inserts every row. An existing file at path is
// removed first since this is a one-shot batch dump, not an append target.
func writeSQLite(path string, columns []string, rows []map[string]any, _ map[string]string, params map[string]any) error {
	tableName, _ := params["table_name"].(string)
	if tableName == "" {
		tableName = "data"
	}

	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	defer db.Close()

	quoted := make([]string, len(columns))
	columnDefs := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
		columnDefs[i] = fmt.Sprintf("%q TEXT", c)
		placeholders[i] = "?"
	}

	createStmt := fmt.Sprintf("CREATE TABLE %q (%s)", tableName, strings.Join(columnDefs, ", "))
	if _, err := db.Exec(createStmt); err != nil {
		return fmt.Errorf("sqlite: create table: %w", err)
	}

	insertStmt := fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		tableName, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	stmt, err := db.Prepare(insertStmt)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]any, len(columns))
		for i, c := range columns {
			args[i] = cellString(row[c])
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("sqlite: insert row: %w", err)
		}
	}
	return nil
}
