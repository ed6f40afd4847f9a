package writer

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// writeParquet renders every column as a Parquet string column. The
// generated dataset's own typed columns (integer, floating, date, time,
// categorical) are already string-rendered everywhere else this writer
// touches output (CSV, HTML), so a uniform string schema here keeps one
// column's representation consistent across every file format a run
// produces, rather than inferring a second, possibly divergent, physical
// type per column from dtypes.
func writeParquet(path string, columns []string, rows []map[string]any, _ map[string]string, _ map[string]any) error {
	fields := make(parquet.Group, len(columns))
	for _, c := range columns {
		fields[c] = parquet.String()
	}
	schema := parquet.NewSchema("row", fields)
	columnPaths := schema.Columns()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("parquet: create %s: %w", path, err)
	}
	defer f.Close()

	pw := parquet.NewWriter(f, schema)
	defer pw.Close()

	for _, row := range rows {
		values := make(parquet.Row, len(columnPaths))
		for i, path := range columnPaths {
			name := path[0]
			values[i] = parquet.ValueOf(cellString(row[name]))
		}
		if _, err := pw.WriteRows([]parquet.Row{values}); err != nil {
			return fmt.Errorf("parquet: write row: %w", err)
		}
	}
	return pw.Close()
}
