package writer

import (
	"encoding/csv"
	"fmt"
	"os"
)

func writeCSV(path string, columns []string, rows []map[string]any, _ map[string]string, _ map[string]any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, c := range columns {
			record[i] = cellString(row[c])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// cellString renders a cell value for text-based formats (CSV, HTML).
// nil becomes the empty string, matching an unset/deleted value.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
