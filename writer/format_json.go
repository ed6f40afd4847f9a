package writer

import (
	"encoding/json"
	"fmt"
	"os"
)

func writeJSON(path string, columns []string, rows []map[string]any, _ map[string]string, _ map[string]any) error {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		ordered := make(map[string]any, len(columns))
		for _, c := range columns {
			ordered[c] = row[c]
		}
		out[i] = ordered
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("json: write %s: %w", path, err)
	}
	return nil
}
