package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "genforge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoad_FullDocument(t *testing.T) {
	yaml := `
metadata:
  name: e1
  description: a simple sequential id
num_of_rows: 5
shuffle: false
column_name:
  - id
configs:
  - names: [id]
    strategy:
      name: Series
      params:
        start: 10
        step: 2
file_writer:
  - type: CSV_WRITER
    params:
      output_path: /tmp/e1.csv
`
	path := writeTemp(t, yaml)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if doc.Metadata.Name != "e1" {
		t.Errorf("Metadata.Name = %q, want e1", doc.Metadata.Name)
	}
	if doc.NumOfRows != 5 {
		t.Errorf("NumOfRows = %d, want 5", doc.NumOfRows)
	}
	if doc.ShuffleEnabled() {
		t.Error("ShuffleEnabled() = true, want false")
	}
	if len(doc.Configs) != 1 {
		t.Fatalf("len(Configs) = %d, want 1", len(doc.Configs))
	}
	if doc.Configs[0].Strategy.Name != "Series" {
		t.Errorf("Configs[0].Strategy.Name = %q, want Series", doc.Configs[0].Strategy.Name)
	}
	if len(doc.FileWriter) != 1 || doc.FileWriter[0].Type != "CSV_WRITER" {
		t.Errorf("FileWriter = %+v, want one CSV_WRITER entry", doc.FileWriter)
	}
}

func TestLoad_ShuffleDefaultsTrue(t *testing.T) {
	path := writeTemp(t, "column_name: [id]\nnum_of_rows: 1\n")
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !doc.ShuffleEnabled() {
		t.Error("ShuffleEnabled() = false, want true (default)")
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	path := writeTemp(t, "column_name: [id]\nnonexistent_field: 1\n")
	if _, err := Load(path); err == nil {
		t.Error("Load should reject unknown top-level fields")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/genforge.yaml"); err == nil {
		t.Error("Load should fail for a nonexistent file")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("GENFORGE_OUTPUT_DIR", "/data/out")
	path := writeTemp(t, `
column_name: [id]
num_of_rows: 1
file_writer:
  - type: CSV_WRITER
    params:
      output_path: ${GENFORGE_OUTPUT_DIR}/out.csv
`)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := doc.FileWriter[0].Params["output_path"]
	if got != "/data/out/out.csv" {
		t.Errorf("output_path = %v, want /data/out/out.csv", got)
	}
}
