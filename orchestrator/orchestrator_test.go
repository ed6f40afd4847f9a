package orchestrator

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/types"
)

func runMeta(runID string) types.RunMeta {
	return types.RunMeta{RunID: runID, ConfigName: "test"}
}

func numberRangeDoc(numRows int, outputPath string) *config.Document {
	return &config.Document{
		Metadata:   config.Metadata{Name: "test"},
		ColumnName: []string{"id", "value"},
		NumOfRows:  numRows,
		Configs: []config.StrategyConfig{
			{
				Names:    []string{"id"},
				Strategy: config.StrategySpec{Name: "Series", Params: map[string]any{"start": 0, "step": 1}},
			},
			{
				Names:    []string{"value"},
				Strategy: config.StrategySpec{Name: "NumberRange", Params: map[string]any{"start": 0, "end": 1000}},
			},
		},
		FileWriter: []config.FileWriterConfig{
			{Type: "CSV_WRITER", Params: map[string]any{"output_path": outputPath}},
		},
	}
}

func TestRunNormalModeWritesCSV(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.csv")
	doc := numberRangeDoc(10, outPath)

	o := New(doc, 42, Options{MinRows: 1})
	summary, err := o.Run(context.Background(), runMeta("run-normal"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Status != types.OutcomeSuccess {
		t.Fatalf("expected success, got %s: %s", summary.Status, summary.Message)
	}
	if summary.RowsGenerated != 10 {
		t.Fatalf("expected 10 rows, got %d", summary.RowsGenerated)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 11 { // header + 10 rows
		t.Fatalf("expected 11 csv records (incl. header), got %d", len(records))
	}
}

func TestRunRejectsSimultaneousStreamAndBatch(t *testing.T) {
	doc := numberRangeDoc(5, filepath.Join(t.TempDir(), "out.csv"))
	doc.AMQP = &config.AMQPConfig{URL: "amqp://localhost", Queue: "q"}
	doc.BatchWriter = &config.BatchWriterConfig{OutputDir: t.TempDir(), FilePrefix: "batch", FileFormat: "json", BatchSize: 5, ChunkSize: 5}

	o := New(doc, 1, Options{MinRows: 1})
	summary, err := o.Run(context.Background(), runMeta("run-conflict"))
	if err != nil {
		t.Fatalf("run should not return a hard error: %v", err)
	}
	if summary.Status != types.OutcomeConfigError {
		t.Fatalf("expected config_error status, got %s", summary.Status)
	}
}

func TestRunBatchModeWritesPerChunkFiles(t *testing.T) {
	outDir := t.TempDir()
	doc := numberRangeDoc(25, "")
	doc.FileWriter = nil
	doc.BatchWriter = &config.BatchWriterConfig{OutputDir: outDir, FilePrefix: "batch", FileFormat: "json", BatchSize: 10, ChunkSize: 10}

	o := New(doc, 7, Options{MinRows: 1})
	summary, err := o.Run(context.Background(), runMeta("run-batch"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Status != types.OutcomeSuccess {
		t.Fatalf("expected success, got %s: %s", summary.Status, summary.Message)
	}
	if summary.ChunksGenerated != 3 { // 10 + 10 + 5
		t.Fatalf("expected 3 chunks, got %d", summary.ChunksGenerated)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 batch files, got %d", len(entries))
	}
}

func TestRunConfigErrorSkipsProcessing(t *testing.T) {
	doc := &config.Document{
		Metadata:   config.Metadata{Name: "bad"},
		ColumnName: []string{"value"},
		NumOfRows:  5,
		Configs: []config.StrategyConfig{
			{Names: []string{"value"}, Strategy: config.StrategySpec{Name: "NotARealStrategy"}},
		},
	}

	o := New(doc, 1, Options{MinRows: 1})
	summary, err := o.Run(context.Background(), runMeta("run-badcfg"))
	if err != nil {
		t.Fatalf("run should not return a hard error: %v", err)
	}
	if summary.Status != types.OutcomeConfigError {
		t.Fatalf("expected config_error status, got %s", summary.Status)
	}
	if summary.RowsGenerated != 0 {
		t.Fatalf("expected 0 rows generated on config error, got %d", summary.RowsGenerated)
	}
}

func TestRunExportsReportOnCritical(t *testing.T) {
	doc := &config.Document{
		Metadata:   config.Metadata{Name: "bad"},
		ColumnName: []string{"value"},
		NumOfRows:  5,
		Configs: []config.StrategyConfig{
			{Names: []string{"value"}, Strategy: config.StrategySpec{Name: "NotARealStrategy"}},
		},
	}

	reportPath := filepath.Join(t.TempDir(), "report.json")
	o := New(doc, 1, Options{MinRows: 1, ReportPath: reportPath, ReportFormat: ReportFormatJSON})
	summary, err := o.Run(context.Background(), runMeta("run-report"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.ReportPath != reportPath {
		t.Fatalf("expected report path to be set, got %q", summary.ReportPath)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("expected report file to exist: %v", err)
	}
}

// TestRunBuildFailureIsRuntimeError covers scenario E7: a stream writer
// that cannot reach its broker must surface as a NETWORK:ERROR runtime
// failure, not a config error, and must be recorded on the handler so the
// structured report export sees it.
func TestRunBuildFailureIsRuntimeError(t *testing.T) {
	doc := numberRangeDoc(5, "")
	doc.FileWriter = nil
	doc.AMQP = &config.AMQPConfig{URL: "amqp://127.0.0.1:1/", Queue: "q"}

	reportPath := filepath.Join(t.TempDir(), "report.json")
	o := New(doc, 1, Options{MinRows: 1, ReportPath: reportPath, ReportFormat: ReportFormatJSON, ReportErrorThreshold: 0})
	summary, err := o.Run(context.Background(), runMeta("run-build-fail"))
	if err != nil {
		t.Fatalf("run should not return a hard error: %v", err)
	}
	if summary.Status != types.OutcomeRuntimeError {
		t.Fatalf("expected runtime_error status for an unreachable broker, got %s: %s", summary.Status, summary.Message)
	}
}

func TestRunRejectsInvalidRunMeta(t *testing.T) {
	doc := numberRangeDoc(1, filepath.Join(t.TempDir(), "out.csv"))
	o := New(doc, 1, Options{MinRows: 1})
	if _, err := o.Run(context.Background(), types.RunMeta{}); err == nil {
		t.Fatal("expected an error for an empty RunMeta")
	}
}
