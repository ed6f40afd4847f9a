package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/table"
)

// batchFormat maps a BatchWriterConfig.file_format value to the encoder and
// file extension it drives.
type batchFormat struct {
	encoder   formatEncoder
	extension string
}

var batchFormats = map[string]batchFormat{
	"csv":     {writeCSV, "csv"},
	"json":    {writeJSON, "json"},
	"parquet": {writeParquet, "parquet"},
	"feather": {writeFeather, "feather"},
	"html":    {writeHTML, "html"},
	"excel":   {writeExcel, "xlsx"},
	"sqlite":  {writeSQLite, "db"},
}

// BatchWriter emits one file per chunk under
// {output_dir}/{file_prefix}_{NNNN}.{format}, unlike FileWriter's single
// accumulate-then-flush output. Non-JSON formats additionally get a
// {file_prefix}_{NNNN}_meta.json sidecar carrying the batch's envelope
// (batch_info, data, metadata), since those formats have no natural home
// for that bookkeeping the way a JSON_WRITER chunk does.
type BatchWriter struct {
	cfg    config.BatchWriterConfig
	format batchFormat

	finalized     bool
	batchIndex    int
	rowsWritten   int
	chunksWritten int
	outputs       []string
}

// NewBatchWriter constructs a BatchWriter from the document's batch_writer
// side document.
func NewBatchWriter(cfg config.BatchWriterConfig) (*BatchWriter, error) {
	bf, ok := batchFormats[cfg.FileFormat]
	if !ok {
		return nil, fmt.Errorf("batch_writer: unsupported file_format %q", cfg.FileFormat)
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("batch_writer: output_dir is required")
	}
	if cfg.FilePrefix == "" {
		cfg.FilePrefix = "batch"
	}
	return &BatchWriter{cfg: cfg, format: bf}, nil
}

func (w *BatchWriter) Validate() error {
	if w.cfg.OutputDir == "" {
		return fmt.Errorf("batch_writer: output_dir is required")
	}
	if _, ok := batchFormats[w.cfg.FileFormat]; !ok {
		return fmt.Errorf("batch_writer: unsupported file_format %q", w.cfg.FileFormat)
	}
	return nil
}

func (w *BatchWriter) Write(_ context.Context, t *table.Table, meta Meta) WriteResult {
	if w.finalized {
		return WriteResult{Err: fmt.Errorf("batch_writer: write after finalize")}
	}
	if t.Rows() == 0 {
		return WriteResult{}
	}

	if err := os.MkdirAll(w.cfg.OutputDir, 0o755); err != nil {
		return WriteResult{Err: fmt.Errorf("batch_writer: create output_dir: %w", err)}
	}

	index := w.batchIndex
	w.batchIndex++
	meta.BatchIndex = index

	base := fmt.Sprintf("%s_%04d", w.cfg.FilePrefix, index)
	path := filepath.Join(w.cfg.OutputDir, base+"."+w.format.extension)

	columns := t.ColumnNames()
	rows := t.RowMaps()
	if err := w.format.encoder(path, columns, rows, t.Dtypes(), nil); err != nil {
		return WriteResult{Err: fmt.Errorf("batch_writer: %w", err)}
	}
	w.outputs = append(w.outputs, path)

	if w.cfg.FileFormat != "json" {
		sidecarPath := filepath.Join(w.cfg.OutputDir, base+"_meta.json")
		env := BuildEnvelope(t, meta)
		body, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return WriteResult{Err: fmt.Errorf("batch_writer: marshal sidecar: %w", err)}
		}
		if err := os.WriteFile(sidecarPath, body, 0o644); err != nil {
			return WriteResult{Err: fmt.Errorf("batch_writer: write sidecar: %w", err)}
		}
		w.outputs = append(w.outputs, sidecarPath)
	}

	w.rowsWritten += t.Rows()
	w.chunksWritten++
	return WriteResult{Rows: t.Rows()}
}

func (w *BatchWriter) Finalize(_ context.Context) (Summary, error) {
	if w.finalized {
		return Summary{}, fmt.Errorf("batch_writer: already finalized")
	}
	w.finalized = true
	return Summary{
		RowsWritten:   w.rowsWritten,
		ChunksWritten: w.chunksWritten,
		Outputs:       w.outputs,
	}, nil
}

var _ Writer = (*BatchWriter)(nil)
