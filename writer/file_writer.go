package writer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/table"
)

// localEncodePath returns the filesystem path an output should be encoded
// to before any S3 upload: the output's own path for local destinations,
// or a scratch file under the OS temp directory for s3:// destinations.
func localEncodePath(o output) (path string, cleanup func(), err error) {
	if _, _, ok := parseS3Path(o.path); !ok {
		return o.path, func() {}, nil
	}
	tmp, err := os.CreateTemp("", "genforge-filewriter-*")
	if err != nil {
		return "", nil, fmt.Errorf("file_writer: create scratch file for %s: %w", o.path, err)
	}
	tmp.Close()
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// formatEncoder renders an accumulated dataset to one file at path.
type formatEncoder func(path string, columns []string, rows []map[string]any, dtypes map[string]string, params map[string]any) error

var formatEncoders = map[string]formatEncoder{
	"CSV_WRITER":     writeCSV,
	"JSON_WRITER":    writeJSON,
	"PARQUET_WRITER": writeParquet,
	"FEATHER_WRITER": writeFeather,
	"HTML_WRITER":    writeHTML,
	"EXCEL_WRITER":   writeExcel,
	"SQLITE_WRITER":  writeSQLite,
}

// output is one configured (format, path) destination that FileWriter
// flushes the shared accumulator to at Finalize.
type output struct {
	format string
	path   string
	params map[string]any
}

// FileWriter buffers every chunk it's given into one in-memory accumulator
// and, on Finalize, flushes that accumulator to every configured output
// path in its own format. A FileWriter that receives the whole Table in
// one Write (the NormalProcessor's case) still only touches disk at
// Finalize, which keeps the single-accumulator design correct for both
// Normal and Streaming use.
type FileWriter struct {
	outputs   []output
	acc       *accumulator
	finalized bool
}

// NewFileWriter constructs a FileWriter from the document's file_writer
// list.
func NewFileWriter(entries []config.FileWriterConfig) (*FileWriter, error) {
	outputs := make([]output, 0, len(entries))
	for _, e := range entries {
		if _, ok := formatEncoders[e.Type]; !ok {
			return nil, fmt.Errorf("file_writer: unsupported type %q", e.Type)
		}
		path, _ := e.Params["output_path"].(string)
		if path == "" {
			return nil, fmt.Errorf("file_writer: %s entry missing output_path", e.Type)
		}
		outputs = append(outputs, output{format: e.Type, path: path, params: e.Params})
	}
	return &FileWriter{outputs: outputs, acc: newAccumulator()}, nil
}

func (w *FileWriter) Validate() error {
	if len(w.outputs) == 0 {
		return fmt.Errorf("file_writer: at least one output is required")
	}
	for _, o := range w.outputs {
		if o.path == "" {
			return fmt.Errorf("file_writer: %s output_path must not be empty", o.format)
		}
	}
	return nil
}

func (w *FileWriter) Write(_ context.Context, t *table.Table, _ Meta) WriteResult {
	if w.finalized {
		return WriteResult{Err: fmt.Errorf("file_writer: write after finalize")}
	}
	if t.Rows() == 0 {
		return WriteResult{}
	}
	w.acc.append(t)
	return WriteResult{Rows: t.Rows()}
}

func (w *FileWriter) Finalize(ctx context.Context) (Summary, error) {
	if w.finalized {
		return Summary{}, fmt.Errorf("file_writer: already finalized")
	}
	w.finalized = true

	var store *s3Store
	paths := make([]string, 0, len(w.outputs))
	for _, o := range w.outputs {
		bucket, key, isS3 := parseS3Path(o.path)

		encodePath, cleanup, err := localEncodePath(o)
		if err != nil {
			return Summary{}, err
		}
		if !isS3 {
			if err := os.MkdirAll(filepath.Dir(encodePath), 0o755); err != nil {
				return Summary{}, fmt.Errorf("file_writer: create directory for %s: %w", o.path, err)
			}
		}

		encode := formatEncoders[o.format]
		if err := encode(encodePath, w.acc.columns, w.acc.rows, w.acc.dtypes, o.params); err != nil {
			cleanup()
			return Summary{}, fmt.Errorf("file_writer: %s: %w", o.format, err)
		}

		if isS3 {
			if store == nil {
				store, err = newS3Store(ctx)
				if err != nil {
					cleanup()
					return Summary{}, err
				}
			}
			err := store.upload(ctx, bucket, key, encodePath)
			cleanup()
			if err != nil {
				return Summary{}, fmt.Errorf("file_writer: %w", err)
			}
		}

		paths = append(paths, o.path)
	}

	return Summary{
		RowsWritten:   len(w.acc.rows),
		ChunksWritten: 1,
		Outputs:       paths,
	}, nil
}

var _ Writer = (*FileWriter)(nil)
