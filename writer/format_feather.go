package writer

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// writeFeather renders every column as an Arrow string column and writes
// one record batch to an Arrow IPC file (the modern "Feather V2" format),
// for the same uniform-string-column reason writeParquet does.
func writeFeather(path string, columns []string, rows []map[string]any, _ map[string]string, _ map[string]any) error {
	fields := make([]arrow.Field, len(columns))
	for i, c := range columns {
		fields[i] = arrow.Field{Name: c, Type: arrow.BinaryTypes.String}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for i, c := range columns {
		sb := b.Field(i).(*array.StringBuilder)
		for _, row := range rows {
			sb.Append(cellString(row[c]))
		}
	}
	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("feather: create %s: %w", path, err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema))
	if err != nil {
		return fmt.Errorf("feather: new writer: %w", err)
	}
	defer w.Close()

	if err := w.Write(rec); err != nil {
		return fmt.Errorf("feather: write record: %w", err)
	}
	return w.Close()
}
