package writer

import (
	"github.com/genforge/genforge/table"
)

// accumulator buffers rows handed to a FileWriter across one or more Write
// calls (a NormalProcessor hands over the whole Table in one call; a
// StreamingProcessor driving a BatchWriter-wrapped FileWriter hands over
// many small chunks) until Finalize flushes them to disk.
type accumulator struct {
	columns []string
	dtypes  map[string]string
	rows    []map[string]any
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

// append adds t's rows to the accumulator, capturing column order and
// dtypes from the first non-empty chunk it sees.
func (a *accumulator) append(t *table.Table) {
	if a.columns == nil {
		a.columns = t.ColumnNames()
		a.dtypes = t.Dtypes()
	}
	a.rows = append(a.rows, t.RowMaps()...)
}

func (a *accumulator) reset() {
	a.columns = nil
	a.dtypes = nil
	a.rows = nil
}
