// Package table implements the column-major data model a run's strategies
// write into and a writer eventually serializes: an ordered, fixed-schema
// sequence of rows held one column at a time so a strategy can fill its own
// column without copying the columns it merely reads (Concat, Replacement).
package table

import (
	"github.com/genforge/genforge/rng"
	"github.com/genforge/genforge/types"
)

// ColumnMeta describes one column of a Table: its name, its inferred
// logical type, and whether it is intermediate (retained during generation
// to feed other columns, dropped before the Table reaches a Writer).
type ColumnMeta struct {
	Name         string
	Type         types.ColumnType
	Intermediate bool
}

// Table is an ordered, fixed-schema, column-major sequence of rows. A
// Table is owned by the Processor for the duration of a run or a chunk;
// strategies receive a reference to read other columns but never mutate a
// column they do not target.
type Table struct {
	columns []ColumnMeta
	data    map[string][]any
	rows    int
	// startRow is the index of this table's first row within the overall
	// run, used when this Table represents one chunk of a larger run.
	startRow int
}

// New allocates an empty Table with the given schema and row count. Every
// column starts filled with nil (the default, representing SQL-null).
func New(columns []ColumnMeta, rows int) *Table {
	data := make(map[string][]any, len(columns))
	for _, c := range columns {
		data[c.Name] = make([]any, rows)
	}
	return &Table{columns: columns, data: data, rows: rows}
}

// NewChunk allocates a Table representing rows [startRow, startRow+rows)
// of a larger run.
func NewChunk(columns []ColumnMeta, rows, startRow int) *Table {
	t := New(columns, rows)
	t.startRow = startRow
	return t
}

// Rows returns the number of rows in this table.
func (t *Table) Rows() int {
	return t.rows
}

// StartRow returns the row index, within the overall run, of this table's
// first row. Zero for a Table produced by NormalProcessor (the whole run
// in one Table).
func (t *Table) StartRow() int {
	return t.startRow
}

// Columns returns the table's column metadata in configuration order.
func (t *Table) Columns() []ColumnMeta {
	return t.columns
}

// ColumnNames returns the names of every non-intermediate column, in
// configuration order — the order a Writer must emit them in.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if !c.Intermediate {
			names = append(names, c.Name)
		}
	}
	return names
}

// Has reports whether name is a column of this table.
func (t *Table) Has(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns the underlying value slice for name. The caller may read
// or write through it; strategies use this only for the column they
// target or, read-only, for columns they reference (Concat's lhs_col/
// rhs_col, Replacement's own column).
func (t *Table) Column(name string) []any {
	return t.data[name]
}

// Set assigns the value at row i of column name.
func (t *Table) Set(name string, i int, v any) {
	t.data[name][i] = v
}

// Get returns the value at row i of column name.
func (t *Table) Get(name string, i int) any {
	return t.data[name][i]
}

// Row materializes row i as a map keyed by column name, for mask
// evaluation.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, c := range t.columns {
		row[c.Name] = t.data[c.Name][i]
	}
	return row
}

// RowMaps materializes every row as a map, in row order. Used by
// StreamWriter/BatchWriter to build the JSON envelope's data array and by
// FileWriter's accumulator.
func (t *Table) RowMaps() []map[string]any {
	out := make([]map[string]any, t.rows)
	for i := 0; i < t.rows; i++ {
		out[i] = t.Row(i)
	}
	return out
}

// DropIntermediates removes every column marked Intermediate, in place.
// Called by the Processor immediately before handing the table to a
// Writer.
func (t *Table) DropIntermediates() {
	kept := t.columns[:0]
	for _, c := range t.columns {
		if c.Intermediate {
			delete(t.data, c.Name)
			continue
		}
		kept = append(kept, c)
	}
	t.columns = kept
}

// Shuffle permutes the table's rows uniformly at random using r. All
// columns (including intermediates, if still present) are permuted
// together so that a row's values stay aligned across columns.
func (t *Table) Shuffle(r *rng.RNG) {
	r.Shuffle(t.rows, func(i, j int) {
		for _, c := range t.columns {
			col := t.data[c.Name]
			col[i], col[j] = col[j], col[i]
		}
	})
}

// Dtypes returns the wire-friendly {column: type} map used by a message
// envelope's metadata.dtypes field, reflecting only non-intermediate
// columns in their current (post-drop) form.
func (t *Table) Dtypes() map[string]string {
	out := make(map[string]string, len(t.columns))
	for _, c := range t.columns {
		out[c.Name] = c.Type.String()
	}
	return out
}
