package writer

import (
	"github.com/genforge/genforge/table"
	"github.com/genforge/genforge/types"
)

func sampleTable(rows int, startRow int) *table.Table {
	cols := []table.ColumnMeta{
		{Name: "id", Type: types.ColumnInteger},
		{Name: "name", Type: types.ColumnString},
	}
	t := table.NewChunk(cols, rows, startRow)
	for i := 0; i < rows; i++ {
		t.Set("id", i, startRow+i)
		t.Set("name", i, "row")
	}
	return t
}
