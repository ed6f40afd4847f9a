package processor

import (
	"context"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/errs"
	"github.com/genforge/genforge/metrics"
	"github.com/genforge/genforge/table"
	"github.com/genforge/genforge/writer"
)

// capturingWriter is a Writer test double that records every row it was
// handed, in write order, so tests can compare a NormalProcessor run
// against a StreamingProcessor run chunk by chunk or as one flattened
// sequence.
type capturingWriter struct {
	chunks    []*table.Table
	finalized bool
}

func (w *capturingWriter) Validate() error { return nil }

func (w *capturingWriter) Write(_ context.Context, t *table.Table, _ writer.Meta) writer.WriteResult {
	if w.finalized {
		return writer.WriteResult{Err: errStub("write after finalize")}
	}
	if t.Rows() == 0 {
		return writer.WriteResult{}
	}
	w.chunks = append(w.chunks, t)
	return writer.WriteResult{Rows: t.Rows()}
}

func (w *capturingWriter) Finalize(_ context.Context) (writer.Summary, error) {
	w.finalized = true
	rows := 0
	for _, c := range w.chunks {
		rows += c.Rows()
	}
	return writer.Summary{RowsWritten: rows, ChunksWritten: len(w.chunks)}, nil
}

// allRows flattens every captured chunk's rows, in write order, as plain
// row maps comparable across a Normal and a Streaming run.
func (w *capturingWriter) allRows() []map[string]any {
	var out []map[string]any
	for _, c := range w.chunks {
		out = append(out, c.RowMaps()...)
	}
	return out
}

type errStub string

func (e errStub) Error() string { return string(e) }

func numberRangeDoc(numRows int, shuffle bool) *config.Document {
	return &config.Document{
		Metadata:   config.Metadata{Name: "test"},
		ColumnName: []string{"id", "value"},
		NumOfRows:  numRows,
		Shuffle:    &shuffle,
		Configs: []config.StrategyConfig{
			{
				Names: []string{"id"},
				Strategy: config.StrategySpec{
					Name:   "Series",
					Params: map[string]any{"start": 0, "step": 1},
				},
			},
			{
				Names: []string{"value"},
				Strategy: config.StrategySpec{
					Name:   "NumberRange",
					Params: map[string]any{"start": 0, "end": 1000},
				},
			},
		},
	}
}

func newTestHandler() *errs.Handler { return errs.NewHandler("test-run") }

func newTestCollector() *metrics.Collector { return metrics.NewCollector("normal", "file", "test-run") }
