package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/errs"
	"github.com/genforge/genforge/log"
	"github.com/genforge/genforge/metrics"
	"github.com/genforge/genforge/rng"
	"github.com/genforge/genforge/table"
	"github.com/genforge/genforge/types"
	"github.com/genforge/genforge/writer"
)

// shuffleColumnName is the synthetic column name the run-level shuffle RNG
// is derived under, distinct from any real column name so it never
// collides with a column's own derived seed.
const shuffleColumnName = "__shuffle__"

// NormalProcessor allocates the whole Table at once, runs every column
// plan in configuration order, shuffles globally if enabled, drops
// intermediate columns, and hands the Table to the Writer in one call.
type NormalProcessor struct {
	doc        *config.Document
	masterSeed uint64
	handler    *errs.Handler
	collector  *metrics.Collector
	logger     *log.Logger
	onProgress func(rowsSoFar, totalRows int)
}

// NewNormalProcessor constructs a NormalProcessor for the given validated
// configuration.
func NewNormalProcessor(doc *config.Document, masterSeed uint64, handler *errs.Handler, collector *metrics.Collector, logger *log.Logger) *NormalProcessor {
	return &NormalProcessor{doc: doc, masterSeed: masterSeed, handler: handler, collector: collector, logger: logger}
}

// SetProgress registers a chunk-completion callback. NormalProcessor hands
// the whole Table to the Writer in one call, so the callback fires exactly
// once, with rowsSoFar equal to totalRows.
func (p *NormalProcessor) SetProgress(fn func(rowsSoFar, totalRows int)) {
	p.onProgress = fn
}

func (p *NormalProcessor) Run(ctx context.Context, w writer.Writer, meta types.RunMeta) (Result, error) {
	pl, err := buildPlan(p.doc, p.masterSeed, p.handler)
	if err != nil {
		return Result{}, fmt.Errorf("processor: build plan: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Result{}, fmt.Errorf("processor: writer validation: %w", err)
	}

	t := table.New(pl.columnMetas(), p.doc.NumOfRows)

	for _, cp := range pl.columns {
		applyColumn(t, cp, p.handler)
		if p.handler.HasCritical() {
			return Result{}, fmt.Errorf("processor: halted on critical error while generating column %q", cp.name)
		}
	}

	if p.doc.ShuffleEnabled() {
		t.Shuffle(rng.New(p.masterSeed, shuffleColumnName, nil))
	}
	t.DropIntermediates()

	if p.logger != nil {
		p.logger.Info("generated table", map[string]any{"rows": t.Rows(), "columns": len(t.ColumnNames())})
	}

	res := w.Write(ctx, t, writer.Meta{ConfigName: meta.ConfigName, RunID: meta.RunID, Timestamp: time.Now()})
	if res.Err != nil {
		p.collector.IncWriteFailure()
		p.handler.Record(errs.Classify(res.Err, errs.Context{}))
	} else {
		p.collector.IncWriteSuccess()
	}
	p.collector.AddRowsGenerated(int64(t.Rows()))
	p.collector.IncChunksGenerated()
	if p.onProgress != nil {
		p.onProgress(t.Rows(), p.doc.NumOfRows)
	}

	summary, err := w.Finalize(ctx)
	if err != nil {
		p.handler.Record(errs.Classify(err, errs.Context{}))
		return Result{}, fmt.Errorf("processor: finalize: %w", err)
	}

	return Result{RowsGenerated: summary.RowsWritten, ChunksGenerated: 1, WriterSummary: summary}, nil
}

var _ Processor = (*NormalProcessor)(nil)
