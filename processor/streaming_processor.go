package processor

import (
	"context"
	"fmt"
	"strconv"
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

const defaultChunkSize = 1000

// StreamingProcessor materializes the run in a sequence of bounded-size
// Tables, reusing the same plan (and so the same persistent Strategy
// instances) across every chunk it builds. This is what lets a streaming
// or batch run reproduce exactly the dataset a NormalProcessor run with
// the same seed would, one chunk boundary at a time (the chunk
// equivalence law).
type StreamingProcessor struct {
	doc        *config.Document
	masterSeed uint64
	chunkSize  int
	batchSize  int
	handler    *errs.Handler
	collector  *metrics.Collector
	logger     *log.Logger
	onProgress func(rowsSoFar, totalRows int)
}

// NewStreamingProcessor constructs a StreamingProcessor. chunkSize and
// batchSize come from whichever side document (streaming or batch_writer)
// the Orchestrator selected; effectiveChunkSize caps the former at the
// latter.
func NewStreamingProcessor(doc *config.Document, masterSeed uint64, chunkSize, batchSize int, handler *errs.Handler, collector *metrics.Collector, logger *log.Logger) *StreamingProcessor {
	return &StreamingProcessor{
		doc: doc, masterSeed: masterSeed, chunkSize: chunkSize, batchSize: batchSize,
		handler: handler, collector: collector, logger: logger,
	}
}

// SetProgress registers a chunk-completion callback, invoked after every
// chunk this StreamingProcessor hands to the Writer with the cumulative
// row count generated so far.
func (p *StreamingProcessor) SetProgress(fn func(rowsSoFar, totalRows int)) {
	p.onProgress = fn
}

func effectiveChunkSize(chunkSize, batchSize int) int {
	size := chunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	if batchSize > 0 && batchSize < size {
		size = batchSize
	}
	return size
}

func (p *StreamingProcessor) Run(ctx context.Context, w writer.Writer, meta types.RunMeta) (Result, error) {
	pl, err := buildPlan(p.doc, p.masterSeed, p.handler)
	if err != nil {
		return Result{}, fmt.Errorf("processor: build plan: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Result{}, fmt.Errorf("processor: writer validation: %w", err)
	}

	size := effectiveChunkSize(p.chunkSize, p.batchSize)
	remaining := p.doc.NumOfRows
	startRow := 0
	chunkIndex := 0
	rowsWritten := 0

	for remaining > 0 {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		n := size
		if n > remaining {
			n = remaining
		}

		t := table.NewChunk(pl.columnMetas(), n, startRow)
		for _, cp := range pl.columns {
			applyColumn(t, cp, p.handler)
			if p.handler.HasCritical() {
				return Result{}, fmt.Errorf("processor: halted on critical error while generating column %q in chunk %d", cp.name, chunkIndex)
			}
		}

		if p.doc.ShuffleEnabled() {
			chunkSeed := rng.New(p.masterSeed, shuffleColumnName, rng.HashParams(strconv.Itoa(chunkIndex)))
			t.Shuffle(chunkSeed)
		}
		t.DropIntermediates()

		res := w.Write(ctx, t, writer.Meta{
			ConfigName: meta.ConfigName,
			RunID:      meta.RunID,
			BatchIndex: chunkIndex,
			Timestamp:  time.Now(),
		})
		if res.Err != nil {
			p.collector.IncWriteFailure()
			p.handler.Record(errs.Classify(res.Err, errs.Context{}))
		} else {
			p.collector.IncWriteSuccess()
		}
		p.collector.AddRowsGenerated(int64(t.Rows()))
		p.collector.IncChunksGenerated()

		if p.logger != nil {
			p.logger.Info("wrote chunk", map[string]any{"chunk_index": chunkIndex, "rows": t.Rows()})
		}

		rowsWritten += res.Rows
		remaining -= n
		startRow += n
		chunkIndex++
		if p.onProgress != nil {
			p.onProgress(startRow, p.doc.NumOfRows)
		}
	}

	summary, err := w.Finalize(ctx)
	if err != nil {
		p.handler.Record(errs.Classify(err, errs.Context{}))
		return Result{}, fmt.Errorf("processor: finalize: %w", err)
	}

	return Result{RowsGenerated: summary.RowsWritten, ChunksGenerated: chunkIndex, WriterSummary: summary}, nil
}

var _ Processor = (*StreamingProcessor)(nil)
