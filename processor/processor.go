package processor

import (
	"context"

	"github.com/genforge/genforge/types"
	"github.com/genforge/genforge/writer"
)

// Result is what a Processor run returns to its Orchestrator: how much
// data was produced and the Writer's own report of what it persisted.
type Result struct {
	RowsGenerated   int
	ChunksGenerated int
	WriterSummary   writer.Summary
}

// Processor drives one run end to end against a Writer. NormalProcessor
// materializes the whole dataset in one Table; StreamingProcessor
// materializes it chunk by chunk, reusing the same per-column Strategy
// instances across chunks so stateful progressions (Series, Pattern's
// uniqueness tracking) continue correctly.
type Processor interface {
	Run(ctx context.Context, w writer.Writer, meta types.RunMeta) (Result, error)

	// SetProgress registers a callback invoked after each chunk is handed
	// to the Writer, with the cumulative row count and the run's target
	// row count. Optional; a nil fn (the default) disables reporting. Has
	// no effect on generated data — it exists purely for CLI progress
	// rendering.
	SetProgress(fn func(rowsSoFar, totalRows int))
}
