// Package writer implements the output side of a run: consuming table
// chunks and emitting them to a file, a message queue, or a batch of
// files, behind one common Writer contract so the Processor never needs
// to know which sink it is driving.
package writer

import (
	"context"
	"time"

	"github.com/genforge/genforge/table"
)

// Meta carries the per-write context a Writer needs beyond the chunk's own
// data: which run and configuration produced it, and where this chunk sits
// in the overall sequence.
type Meta struct {
	ConfigName   string
	RunID        string
	BatchIndex   int
	TotalBatches *int
	Timestamp    time.Time
}

// WriteResult reports the outcome of a single Write call. Errors are
// returned here, never panicked or raised, so a Processor can record a
// per-chunk failure and keep driving the run (common invariant iii).
type WriteResult struct {
	Rows int
	Err  error
}

// Summary is the Writer's final report, returned by Finalize.
type Summary struct {
	RowsWritten   int
	ChunksWritten int
	Outputs       []string
}

// Writer is the capability set every sink variant (FileWriter, StreamWriter,
// BatchWriter) implements. A Writer is single-consumer: never shared across
// concurrent Processors (common invariant iv).
type Writer interface {
	// Validate checks the writer's own configuration (paths, queue
	// endpoints) before the first Write.
	Validate() error

	// Write consumes one chunk. Writing an empty chunk (t.Rows() == 0) is a
	// no-op that returns a zero-value, error-free WriteResult (common
	// invariant i). Calling Write after Finalize returns an error result
	// (common invariant ii).
	Write(ctx context.Context, t *table.Table, meta Meta) WriteResult

	// Finalize flushes any buffered state and releases the writer's
	// resources (file handles, queue connections). Only unrecoverable
	// close failures are returned as an error (common invariant iii);
	// everything else has already been surfaced through WriteResult.
	Finalize(ctx context.Context) (Summary, error)
}
