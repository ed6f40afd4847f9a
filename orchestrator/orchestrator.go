// Package orchestrator selects a Processor/Writer pair from a validated
// configuration, runs the pair to completion, and turns the outcome into a
// summary the CLI and any future HTTP façade can render without reaching
// into processor or writer internals.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/errs"
	"github.com/genforge/genforge/log"
	"github.com/genforge/genforge/metrics"
	"github.com/genforge/genforge/processor"
	"github.com/genforge/genforge/strategy"
	"github.com/genforge/genforge/types"
	"github.com/genforge/genforge/writer"
)

// ErrInvalidRunningMode describes a configuration that selects stream and
// batch side documents simultaneously. config.Validate already reports this
// as a CFG_MODE_CONFLICT CRITICAL error; Orchestrator.Run repeats the check
// after validation and, if it ever fires, returns a config_error Summary
// carrying this message instead of running with the ModeStream fallback.
var ErrInvalidRunningMode = fmt.Errorf("orchestrator: stream and batch are mutually exclusive")

// Options configures a Run beyond what the configuration document itself
// carries: the minimum row count config.Validate enforces, an error-count
// threshold above which a structured report is exported even without a
// CRITICAL (0 disables the threshold), and where to write that report.
type Options struct {
	MinRows              int
	ReportErrorThreshold int
	ReportPath           string
	ReportFormat         ReportFormat

	// OnProgress, if set, is wired into the selected Processor via
	// SetProgress and fires after every chunk handed to the Writer. Purely
	// observational — has no effect on generated data.
	OnProgress func(rowsSoFar, totalRows int)
}

// ReportFormat selects which encodings of the structured error report are
// written alongside ReportPath.
type ReportFormat string

const (
	ReportFormatNone ReportFormat = ""
	ReportFormatJSON ReportFormat = "json"
	ReportFormatBoth ReportFormat = "both"
)

// Summary is the run's final status, returned to the CLI or an HTTP façade
// regardless of which processor/writer pair executed it.
type Summary struct {
	Status          types.OutcomeStatus
	Message         string
	RowsGenerated   int
	ChunksGenerated int
	Writer          writer.Summary
	Metrics         metrics.Snapshot
	ReportPath      string
}

// Orchestrator ties configuration selection to processor/writer
// construction and run lifecycle. One Orchestrator runs one configuration
// document once; it is not reused across runs.
type Orchestrator struct {
	doc        *config.Document
	masterSeed uint64
	opts       Options
}

// New constructs an Orchestrator for doc. masterSeed is the run's root RNG
// seed (from config.Seed if present, otherwise caller-supplied entropy).
func New(doc *config.Document, masterSeed uint64, opts Options) *Orchestrator {
	return &Orchestrator{doc: doc, masterSeed: masterSeed, opts: opts}
}

// Run validates the configuration, selects and constructs the
// Processor/Writer pair per §4.7's mode rules, executes the run, and
// returns a Summary. Run never panics on a bad configuration or a runtime
// CRITICAL error — both produce a non-success Summary rather than a
// returned error; the returned error is reserved for conditions the caller
// cannot recover a Summary from (e.g. RunMeta missing its run_id).
func (o *Orchestrator) Run(ctx context.Context, meta types.RunMeta) (Summary, error) {
	mode := o.doc.Mode()
	meta.Mode = string(mode)
	if err := meta.Validate(); err != nil {
		return Summary{}, fmt.Errorf("orchestrator: %w", err)
	}
	meta.StartedAt = time.Now()

	logger := log.NewLogger(&meta)
	handler := errs.NewHandler(meta.RunID)
	collector := metrics.NewCollector(string(mode), writerKindFor(mode), meta.RunID)
	collector.IncRunStarted()

	result := config.Validate(o.doc, config.Options{MinRows: o.opts.MinRows, KnownStrategies: strategy.KnownNames()})
	for _, e := range result.Errors {
		handler.Record(e)
	}
	if !result.OK() {
		collector.IncRunFailed()
		summary := o.buildSummary(types.OutcomeConfigError, "configuration validation failed", 0, 0, writer.Summary{}, collector)
		o.exportReportIfNeeded(handler, &summary, logger)
		return summary, nil
	}

	if mode == config.ModeStream && o.doc.BatchWriter != nil {
		collector.IncRunFailed()
		summary := o.buildSummary(types.OutcomeConfigError, ErrInvalidRunningMode.Error(), 0, 0, writer.Summary{}, collector)
		o.exportReportIfNeeded(handler, &summary, logger)
		return summary, nil
	}

	w, proc, err := o.build(mode, handler, collector, logger)
	if err != nil {
		genErr := errs.Classify(err, errs.Context{})
		handler.Record(genErr)
		collector.IncRunFailed()
		logger.Error("failed to build processor/writer pair", map[string]any{"error": err.Error()})
		summary := o.buildSummary(types.OutcomeRuntimeError, err.Error(), 0, 0, writer.Summary{}, collector)
		o.exportReportIfNeeded(handler, &summary, logger)
		return summary, nil
	}

	if o.opts.OnProgress != nil {
		proc.SetProgress(o.opts.OnProgress)
	}

	procResult, err := proc.Run(ctx, w, meta)

	absorbHandlerCounts(collector, handler)

	if err != nil {
		collector.IncRunFailed()
		logger.Error("run halted", map[string]any{"error": err.Error()})
		summary := o.buildSummary(types.OutcomeRuntimeError, err.Error(), procResult.RowsGenerated, procResult.ChunksGenerated, procResult.WriterSummary, collector)
		o.exportReportIfNeeded(handler, &summary, logger)
		return summary, nil
	}

	collector.IncRunCompleted()
	summary := o.buildSummary(types.OutcomeSuccess, "run completed successfully", procResult.RowsGenerated, procResult.ChunksGenerated, procResult.WriterSummary, collector)
	o.exportReportIfNeeded(handler, &summary, logger)
	return summary, nil
}

func (o *Orchestrator) buildSummary(status types.OutcomeStatus, message string, rows, chunks int, ws writer.Summary, collector *metrics.Collector) Summary {
	return Summary{
		Status:          status,
		Message:         message,
		RowsGenerated:   rows,
		ChunksGenerated: chunks,
		Writer:          ws,
		Metrics:         collector.Snapshot(),
	}
}

// build selects and constructs the Processor/Writer pair for mode, per
// §4.7: normal gets NormalProcessor+FileWriter, stream gets
// StreamingProcessor+StreamWriter (AMQP or Kafka depending on which side
// document is set), batch gets StreamingProcessor+BatchWriter.
func (o *Orchestrator) build(mode config.Mode, handler *errs.Handler, collector *metrics.Collector, logger *log.Logger) (writer.Writer, processor.Processor, error) {
	switch mode {
	case config.ModeStream:
		includeMetadata := false
		chunkSize, batchSize := 0, 0
		if o.doc.Streaming != nil {
			includeMetadata = o.doc.Streaming.IncludeMetadata
			chunkSize = o.doc.Streaming.ChunkSize
			batchSize = o.doc.Streaming.BatchSize
		}
		var sw *writer.StreamWriter
		var err error
		switch {
		case o.doc.AMQP != nil:
			sw, err = writer.NewAMQPStreamWriter(*o.doc.AMQP, o.doc.Metadata.Name, includeMetadata)
		case o.doc.Kafka != nil:
			sw, err = writer.NewKafkaStreamWriter(*o.doc.Kafka, o.doc.Metadata.Name, includeMetadata)
		default:
			err = fmt.Errorf("stream mode selected but neither amqp nor kafka side document is set")
		}
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: build stream writer: %w", err)
		}
		proc := processor.NewStreamingProcessor(o.doc, o.masterSeed, chunkSize, batchSize, handler, collector, logger)
		return sw, proc, nil

	case config.ModeBatch:
		bw, err := writer.NewBatchWriter(*o.doc.BatchWriter)
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: build batch writer: %w", err)
		}
		proc := processor.NewStreamingProcessor(o.doc, o.masterSeed, o.doc.BatchWriter.ChunkSize, o.doc.BatchWriter.BatchSize, handler, collector, logger)
		return bw, proc, nil

	default:
		fw, err := writer.NewFileWriter(o.doc.FileWriter)
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: build file writer: %w", err)
		}
		proc := processor.NewNormalProcessor(o.doc, o.masterSeed, handler, collector, logger)
		return fw, proc, nil
	}
}

func writerKindFor(mode config.Mode) string {
	switch mode {
	case config.ModeStream:
		return "stream"
	case config.ModeBatch:
		return "batch"
	default:
		return "file"
	}
}

func absorbHandlerCounts(collector *metrics.Collector, handler *errs.Handler) {
	byCode := make(map[string]int64)
	for _, e := range handler.Snapshot() {
		if e.Severity == errs.Warning {
			byCode[e.Code]++
		}
	}
	collector.AbsorbHandlerCounts(int64(handler.Count(errs.Warning)), int64(handler.Count(errs.Error)), byCode)
}
