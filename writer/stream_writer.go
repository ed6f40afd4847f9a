package writer

import (
	"context"
	"fmt"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/table"
)

// queueProducer abstracts the message-queue client StreamWriter publishes
// envelopes through. Real implementations wrap amqp091-go or kafka-go;
// tests use a stub. Implementers may choose any threading model for the
// underlying client as long as Publish/Close behave synchronously from
// the caller's point of view.
type queueProducer interface {
	Publish(ctx context.Context, body []byte) error
	Close() error
}

// StreamWriter serializes each chunk it receives as a JSON envelope
// (batch_info, data, metadata) and publishes it to a message queue via its
// queueProducer. Unlike FileWriter, it does not buffer: each Write is one
// publish.
type StreamWriter struct {
	producer        queueProducer
	configName      string
	includeMetadata bool
	totalBatches    *int

	finalized     bool
	rowsWritten   int
	chunksWritten int
}

// NewAMQPStreamWriter builds a StreamWriter backed by an AMQP queue.
func NewAMQPStreamWriter(cfg config.AMQPConfig, configName string, includeMetadata bool) (*StreamWriter, error) {
	p, err := newAMQPProducer(cfg)
	if err != nil {
		return nil, err
	}
	return newStreamWriter(p, configName, includeMetadata), nil
}

// NewKafkaStreamWriter builds a StreamWriter backed by a Kafka topic.
func NewKafkaStreamWriter(cfg config.KafkaConfig, configName string, includeMetadata bool) (*StreamWriter, error) {
	p, err := newKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	return newStreamWriter(p, configName, includeMetadata), nil
}

func newStreamWriter(p queueProducer, configName string, includeMetadata bool) *StreamWriter {
	return &StreamWriter{
		producer:        p,
		configName:      configName,
		includeMetadata: includeMetadata,
	}
}

func (w *StreamWriter) Validate() error {
	if w.producer == nil {
		return fmt.Errorf("stream_writer: no queue producer configured")
	}
	return nil
}

func (w *StreamWriter) Write(ctx context.Context, t *table.Table, meta Meta) WriteResult {
	if w.finalized {
		return WriteResult{Err: fmt.Errorf("stream_writer: write after finalize")}
	}
	if t.Rows() == 0 {
		return WriteResult{}
	}

	meta.ConfigName = w.configName
	meta.TotalBatches = w.totalBatches
	env := BuildEnvelope(t, meta)
	if !w.includeMetadata {
		env.Metadata = EnvelopeMetadata{}
	}

	body, err := marshalEnvelope(env)
	if err != nil {
		return WriteResult{Err: fmt.Errorf("stream_writer: marshal envelope: %w", err)}
	}
	if err := w.producer.Publish(ctx, body); err != nil {
		return WriteResult{Err: fmt.Errorf("stream_writer: publish: %w", err)}
	}

	w.rowsWritten += t.Rows()
	w.chunksWritten++
	return WriteResult{Rows: t.Rows()}
}

func (w *StreamWriter) Finalize(_ context.Context) (Summary, error) {
	if w.finalized {
		return Summary{}, fmt.Errorf("stream_writer: already finalized")
	}
	w.finalized = true
	if err := w.producer.Close(); err != nil {
		return Summary{}, fmt.Errorf("stream_writer: close producer: %w", err)
	}
	return Summary{RowsWritten: w.rowsWritten, ChunksWritten: w.chunksWritten}, nil
}

var _ Writer = (*StreamWriter)(nil)
