package writer

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/genforge/genforge/config"
)

// kafkaProducer publishes envelope bodies to one Kafka topic via a
// kafka.Writer, which batches and retries internally.
type kafkaProducer struct {
	w *kafka.Writer
}

func newKafkaProducer(cfg config.KafkaConfig) (*kafkaProducer, error) {
	if cfg.BootstrapServers == "" {
		return nil, fmt.Errorf("kafka: bootstrap_servers is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka: topic is required")
	}

	transport := &kafka.Transport{}
	if cfg.Username != "" {
		transport.SASL = plain.Mechanism{Username: cfg.Username, Password: cfg.Password}
		transport.TLS = &tls.Config{}
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.BootstrapServers),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		Transport:              transport,
		AllowAutoTopicCreation: true,
	}

	return &kafkaProducer{w: w}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, body []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{Value: body})
}

func (p *kafkaProducer) Close() error {
	return p.w.Close()
}

var _ queueProducer = (*kafkaProducer)(nil)
