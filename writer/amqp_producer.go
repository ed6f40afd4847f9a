package writer

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/genforge/genforge/config"
)

// amqpProducer publishes envelope bodies to one AMQP queue over a single
// channel. It declares the queue durable so a restarted consumer doesn't
// lose messages published before it reconnects.
type amqpProducer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func newAMQPProducer(cfg config.AMQPConfig) (*amqpProducer, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("amqp: url is required")
	}
	if cfg.Queue == "" {
		return nil, fmt.Errorf("amqp: queue is required")
	}

	amqpCfg := amqp.Config{}
	if cfg.Heartbeat.Duration > 0 {
		amqpCfg.Heartbeat = cfg.Heartbeat.Duration
	}
	if cfg.VirtualHost != "" {
		amqpCfg.Vhost = cfg.VirtualHost
	}

	url := cfg.URL
	conn, err := amqp.DialConfig(url, amqpCfg)
	if err != nil {
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp: declare queue %s: %w", cfg.Queue, err)
	}

	return &amqpProducer{conn: conn, ch: ch, queue: cfg.Queue}, nil
}

func (p *amqpProducer) Publish(ctx context.Context, body []byte) error {
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *amqpProducer) Close() error {
	chErr := p.ch.Close()
	connErr := p.conn.Close()
	if chErr != nil {
		return chErr
	}
	return connErr
}

var _ queueProducer = (*amqpProducer)(nil)
