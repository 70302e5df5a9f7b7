package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher struct {
	conn  *amqp.Connection
	queue string
	log   *zap.Logger
}

// NewPublisher declares a durable queue and returns a publisher bound to it.
func NewPublisher(conn *amqp.Connection, queue string, log *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &Publisher{conn: conn, queue: queue, log: log}, nil
}

// PublishJSON sends v as a persistent message on the default exchange.
func (p *Publisher) PublishJSON(ctx context.Context, v interface{}) error {
	body, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	p.log.Sugar().Debugw("published message", "queue", p.queue, "bytes", len(body))
	return nil
}
