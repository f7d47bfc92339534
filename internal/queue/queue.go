package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// Notifier publishes append-only audit events. The service never reads them
// back.
type Notifier interface {
	Publish(ctx context.Context, eventType types.EventType, payload any) error
}

// QueueManager publishes audit events to an AMQP topic exchange, routed by
// event type.
type QueueManager struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.Username, cfg.Password, cfg.Url)
	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &QueueManager{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
	}, nil
}

func (qm *QueueManager) Publish(ctx context.Context, eventType types.EventType, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	err = qm.channel.PublishWithContext(
		ctx,
		qm.exchange,
		eventType.String(), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		metrics.RecordQueuePublishError()
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all
// resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")
	if err := qm.channel.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close queue channel")
	}
	if err := qm.conn.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close queue connection")
	}
}
