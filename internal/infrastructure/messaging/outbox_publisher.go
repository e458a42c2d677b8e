package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/endurancy/fiscal-api/internal/config"
	"github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	dialAttempts = 15
	dialBackoff  = 3 * time.Second
	pollInterval = 2 * time.Second
	batchSize    = 10
)

// OutboxPublisher drains the outbox table and publishes pending events to a
// topic exchange. Events are routed by their event type
// (e.g. "fiscal.document.emitted").
type OutboxPublisher struct {
	repo repository.OutboxRepository
	cfg  config.AMQPConfig
	log  *logger.Logger
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewOutboxPublisher creates a publisher; call Start to connect and begin polling.
func NewOutboxPublisher(repo repository.OutboxRepository, cfg config.AMQPConfig, log *logger.Logger) *OutboxPublisher {
	return &OutboxPublisher{repo: repo, cfg: cfg, log: log}
}

// Start connects to the broker (retrying while it comes up), declares the
// exchange and launches the polling goroutine. It returns once connected.
func (p *OutboxPublisher) Start(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		p.conn, err = amqp.Dial(p.cfg.URL)
		if err == nil {
			p.ch, err = p.conn.Channel()
			if err == nil {
				break
			}
		}
		p.log.Warn().Err(err).Int("attempt", attempt).Msg("AMQP connection failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	if p.ch == nil {
		return fmt.Errorf("connect to AMQP broker after %d attempts: %w", dialAttempts, err)
	}

	if err := p.ch.ExchangeDeclare(
		p.cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange %q: %w", p.cfg.Exchange, err)
	}

	go p.poll(ctx)

	p.log.Info().Str("exchange", p.cfg.Exchange).Msg("outbox publisher started")
	return nil
}

// Close releases the broker connection.
func (p *OutboxPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *OutboxPublisher) poll(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishPending(ctx)
		}
	}
}

func (p *OutboxPublisher) publishPending(ctx context.Context) {
	events, err := p.repo.PendingBatch(ctx, batchSize)
	if err != nil {
		p.log.Error().Err(err).Msg("fetch pending outbox events")
		return
	}

	for _, event := range events {
		err := p.ch.PublishWithContext(ctx,
			p.cfg.Exchange,
			event.EventType, // routing key
			false,           // mandatory
			false,           // immediate
			amqp.Publishing{
				MessageId:    fmt.Sprintf("fiscal-%d", event.ID),
				ContentType:  "application/json",
				Body:         []byte(event.Payload),
				Timestamp:    event.OccurredAt,
				DeliveryMode: amqp.Persistent,
			},
		)
		if err != nil {
			p.log.Error().Err(err).Int64("event_id", event.ID).Msg("publish outbox event")
			continue
		}

		if err := p.repo.MarkPublished(ctx, event.ID); err != nil {
			// Published but unmarked: the event will be re-published next tick.
			// Consumers must treat deliveries as at-least-once.
			p.log.Warn().Err(err).Int64("event_id", event.ID).Msg("mark outbox event published")
			continue
		}

		p.log.Debug().
			Str("event_type", event.EventType).
			Str("aggregate_id", event.AggregateID.String()).
			Msg("outbox event published")
	}
}
