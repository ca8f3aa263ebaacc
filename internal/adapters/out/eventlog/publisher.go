// Package eventlog is the event publisher used when no broker is configured.
// It writes every outbox message to the log instead.
package eventlog

import (
	"context"
	"log/slog"

	"orders/internal/core/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher logs outbox messages at info level and never fails.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher logs through logger, or slog.Default when it is nil.
func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger.With("component", "EventLogPublisher")}
}

// Publish writes one record with the event name, ids and payload.
func (p *Publisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	p.logger.InfoContext(ctx, "event published",
		slog.String("event.id", msg.ID.String()),
		slog.String("event.name", msg.EventName),
		slog.String("order.id", msg.AggregateID.String()),
		slog.String("payload", string(msg.Payload)))
	return nil
}
