package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be relayed to the message broker.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventName   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges stored outbox messages. Messages
// are added by the unit of work on Commit, never directly.
type OutboxRepository interface {
	// FetchPending returns up to limit unpublished messages, oldest first.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the messages so they are not fetched again.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to subscribers outside the service.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
