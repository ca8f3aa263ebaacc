package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
)

// PublishOutboxCommandHandler relays stored status events to the event
// publisher. Delivery is at least once: a message is marked only after the
// publisher accepted it.
//
// Example:
//
//	h := NewPublishOutboxCommandHandler(outboxUoWFactory, publisher)
//	cmd, _ := NewPublishOutboxCommand(100)
//	published, err := h.Handle(ctx, cmd)
//	if err != nil {
//		logger.Warn("outbox relay stopped early", "published", published, "error", err)
//	}
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

// NewPublishOutboxCommandHandler returns a handler that opens a primary unit of work per batch.
func NewPublishOutboxCommandHandler(uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle relays one batch of pending outbox messages and returns how many were
// published. Publishing stops at the first failure; messages published before it
// are still marked so they are not sent twice.
func (h *PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create(ports.PrimaryRole)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, msg := range pending {
		if publishErr = h.publisher.Publish(ctx, msg); publishErr != nil {
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, time.Now().UTC()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
