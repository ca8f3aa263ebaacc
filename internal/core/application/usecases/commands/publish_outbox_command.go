package commands

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrPublishOutboxCommandIsNotConstructed is returned for a zero-value command.
var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

// MaxOutboxBatchSize bounds how many messages one relay run may publish.
const MaxOutboxBatchSize = 1000

// PublishOutboxCommand asks the relay to publish one batch of pending outbox
// messages.
//
// Example:
//
//	cmd, err := NewPublishOutboxCommand(100)
//	if err != nil {
//		return err
//	}
//	published, err := relay.Handle(ctx, cmd)
type PublishOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewPublishOutboxCommand accepts batch sizes from 1 to MaxOutboxBatchSize.
func NewPublishOutboxCommand(batchSize int) (PublishOutboxCommand, error) {
	if batchSize < 1 || batchSize > MaxOutboxBatchSize {
		return PublishOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxOutboxBatchSize)
	}

	return PublishOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}

// BatchSize returns the most messages to publish in this run.
func (c PublishOutboxCommand) BatchSize() int {
	return c.batchSize
}
