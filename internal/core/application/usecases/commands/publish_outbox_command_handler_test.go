package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func outboxMessages(n int) []ports.OutboxMessage {
	msgs := make([]ports.OutboxMessage, 0, n)
	for range n {
		msgs = append(msgs, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			AggregateID: kernel.NewUUID(),
			EventName:   "order.status_changed",
			Payload:     []byte(`{}`),
		})
	}
	return msgs
}

func wireOutbox(t *testing.T) (*MockOutboxUoWFactory, *MockOutboxUoW, *MockOutboxRepository) {
	t.Helper()
	repo := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	factory.On("Create", ports.PrimaryRole).Return(uow).Once()
	uow.On("OutboxRepository").Return(repo)
	return factory, uow, repo
}

func TestPublishOutboxCommandHandler_Handle(t *testing.T) {
	t.Run("publishes and marks the whole batch", func(t *testing.T) {
		ctx := t.Context()
		msgs := outboxMessages(3)
		factory, uow, repo := wireOutbox(t)
		publisher := new(MockEventPublisher)

		uow.On("Begin", ctx).Return(nil).Once()
		repo.On("FetchPending", ctx, 10).Return(msgs, nil).Once()
		publisher.On("Publish", ctx, mock.AnythingOfType("ports.OutboxMessage")).Return(nil).Times(3)
		repo.On("MarkPublished", ctx, []kernel.UUID{msgs[0].ID, msgs[1].ID, msgs[2].ID}, mock.Anything).
			Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewPublishOutboxCommand(10)
		require.NoError(t, err)
		h := commands.NewPublishOutboxCommandHandler(factory, publisher)

		n, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		publisher.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("stops at the first publish failure and keeps earlier progress", func(t *testing.T) {
		ctx := t.Context()
		msgs := outboxMessages(3)
		factory, uow, repo := wireOutbox(t)
		publisher := new(MockEventPublisher)
		brokerDown := errors.New("broker down")

		uow.On("Begin", ctx).Return(nil).Once()
		repo.On("FetchPending", ctx, 10).Return(msgs, nil).Once()
		publisher.On("Publish", ctx, msgs[0]).Return(nil).Once()
		publisher.On("Publish", ctx, msgs[1]).Return(brokerDown).Once()
		repo.On("MarkPublished", ctx, []kernel.UUID{msgs[0].ID}, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewPublishOutboxCommand(10)
		require.NoError(t, err)
		h := commands.NewPublishOutboxCommandHandler(factory, publisher)

		n, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, brokerDown)
		assert.Equal(t, 1, n)
		publisher.AssertNotCalled(t, "Publish", ctx, msgs[2])
	})

	t.Run("empty outbox commits nothing", func(t *testing.T) {
		ctx := t.Context()
		factory, uow, repo := wireOutbox(t)
		publisher := new(MockEventPublisher)

		uow.On("Begin", ctx).Return(nil).Once()
		repo.On("FetchPending", ctx, 10).Return(nil, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewPublishOutboxCommand(10)
		require.NoError(t, err)
		h := commands.NewPublishOutboxCommandHandler(factory, publisher)

		n, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, n)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
