package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	option, err := order.NewMenuOption(kernel.NewUUID(), "extra cheese", kernel.MoneyFromInt(500))
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "1 Main St", order.TossPay, "",
		[]commands.OrderItemInput{
			{MenuID: kernel.NewUUID(), Quantity: 2, UnitPrice: kernel.MoneyFromInt(1000)},
			{MenuID: kernel.NewUUID(), Option: &option, Quantity: 1, UnitPrice: kernel.MoneyFromInt(2000)},
		})
	require.NoError(t, err)

	factory, uow, repo := wireOrderUoW(t)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		echoSave(repo).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, created.IsNew())
	assert.Equal(t, order.Pending, created.Status())
	assert.True(t, created.TotalPrice().IsEqual(kernel.MoneyFromInt(4500)))
	assert.Len(t, created.Items(), 2)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	_, err := h.Handle(ctx, commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_InvalidItemIsNotPersisted(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "1 Main St", order.Cash, "",
		[]commands.OrderItemInput{{MenuID: kernel.NewUUID(), Quantity: 100, UnitPrice: kernel.MoneyFromInt(1000)}})
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	factory.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "1 Main St", order.Cash, "", validItems())
	require.NoError(t, err)

	factory, uow, repo := wireOrderUoW(t)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil, errors.New("save error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "save error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "1 Main St", order.Cash, "", validItems())
	require.NoError(t, err)

	factory, uow, repo := wireOrderUoW(t)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		echoSave(repo).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "1 Main St", order.Cash, "", validItems())
	require.NoError(t, err)

	factory, uow, _ := wireOrderUoW(t)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}
