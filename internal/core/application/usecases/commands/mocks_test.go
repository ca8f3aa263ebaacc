package commands_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(context.Context, *order.Order) (*order.Order, error)); ok {
		return fn(ctx, o)
	}
	if saved, ok := args.Get(0).(*order.Order); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if found, ok := args.Get(0).(*order.Order); ok {
		return found, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerID(_ context.Context, _ kernel.UUID, _ ports.PageRequest) (
	ports.OrderPage, error,
) {
	return ports.OrderPage{}, nil
}

func (m *MockOrderRepository) FindByStoreID(_ context.Context, _ kernel.UUID, _ ports.PageRequest) (
	ports.OrderPage, error,
) {
	return ports.OrderPage{}, nil
}

func (m *MockOrderRepository) FindByDeliveryPersonID(_ context.Context, _ kernel.UUID, _ ports.PageRequest) (
	ports.OrderPage, error,
) {
	return ports.OrderPage{}, nil
}

func (m *MockOrderRepository) DeleteByID(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create(role ports.ConnectionRole) commands.OrderUoW {
	args := m.Called(role)
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]ports.OutboxMessage)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockOutboxUoW struct{ mock.Mock }

func (m *MockOutboxUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create(role ports.ConnectionRole) commands.OutboxUoW {
	args := m.Called(role)
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// echoSave makes the repository mock behave like storage: assign an id and
// return the same aggregate.
func echoSave(repo *MockOrderRepository) *mock.Call {
	return repo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).
		Return(func(_ context.Context, o *order.Order) (*order.Order, error) {
			id := o.ID()
			if o.IsNew() {
				id = kernel.NewUUID()
			}
			if err := o.MarkPersisted(id, o.Version()+1); err != nil {
				return nil, err
			}
			return o, nil
		}, nil)
}

// wireOrderUoW sets up a factory that expects one primary unit of work.
func wireOrderUoW(t *testing.T) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	t.Helper()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create", ports.PrimaryRole).Return(uow).Once()
	uow.On("OrderRepository").Return(repo)
	return factory, uow, repo
}

func newOrderFixture(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "5 Station Road", order.CreditCard, "")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), nil, 2, kernel.MoneyFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))

	steps := []func() error{
		o.Confirm,
		o.StartPreparing,
		func() error { return o.AssignDeliveryPerson(kernel.NewUUID()) },
		o.Complete,
	}
	switch status {
	case order.Cancelled:
		require.NoError(t, o.Cancel(""))
	default:
		for _, step := range steps {
			if o.Status() == status {
				break
			}
			require.NoError(t, step())
		}
	}
	require.Equal(t, status, o.Status())
	require.NoError(t, o.MarkPersisted(kernel.NewUUID(), 1))
	o.ClearEvents()
	return o
}
