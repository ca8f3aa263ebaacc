package queries_test

import (
	"context"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Save(_ context.Context, o *order.Order) (*order.Order, error) {
	return o, nil
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	found, _ := args.Get(0).(*order.Order)
	return found, args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerID(ctx context.Context, id kernel.UUID, page ports.PageRequest) (
	ports.OrderPage, error,
) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

func (m *MockOrderRepository) FindByStoreID(ctx context.Context, id kernel.UUID, page ports.PageRequest) (
	ports.OrderPage, error,
) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

func (m *MockOrderRepository) FindByDeliveryPersonID(ctx context.Context, id kernel.UUID, page ports.PageRequest) (
	ports.OrderPage, error,
) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

func (m *MockOrderRepository) DeleteByID(_ context.Context, _ kernel.UUID) error {
	return nil
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderReaderFactory struct{ mock.Mock }

func (m *MockOrderReaderFactory) Create(role ports.ConnectionRole) queries.OrderReader {
	args := m.Called(role)
	return args.Get(0).(queries.OrderReader)
}

type MockOrderCache struct{ mock.Mock }

func (m *MockOrderCache) Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	args := m.Called(ctx, id)
	found, _ := args.Get(0).(*order.Order)
	return found, args.Bool(1), args.Error(2)
}

func (m *MockOrderCache) Set(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderCache) SetIfAbsent(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderCache) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// wireReader answers every role with the same repository mock.
func wireReader() (*MockOrderReaderFactory, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	reader := new(MockOrderReader)
	reader.On("OrderRepository").Return(repo)
	factory := new(MockOrderReaderFactory)
	factory.On("Create", ports.ReplicaRole).Return(reader)
	factory.On("Create", ports.PrimaryRole).Return(reader)
	return factory, repo
}
