package cmd_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"orders/cmd"
	"orders/internal/core/application/usecases"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectingPublisher struct {
	mu       sync.Mutex
	messages []ports.OutboxMessage
}

func (p *collectingPublisher) Publish(_ context.Context, msg ports.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func newRoot(t *testing.T, publisher ports.EventPublisher) cmd.CompositionRoot {
	t.Helper()
	cfg, err := cmd.LoadConfig(func(string) string { return "" })
	require.NoError(t, err)

	uowFactory, closers, err := cmd.OpenStorage(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Len(t, closers, 1)
	t.Cleanup(func() { assert.NoError(t, closers[0]()) })

	return cmd.NewCompositionRoot(cfg, uowFactory, nil, publisher, nil)
}

func TestCompositionRoot_LifecycleAndRelay(t *testing.T) {
	publisher := &collectingPublisher{}
	root := newRoot(t, publisher)
	ctx := t.Context()

	lifecycle := root.CreateOrderLifecycle()
	created, err := lifecycle.CreateOrder(ctx, createInput())
	require.NoError(t, err)
	_, err = lifecycle.ConfirmOrder(ctx, created.ID())
	require.NoError(t, err)

	handler := root.CreatePublishOutboxCommandHandler()
	cmdBatch := mustBatch(t, 10)
	published, err := handler.Handle(ctx, cmdBatch)

	require.NoError(t, err)
	assert.Equal(t, 2, published)
	require.Len(t, publisher.messages, 2)
	assert.Equal(t, created.ID(), publisher.messages[0].AggregateID)
}

func TestCompositionRoot_HTTPServer(t *testing.T) {
	root := newRoot(t, &collectingPublisher{})

	e := echo.New()
	root.CreateHTTPServer().Register(e)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), strings.NewReader(""))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpenStorage_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	cfg, err := cmd.LoadConfig(func(key string) string {
		if key == "DB_SQLITE_PATH" {
			return path
		}
		return ""
	})
	require.NoError(t, err)
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	uowFactory, closers, err := cmd.OpenStorage(cfg, discard)
	require.NoError(t, err)
	root := cmd.NewCompositionRoot(cfg, uowFactory, nil, &collectingPublisher{}, nil)
	created, err := root.CreateOrderLifecycle().CreateOrder(t.Context(), createInput())
	require.NoError(t, err)
	for _, closeFn := range closers {
		require.NoError(t, closeFn())
	}

	reopened, closers, err := cmd.OpenStorage(cfg, discard)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	})
	root = cmd.NewCompositionRoot(cfg, reopened, nil, &collectingPublisher{}, nil)
	found, err := root.CreateOrderLifecycle().GetOrder(t.Context(), created.ID())

	require.NoError(t, err)
	assert.Equal(t, order.Pending, found.Status())
	assert.True(t, found.TotalPrice().IsEqual(created.TotalPrice()))
}

func TestOpenCacheAndPublisher_Fallbacks(t *testing.T) {
	cfg, err := cmd.LoadConfig(func(string) string { return "" })
	require.NoError(t, err)

	cache, closeCache, err := cmd.OpenCache(t.Context(), cfg)
	require.NoError(t, err)
	assert.Nil(t, cache)
	assert.Nil(t, closeCache)

	publisher, closePublisher, err := cmd.OpenPublisher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.NotNil(t, publisher)
	assert.Nil(t, closePublisher)
}

func TestCompositionRoot_JobManagerStarts(t *testing.T) {
	root := newRoot(t, &collectingPublisher{})

	manager := root.CreateJobManager()
	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func createInput() usecases.CreateOrderInput {
	return usecases.CreateOrderInput{
		CustomerID:      kernel.NewUUID(),
		StoreID:         kernel.NewUUID(),
		DeliveryAddress: "5 Harbour Rd",
		PaymentMethod:   order.NaverPay,
		Items: []commands.OrderItemInput{
			{MenuID: kernel.NewUUID(), Quantity: 2, UnitPrice: kernel.MoneyFromInt(3000)},
		},
	}
}

func mustBatch(t *testing.T, size int) commands.PublishOutboxCommand {
	t.Helper()
	c, err := commands.NewPublishOutboxCommand(size)
	require.NoError(t, err)
	return c
}
