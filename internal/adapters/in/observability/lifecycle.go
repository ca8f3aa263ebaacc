// Package observability decorates the order lifecycle with tracing, metrics
// and logging.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/application/usecases"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "orders/internal/adapters/in/observability"

var _ usecases.OrderLifecycle = (*Lifecycle)(nil)

// Lifecycle wraps another OrderLifecycle. Every call runs in a span, is logged
// with its duration and counts towards the lifecycle metrics.
//
// Example:
//
//	traced := observability.New(service,
//		observability.WithLogger(logger),
//		observability.WithTracer(otel.Tracer("orders")),
//		observability.WithMeter(otel.Meter("orders")),
//	)
type Lifecycle struct {
	inner   usecases.OrderLifecycle
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics lifecycleMetrics
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithLogger sets the logger for call records.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lifecycle) {
		l.logger = logger
	}
}

// WithTracer sets the tracer that opens a span per call.
func WithTracer(tr trace.Tracer) Option {
	return func(l *Lifecycle) {
		l.tracer = tr
	}
}

// WithMeter records lifecycle counters on m. Instruments that cannot be created
// are reported to otel.Handle and skipped.
func WithMeter(m metric.Meter) Option {
	return func(l *Lifecycle) {
		l.metrics = newLifecycleMetrics(m)
	}
}

// New wraps inner. Without options spans go to a no-op tracer and no metrics
// are recorded.
func New(inner usecases.OrderLifecycle, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(instrumentationName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.tracer == nil {
		l.tracer = nooptrace.NewTracerProvider().Tracer(instrumentationName)
	}
	return l
}

// CreateOrder traces order creation.
func (l *Lifecycle) CreateOrder(ctx context.Context, in usecases.CreateOrderInput) (*order.Order, error) {
	created, err := observe(ctx, l, "CreateOrder", []attribute.KeyValue{
		attribute.String("order.customer_id", in.CustomerID.String()),
		attribute.String("order.store_id", in.StoreID.String()),
		attribute.Int("order.item_count", len(in.Items)),
	}, func(ctx context.Context) (*order.Order, error) {
		return l.inner.CreateOrder(ctx, in)
	})
	if err == nil {
		l.metrics.recordCreated(ctx, created)
	}
	return created, err
}

// GetOrder traces a single order read.
func (l *Lifecycle) GetOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return observe(ctx, l, "GetOrder", orderAttrs(orderID), func(ctx context.Context) (*order.Order, error) {
		return l.inner.GetOrder(ctx, orderID)
	})
}

// ListOrdersByCustomer traces a customer page read.
func (l *Lifecycle) ListOrdersByCustomer(ctx context.Context, customerID kernel.UUID, page, size int) (
	ports.OrderPage, error,
) {
	return observe(ctx, l, "ListOrdersByCustomer", pageAttrs("order.customer_id", customerID, page, size),
		func(ctx context.Context) (ports.OrderPage, error) {
			return l.inner.ListOrdersByCustomer(ctx, customerID, page, size)
		})
}

// ListOrdersByStore traces a store page read.
func (l *Lifecycle) ListOrdersByStore(ctx context.Context, storeID kernel.UUID, page, size int) (
	ports.OrderPage, error,
) {
	return observe(ctx, l, "ListOrdersByStore", pageAttrs("order.store_id", storeID, page, size),
		func(ctx context.Context) (ports.OrderPage, error) {
			return l.inner.ListOrdersByStore(ctx, storeID, page, size)
		})
}

// ListOrdersByDeliveryPerson traces a delivery person page read.
func (l *Lifecycle) ListOrdersByDeliveryPerson(ctx context.Context, personID kernel.UUID, page, size int) (
	ports.OrderPage, error,
) {
	return observe(ctx, l, "ListOrdersByDeliveryPerson", pageAttrs("order.delivery_person_id", personID, page, size),
		func(ctx context.Context) (ports.OrderPage, error) {
			return l.inner.ListOrdersByDeliveryPerson(ctx, personID, page, size)
		})
}

// CancelOrder traces a cancellation.
func (l *Lifecycle) CancelOrder(ctx context.Context, orderID kernel.UUID, reason string) error {
	_, err := observe(ctx, l, "CancelOrder", orderAttrs(orderID), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, l.inner.CancelOrder(ctx, orderID, reason)
	})
	if err == nil {
		l.metrics.recordStatusChange(ctx, order.Cancelled)
	}
	return err
}

// UpdateOrderStatus traces a status change.
func (l *Lifecycle) UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, status order.Status,
	reason string,
) (*order.Order, error) {
	attrs := append(orderAttrs(orderID), attribute.String("order.target_status", status.String()))
	return l.statusChange(ctx, "UpdateOrderStatus", attrs, func(ctx context.Context) (*order.Order, error) {
		return l.inner.UpdateOrderStatus(ctx, orderID, status, reason)
	})
}

// Reorder traces a reorder.
func (l *Lifecycle) Reorder(ctx context.Context, orderID kernel.UUID, deliveryAddress, memo string) (
	*order.Order, error,
) {
	created, err := observe(ctx, l, "Reorder", orderAttrs(orderID), func(ctx context.Context) (*order.Order, error) {
		return l.inner.Reorder(ctx, orderID, deliveryAddress, memo)
	})
	if err == nil {
		l.metrics.recordCreated(ctx, created)
	}
	return created, err
}

// ConfirmOrder traces a confirmation.
func (l *Lifecycle) ConfirmOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return l.statusChange(ctx, "ConfirmOrder", orderAttrs(orderID), func(ctx context.Context) (*order.Order, error) {
		return l.inner.ConfirmOrder(ctx, orderID)
	})
}

// StartPreparingOrder traces the start of preparation.
func (l *Lifecycle) StartPreparingOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return l.statusChange(ctx, "StartPreparingOrder", orderAttrs(orderID),
		func(ctx context.Context) (*order.Order, error) {
			return l.inner.StartPreparingOrder(ctx, orderID)
		})
}

// AssignDeliveryPerson traces a courier assignment.
func (l *Lifecycle) AssignDeliveryPerson(ctx context.Context, orderID, personID kernel.UUID) (*order.Order, error) {
	attrs := append(orderAttrs(orderID), attribute.String("order.delivery_person_id", personID.String()))
	return l.statusChange(ctx, "AssignDeliveryPerson", attrs, func(ctx context.Context) (*order.Order, error) {
		return l.inner.AssignDeliveryPerson(ctx, orderID, personID)
	})
}

// CompleteOrder traces a delivery.
func (l *Lifecycle) CompleteOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return l.statusChange(ctx, "CompleteOrder", orderAttrs(orderID), func(ctx context.Context) (*order.Order, error) {
		return l.inner.CompleteOrder(ctx, orderID)
	})
}

// UpdateSpecialRequests traces a memo change.
func (l *Lifecycle) UpdateSpecialRequests(ctx context.Context, orderID kernel.UUID, memo string) (
	*order.Order, error,
) {
	return observe(ctx, l, "UpdateSpecialRequests", orderAttrs(orderID),
		func(ctx context.Context) (*order.Order, error) {
			return l.inner.UpdateSpecialRequests(ctx, orderID, memo)
		})
}

// DeleteOrder traces a deletion.
func (l *Lifecycle) DeleteOrder(ctx context.Context, orderID kernel.UUID) error {
	_, err := observe(ctx, l, "DeleteOrder", orderAttrs(orderID), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, l.inner.DeleteOrder(ctx, orderID)
	})
	return err
}

func (l *Lifecycle) statusChange(ctx context.Context, op string, attrs []attribute.KeyValue,
	fn func(context.Context) (*order.Order, error),
) (*order.Order, error) {
	updated, err := observe(ctx, l, op, attrs, fn)
	if err == nil {
		l.metrics.recordStatusChange(ctx, updated.Status())
	}
	return updated, err
}

// observe runs fn inside a span named after op and records its duration. Errors
// are marked on the span, logged and counted, then returned unchanged.
func observe[T any](ctx context.Context, l *Lifecycle, op string, attrs []attribute.KeyValue,
	fn func(context.Context) (T, error),
) (T, error) {
	ctx, span := l.tracer.Start(ctx, "OrderLifecycle."+op, trace.WithAttributes(attrs...))
	defer span.End()

	started := time.Now()
	result, err := fn(ctx)
	l.metrics.recordDuration(ctx, op, time.Since(started), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.log(ctx, slog.LevelWarn, op+" failed", append(slogAttrs(attrs), slog.String("error", err.Error()))...)
		return result, err
	}
	l.log(ctx, slog.LevelDebug, op+" succeeded", slogAttrs(attrs)...)
	return result, nil
}

func (l *Lifecycle) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if l.logger == nil {
		return
	}
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}

func orderAttrs(orderID kernel.UUID) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("order.id", orderID.String())}
}

func pageAttrs(key string, ownerID kernel.UUID, page, size int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(key, ownerID.String()),
		attribute.Int("page.number", page),
		attribute.Int("page.size", size),
	}
}

func slogAttrs(attrs []attribute.KeyValue) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, kv := range attrs {
		out = append(out, slog.String(string(kv.Key), kv.Value.Emit()))
	}
	return out
}

type lifecycleMetrics struct {
	ordersCreated metric.Int64Counter
	statusChanges metric.Int64Counter
	duration      metric.Float64Histogram
}

// newLifecycleMetrics creates the instruments on m. Creation errors go to the
// global otel error handler; a failed instrument is simply not recorded.
func newLifecycleMetrics(m metric.Meter) lifecycleMetrics {
	if m == nil {
		return lifecycleMetrics{}
	}
	ordersCreated, err := m.Int64Counter("orders.lifecycle.created",
		metric.WithDescription("Number of orders created, reorders included"))
	if err != nil {
		otel.Handle(fmt.Errorf("create orders.lifecycle.created counter: %w", err))
	}
	statusChanges, err := m.Int64Counter("orders.lifecycle.status_changes",
		metric.WithDescription("Number of successful status changes by target status"))
	if err != nil {
		otel.Handle(fmt.Errorf("create orders.lifecycle.status_changes counter: %w", err))
	}
	duration, err := m.Float64Histogram("orders.lifecycle.duration",
		metric.WithDescription("Lifecycle operation duration"), metric.WithUnit("ms"))
	if err != nil {
		otel.Handle(fmt.Errorf("create orders.lifecycle.duration histogram: %w", err))
	}
	return lifecycleMetrics{ordersCreated: ordersCreated, statusChanges: statusChanges, duration: duration}
}

func (m lifecycleMetrics) recordCreated(ctx context.Context, created *order.Order) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(
			attribute.String("order.payment_method", created.PaymentMethod().String())))
	}
}

func (m lifecycleMetrics) recordStatusChange(ctx context.Context, status order.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", status.String())))
	}
}

func (m lifecycleMetrics) recordDuration(ctx context.Context, op string, d time.Duration, err error) {
	if m.duration != nil {
		m.duration.Record(ctx, float64(d.Microseconds())/1000, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.Bool("error", err != nil),
		))
	}
}
