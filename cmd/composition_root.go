// Package cmd assembles the service from configuration: it opens storage,
// the cache and the event bus, and builds the HTTP server and scheduled jobs.
package cmd

import (
	"log/slog"

	httpadapter "orders/internal/adapters/in/http"
	"orders/internal/adapters/in/observability"
	"orders/internal/core/application/usecases"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"
	"orders/internal/jobs"
	"orders/internal/pkg/telemetry"
)

const instrumentationName = "orders"

// CompositionRoot owns the shared infrastructure and creates every
// application component on top of it.
//
// Example:
//
//	factory, closers, err := cmd.OpenStorage(cfg, logger)
//	if err != nil {
//		return err
//	}
//	root := cmd.NewCompositionRoot(cfg, factory, cache, publisher, instruments)
//	server := root.CreateHTTPServer()
//	jobManager := root.CreateJobManager()
type CompositionRoot struct {
	cfg         Config
	uowFactory  ports.UnitOfWorkFactory
	cache       ports.OrderCache
	publisher   ports.EventPublisher
	instruments *telemetry.Instruments
	logger      *slog.Logger
}

// NewCompositionRoot wires handlers over an already opened storage backend.
// cache may be nil; instruments may be nil, in which case the otel globals are used.
func NewCompositionRoot(cfg Config, uowFactory ports.UnitOfWorkFactory, cache ports.OrderCache,
	publisher ports.EventPublisher, instruments *telemetry.Instruments,
) CompositionRoot {
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	return CompositionRoot{
		cfg:         cfg,
		uowFactory:  uowFactory,
		cache:       cache,
		publisher:   publisher,
		instruments: instruments,
		logger:      logger,
	}
}

// CreateOrderLifecycle returns the traced lifecycle service.
func (c *CompositionRoot) CreateOrderLifecycle() usecases.OrderLifecycle {
	var orders commands.OrderUoWFactory = FuncOrderUoWFactory(func(role ports.ConnectionRole) commands.OrderUoW {
		return c.uowFactory.Create(role)
	})
	var readers queries.OrderReaderFactory = FuncOrderReaderFactory(func(role ports.ConnectionRole) queries.OrderReader {
		return c.uowFactory.Create(role)
	})

	service := usecases.NewService(orders, readers, c.cache, c.logger)
	return observability.New(service,
		observability.WithLogger(c.logger),
		observability.WithTracer(c.instruments.Tracer(instrumentationName)),
		observability.WithMeter(c.instruments.Meter(instrumentationName)),
	)
}

// CreatePublishOutboxCommandHandler returns the handler that drains the outbox to the publisher.
func (c *CompositionRoot) CreatePublishOutboxCommandHandler() *commands.PublishOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func(role ports.ConnectionRole) commands.OutboxUoW {
		return c.uowFactory.Create(role)
	})
	handler := commands.NewPublishOutboxCommandHandler(f, c.publisher)
	return &handler
}

// CreateJobManager schedules the outbox relay with the configured batch size.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePublishOutboxCommandHandler(), jobs.Config{
		OutboxBatchSize:     c.cfg.OutboxBatchSize,
		OutboxRelaySchedule: c.cfg.OutboxRelaySchedule,
	}, c.logger)
}

// CreateHTTPServer returns the REST server over the traced lifecycle.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.CreateOrderLifecycle(), c.logger)
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func(role ports.ConnectionRole) commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create(role ports.ConnectionRole) commands.OrderUoW {
	return f(role)
}

// FuncOutboxUoWFactory adapts a function to commands.OutboxUoWFactory.
type FuncOutboxUoWFactory func(role ports.ConnectionRole) commands.OutboxUoW

// Create calls f.
func (f FuncOutboxUoWFactory) Create(role ports.ConnectionRole) commands.OutboxUoW {
	return f(role)
}

// FuncOrderReaderFactory adapts a function to queries.OrderReaderFactory.
type FuncOrderReaderFactory func(role ports.ConnectionRole) queries.OrderReader

// Create calls f.
func (f FuncOrderReaderFactory) Create(role ports.ConnectionRole) queries.OrderReader {
	return f(role)
}
