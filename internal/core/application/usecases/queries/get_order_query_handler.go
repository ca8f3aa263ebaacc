package queries

import (
	"context"
	"log/slog"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// GetOrderQueryHandler loads one order, reading through the cache when one is
// configured.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(orderID)
//	if err != nil {
//		return nil, err
//	}
//	h := queries.NewGetOrderQueryHandler(readerFactory, cache, logger)
//	found, err := h.Handle(ctx, query)
type GetOrderQueryHandler struct {
	readerFactory OrderReaderFactory
	cache         ports.OrderCache
	logger        *slog.Logger
}

// NewGetOrderQueryHandler builds the handler. cache may be nil.
func NewGetOrderQueryHandler(readerFactory OrderReaderFactory, cache ports.OrderCache,
	logger *slog.Logger,
) GetOrderQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderQueryHandler{
		readerFactory: readerFactory,
		cache:         cache,
		logger:        logger.With("component", "GetOrderQueryHandler"),
	}
}

// Handle reads through the cache. Without a cache the order is read from the
// replica. A cache miss is filled from the primary, so a lagging replica never
// reaches the cache, and the fill never replaces an entry a writer stored in
// the meantime. A missing order is reported as errs.ErrObjectNotFound. Cache
// errors only get logged.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		cached, ok, err := h.cache.Get(ctx, query.OrderID())
		if err != nil {
			h.logger.WarnContext(ctx, "order cache read failed", "orderID", query.OrderID().String(), "error", err)
		}
		if ok {
			return cached, nil
		}
	}

	role := ports.ReplicaRole
	if h.cache != nil {
		role = ports.PrimaryRole
	}

	found, err := h.readerFactory.Create(role).OrderRepository().FindByID(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err = h.cache.SetIfAbsent(ctx, found); err != nil {
			h.logger.WarnContext(ctx, "order cache write failed", "orderID", found.ID().String(), "error", err)
		}
	}

	return found, nil
}
