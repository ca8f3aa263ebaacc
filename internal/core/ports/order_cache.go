package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderCache is a read-through cache in front of OrderRepository.FindByID.
// Cache failures must never fail a request; callers log and fall back.
//
// Writers refresh entries with Set after a commit. Readers fill misses with
// SetIfAbsent so a slow read never overwrites a newer entry.
//
// Example:
//
//	cached, ok, err := cache.Get(ctx, orderID)
//	if err == nil && ok {
//		return cached, nil
//	}
//	found, err := repo.FindByID(ctx, orderID)
//	if err != nil {
//		return nil, err
//	}
//	_ = cache.SetIfAbsent(ctx, found)
type OrderCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error)

	// Set stores the aggregate, replacing any cached copy.
	Set(ctx context.Context, aggregate *order.Order) error

	// SetIfAbsent stores the aggregate only when nothing is cached under its id.
	SetIfAbsent(ctx context.Context, aggregate *order.Order) error

	// Delete drops the cached copy. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id kernel.UUID) error
}
