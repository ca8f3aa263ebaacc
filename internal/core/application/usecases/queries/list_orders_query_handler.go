package queries

import (
	"context"

	"orders/internal/core/ports"
)

// ListOrdersQueryHandler pages through orders on the replica, newest first.
//
// Example:
//
//	h := NewListOrdersQueryHandler(readerFactory)
//	query, _ := NewListOrdersQuery(StoreOwner, storeID, 1, 50)
//	page, err := h.Handle(ctx, query)
//	// page.Total counts every order of the store, page.Orders holds at most 50
type ListOrdersQueryHandler struct {
	readerFactory OrderReaderFactory
}

// NewListOrdersQueryHandler returns a handler over readerFactory.
func NewListOrdersQueryHandler(readerFactory OrderReaderFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{readerFactory: readerFactory}
}

// Handle runs the query. An owner without orders yields an empty page, not an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ports.OrderPage, error) {
	if err := query.Validate(); err != nil {
		return ports.OrderPage{}, err
	}

	repo := h.readerFactory.Create(ports.ReplicaRole).OrderRepository()
	switch query.Owner() {
	case CustomerOwner:
		return repo.FindByCustomerID(ctx, query.OwnerID(), query.Page())
	case StoreOwner:
		return repo.FindByStoreID(ctx, query.OwnerID(), query.Page())
	default:
		return repo.FindByDeliveryPersonID(ctx, query.OwnerID(), query.Page())
	}
}
