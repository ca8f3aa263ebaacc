package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler accepts a Pending order on behalf of the store.
//
// Example:
//
//	h := NewConfirmOrderCommandHandler(uowFactory)
//	cmd, _ := NewConfirmOrderCommand(orderID)
//	confirmed, err := h.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidStatusTransition) {
//		// the order is no longer pending, or it has no items
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmOrderCommandHandler returns a handler that opens a primary unit of work per call.
func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle accepts a Pending order that has items.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Confirm()
	})
}
