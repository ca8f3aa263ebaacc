package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// CompleteOrderCommandHandler marks a Delivering order as delivered. The order
// must already have a delivery person.
//
// Example:
//
//	h := NewCompleteOrderCommandHandler(uowFactory)
//	cmd, _ := NewCompleteOrderCommand(orderID)
//	completed, err := h.Handle(ctx, cmd)
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteOrderCommandHandler returns a handler that opens a primary unit of work per call.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks a Delivering order as delivered.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Complete()
	})
}
