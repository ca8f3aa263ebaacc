package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// StartPreparingOrderCommandHandler moves a Confirmed order to Preparing.
//
// Example:
//
//	h := NewStartPreparingOrderCommandHandler(uowFactory)
//	cmd, _ := NewStartPreparingOrderCommand(orderID)
//	preparing, err := h.Handle(ctx, cmd)
type StartPreparingOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartPreparingOrderCommandHandler returns a handler that opens a primary unit of work per call.
func NewStartPreparingOrderCommandHandler(uowFactory OrderUoWFactory) StartPreparingOrderCommandHandler {
	return StartPreparingOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle starts preparation of a Confirmed order and returns the saved order.
func (h *StartPreparingOrderCommandHandler) Handle(ctx context.Context, cmd StartPreparingOrderCommand) (
	*order.Order, error,
) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.StartPreparing()
	})
}
