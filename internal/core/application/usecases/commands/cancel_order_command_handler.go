package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// CancelOrderCommandHandler applies the narrow cancellation rule to a stored order.
//
// Example:
//
//	cmd, err := commands.NewCancelOrderCommand(orderID, "ordered twice")
//	if err != nil {
//		return err
//	}
//	h := commands.NewCancelOrderCommandHandler(uowFactory)
//	cancelled, err := h.Handle(ctx, cmd)
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler returns a handler that opens a primary unit of
// work per call.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels a Pending or Confirmed order. Any other status is rejected with
// order.ErrInvalidStatusTransition, even where the transition table would allow it.
// The saved order is returned.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		if !aggregate.CanBeCancelled() {
			return order.NewStatusTransitionError(aggregate.Status(), order.Cancelled)
		}
		return aggregate.Cancel(cmd.Reason())
	})
}
