package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler applies a generic status change. Unlike
// CancelOrderCommandHandler it can cancel a Preparing order.
//
// Example:
//
//	h := NewUpdateOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, order.Cancelled, "kitchen closed")
//	updated, err := h.Handle(ctx, cmd)
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler returns a handler that opens a primary unit of work per call.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the order along the transition table only.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (
	*order.Order, error,
) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		if !aggregate.CanChangeStatusTo(cmd.Status()) {
			return order.NewStatusTransitionError(aggregate.Status(), cmd.Status())
		}
		return aggregate.UpdateStatus(cmd.Status(), cmd.Reason())
	})
}
