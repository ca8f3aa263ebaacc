package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// UpdateSpecialRequestsCommandHandler rewrites the memo of an order in any
// status. The change does not touch the history or produce an event.
//
// Example:
//
//	h := NewUpdateSpecialRequestsCommandHandler(uowFactory)
//	cmd, _ := NewUpdateSpecialRequestsCommand(orderID, "leave at door")
//	updated, err := h.Handle(ctx, cmd)
type UpdateSpecialRequestsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateSpecialRequestsCommandHandler returns a handler that opens a primary unit of work per call.
func NewUpdateSpecialRequestsCommandHandler(uowFactory OrderUoWFactory) UpdateSpecialRequestsCommandHandler {
	return UpdateSpecialRequestsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle saves the new memo and returns the saved order.
func (h *UpdateSpecialRequestsCommandHandler) Handle(ctx context.Context, cmd UpdateSpecialRequestsCommand) (
	*order.Order, error,
) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		aggregate.UpdateSpecialRequests(cmd.SpecialRequests())
		return nil
	})
}
