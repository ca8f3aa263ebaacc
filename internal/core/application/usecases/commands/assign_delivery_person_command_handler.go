package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// AssignDeliveryPersonCommandHandler records the courier and moves the order
// to Delivering in one transaction.
//
// Example:
//
//	h := NewAssignDeliveryPersonCommandHandler(uowFactory)
//	cmd, _ := NewAssignDeliveryPersonCommand(orderID, courierID)
//	delivering, err := h.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrDeliveryPersonAssignment) {
//		// the order is not being prepared
//	}
type AssignDeliveryPersonCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignDeliveryPersonCommandHandler returns a handler that opens a primary unit of work per call.
func NewAssignDeliveryPersonCommandHandler(uowFactory OrderUoWFactory) AssignDeliveryPersonCommandHandler {
	return AssignDeliveryPersonCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle hands a Preparing order to the given delivery person. Choosing the
// person is up to the caller.
func (h *AssignDeliveryPersonCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryPersonCommand) (
	*order.Order, error,
) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.AssignDeliveryPerson(cmd.DeliveryPersonID())
	})
}
