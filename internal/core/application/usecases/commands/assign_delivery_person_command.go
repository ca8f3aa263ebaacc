package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

// ErrAssignDeliveryPersonCommandIsNotConstructed is returned for a zero-value command.
var ErrAssignDeliveryPersonCommandIsNotConstructed = errors.New(
	"AssignDeliveryPersonCommand must be created via NewAssignDeliveryPersonCommand constructor",
)

// AssignDeliveryPersonCommand asks to hand a Preparing order to a courier.
//
// Example:
//
//	cmd, err := NewAssignDeliveryPersonCommand(orderID, courierID)
//	if err != nil {
//		return err
//	}
//	h := NewAssignDeliveryPersonCommandHandler(uowFactory)
//	delivering, err := h.Handle(ctx, cmd)
type AssignDeliveryPersonCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDeliveryPersonCommand requires both ids. Problems with each are reported together.
func NewAssignDeliveryPersonCommand(orderID, deliveryPersonID kernel.UUID) (AssignDeliveryPersonCommand, error) {
	if err := errors.Join(
		orderID.ValidateAs("orderID"),
		deliveryPersonID.ValidateAs("deliveryPersonID"),
	); err != nil {
		return AssignDeliveryPersonCommand{}, err
	}

	return AssignDeliveryPersonCommand{
		orderID:          orderID,
		deliveryPersonID: deliveryPersonID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c AssignDeliveryPersonCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryPersonCommandIsNotConstructed)
}

// OrderID returns the order to hand over.
func (c AssignDeliveryPersonCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryPersonID returns the courier taking the order.
func (c AssignDeliveryPersonCommand) DeliveryPersonID() kernel.UUID {
	return c.deliveryPersonID
}
