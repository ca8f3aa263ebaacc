package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

// ErrUpdateOrderStatusCommandIsNotConstructed is returned for a zero-value command.
var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to any status the transition
// table allows from its current one.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	reason  string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand requires an order id and a known target status.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, status order.Status, reason string) (
	UpdateOrderStatusCommand, error,
) {
	if err := errors.Join(orderID.ValidateAs("orderID"), status.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		status:  status,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested status.
func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

// Reason returns the free-text reason recorded with the status event.
func (c UpdateOrderStatusCommand) Reason() string {
	return c.reason
}
