package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

// ErrStartPreparingOrderCommandIsNotConstructed is returned for a zero-value command.
var ErrStartPreparingOrderCommandIsNotConstructed = errors.New(
	"StartPreparingOrderCommand must be created via NewStartPreparingOrderCommand constructor",
)

// StartPreparingOrderCommand asks to move a Confirmed order into the kitchen.
type StartPreparingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPreparingOrderCommand requires an order id.
func NewStartPreparingOrderCommand(orderID kernel.UUID) (StartPreparingOrderCommand, error) {
	if err := orderID.ValidateAs("orderID"); err != nil {
		return StartPreparingOrderCommand{}, err
	}

	return StartPreparingOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c StartPreparingOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparingOrderCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c StartPreparingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
