package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

// ErrUpdateSpecialRequestsCommandIsNotConstructed is returned for a zero-value command.
var ErrUpdateSpecialRequestsCommandIsNotConstructed = errors.New(
	"UpdateSpecialRequestsCommand must be created via NewUpdateSpecialRequestsCommand constructor",
)

// UpdateSpecialRequestsCommand replaces the memo of an order. An empty memo clears it.
type UpdateSpecialRequestsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	memo    string

	guard guard.ConstructorGuard
}

// NewUpdateSpecialRequestsCommand requires an order id.
func NewUpdateSpecialRequestsCommand(orderID kernel.UUID, memo string) (UpdateSpecialRequestsCommand, error) {
	if err := orderID.ValidateAs("orderID"); err != nil {
		return UpdateSpecialRequestsCommand{}, err
	}

	return UpdateSpecialRequestsCommand{
		orderID: orderID,
		memo:    memo,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c UpdateSpecialRequestsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSpecialRequestsCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c UpdateSpecialRequestsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SpecialRequests returns the new memo.
func (c UpdateSpecialRequestsCommand) SpecialRequests() string {
	return c.memo
}
