package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

// ErrReorderCommandIsNotConstructed is returned for a zero-value command.
var ErrReorderCommandIsNotConstructed = errors.New(
	"ReorderCommand must be created via NewReorderCommand constructor",
)

// ReorderCommand repeats a previous order. An empty delivery address keeps the
// original one. SpecialRequests is applied to the new order only when given.
//
// Example:
//
//	cmd, err := NewReorderCommand(previousID, "", "")
//	if err != nil {
//		return err
//	}
//	h := NewReorderCommandHandler(uowFactory)
//	again, err := h.Handle(ctx, cmd)
type ReorderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	deliveryAddress string
	memo            string

	guard guard.ConstructorGuard
}

// NewReorderCommand requires the id of the order to repeat.
func NewReorderCommand(orderID kernel.UUID, deliveryAddress, memo string) (ReorderCommand, error) {
	if err := orderID.ValidateAs("orderID"); err != nil {
		return ReorderCommand{}, err
	}

	return ReorderCommand{
		orderID:         orderID,
		deliveryAddress: deliveryAddress,
		memo:            memo,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c ReorderCommand) Validate() error {
	return c.guard.Validate(ErrReorderCommandIsNotConstructed)
}

// OrderID returns the order being repeated.
func (c ReorderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryAddress returns the new address, or "" to keep the original.
func (c ReorderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// SpecialRequests returns the memo for the new order, or "" for none.
func (c ReorderCommand) SpecialRequests() string {
	return c.memo
}
