package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned for a zero-value command.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested line. The price comes from the caller; the
// order only validates and totals it.
type OrderItemInput struct {
	MenuID    kernel.UUID
	Option    *order.MenuOption
	Quantity  int
	UnitPrice kernel.Money
}

// CreateOrderCommand carries everything needed to place an order. Item prices
// and quantities are checked when the handler builds the items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, storeID, "221B Baker St",
//		order.CreditCard, "ring twice", []OrderItemInput{
//			{MenuID: menuID, Quantity: 2, UnitPrice: kernel.MoneyFromInt(1000)},
//		})
//	if err != nil {
//		return err
//	}
//	h := NewCreateOrderCommandHandler(uowFactory)
//	created, err := h.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	storeID         kernel.UUID
	deliveryAddress string
	paymentMethod   order.PaymentMethod
	memo            string
	items           []OrderItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand requires both owner ids, a known payment method and at
// least one item with a menu id. Problems are reported together. The items
// slice is copied.
func NewCreateOrderCommand(customerID, storeID kernel.UUID, deliveryAddress string,
	paymentMethod order.PaymentMethod, memo string, items []OrderItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deliveryAddress: deliveryAddress,
		memo:            memo,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate reports whether the command came from its constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the store that will prepare the order.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// DeliveryAddress returns the address as given; the order trims and checks it.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// SpecialRequests returns the customer's memo for the store.
func (c CreateOrderCommand) SpecialRequests() string {
	return c.memo
}

// Items returns a copy of the requested lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	out := make([]OrderItemInput, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.ValidateAs("customerID"); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setStoreID(id kernel.UUID) error {
	if err := id.ValidateAs("storeID"); err != nil {
		return err
	}
	c.storeID = id
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.MenuID.ValidateAs(fmt.Sprintf("items[%d].menuID", i)); err != nil {
			return err
		}
	}
	c.items = make([]OrderItemInput, len(items))
	copy(c.items, items)
	return nil
}
