package order

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	// MinItemQuantity is the smallest quantity a line item may carry.
	MinItemQuantity = 1
	// MaxItemQuantity is the largest quantity a line item may carry.
	MaxItemQuantity = 99
)

// MenuOption is an optional add-on chosen for a line item, such as a size upgrade.
type MenuOption struct {
	id              kernel.UUID
	name            string
	additionalPrice kernel.Money
}

// NewMenuOption builds an add-on. id is required and name is trimmed.
//
// Example:
//
//	large, err := order.NewMenuOption(optionID, "large", kernel.MoneyFromInt(1))
//	if err != nil {
//		return err
//	}
//	item, err := order.NewItem(menuID, &large, 2, kernel.MoneyFromInt(9))
func NewMenuOption(id kernel.UUID, name string, additionalPrice kernel.Money) (MenuOption, error) {
	if err := id.ValidateAs("menuOptionID"); err != nil {
		return MenuOption{}, err
	}
	return MenuOption{id: id, name: strings.TrimSpace(name), additionalPrice: additionalPrice}, nil
}

// ID returns the menu option identifier.
func (o MenuOption) ID() kernel.UUID {
	return o.id
}

// Name returns the trimmed option name.
func (o MenuOption) Name() string {
	return o.name
}

// AdditionalPrice returns the surcharge added to the unit price.
func (o MenuOption) AdditionalPrice() kernel.Money {
	return o.additionalPrice
}

// Item is one line of an order. It is immutable; changing a quantity means
// removing the item and adding a new one.
type Item struct {
	id        kernel.UUID
	menuID    kernel.UUID
	option    *MenuOption
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a line item with a fresh identity. option may be nil.
func NewItem(menuID kernel.UUID, option *MenuOption, quantity int, unitPrice kernel.Money) (Item, error) {
	return RestoreItem(kernel.NewUUID(), menuID, option, quantity, unitPrice)
}

// RestoreItem rebuilds an item with a known identity, typically read from storage.
func RestoreItem(id kernel.UUID, menuID kernel.UUID, option *MenuOption, quantity int,
	unitPrice kernel.Money,
) (Item, error) {
	item := Item{
		id:        id,
		menuID:    menuID,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}
	if option != nil {
		opt := *option
		item.option = &opt
	}

	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Validate checks construction and the quantity and price constraints.
func (i Item) Validate() error {
	if err := i.guard.Validate(ErrItemIsNotConstructed); err != nil {
		return err
	}

	var quantityErr, priceErr error
	if i.quantity < MinItemQuantity || i.quantity > MaxItemQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", i.quantity, MinItemQuantity, MaxItemQuantity)
	}
	if !i.unitPrice.IsPositive() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is not greater than 0", i.unitPrice))
	}

	return errors.Join(
		i.id.ValidateAs("itemID"),
		i.menuID.ValidateAs("menuID"),
		quantityErr,
		priceErr,
	)
}

// ID returns the line item identity.
func (i Item) ID() kernel.UUID {
	return i.id
}

// MenuID returns the ordered menu entry.
func (i Item) MenuID() kernel.UUID {
	return i.menuID
}

// Quantity returns how many units were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of one unit without the option surcharge.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// HasOption reports whether a menu option is attached.
func (i Item) HasOption() bool {
	return i.option != nil
}

// Option returns a copy of the attached option, or nil.
func (i Item) Option() *MenuOption {
	if i.option == nil {
		return nil
	}
	opt := *i.option
	return &opt
}

// LineTotal is unitPrice*quantity plus the option surcharge per unit.
func (i Item) LineTotal() kernel.Money {
	total := i.unitPrice.Mul(i.quantity)
	if i.option != nil {
		total = total.Add(i.option.additionalPrice.Mul(i.quantity))
	}
	return total
}

// Copy returns the same line with a new identity.
func (i Item) Copy() Item {
	c := i
	c.id = kernel.NewUUID()
	c.option = i.Option()
	return c
}
