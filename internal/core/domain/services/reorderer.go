package services

import (
	"strings"

	"orders/internal/core/domain/model/order"
)

// Reorderer places a fresh order that repeats a previous one.
type Reorderer struct{}

// NewReorderer returns a stateless Reorderer.
func NewReorderer() Reorderer {
	return Reorderer{}
}

// Reorder copies customer, store, payment method and every item (with new item
// identities) into a new Pending order. The address is replaced when newAddress
// is not blank. Special requests are not carried over.
//
// The source order is only read.
func (r Reorderer) Reorder(source *order.Order, newAddress string) (*order.Order, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}

	address := source.DeliveryAddress()
	if strings.TrimSpace(newAddress) != "" {
		address = newAddress
	}

	reordered, err := order.NewOrder(source.CustomerID(), source.StoreID(), address, source.PaymentMethod(), "")
	if err != nil {
		return nil, err
	}

	for _, item := range source.Items() {
		if err = reordered.AddItem(item.Copy()); err != nil {
			return nil, err
		}
	}

	return reordered, nil
}
