package queries

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrListOrdersQueryIsNotConstructed is returned for a zero-value query.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Owner says whose orders a ListOrdersQuery selects.
type Owner int

const (
	// UnknownOwner is the zero value and is rejected by NewListOrdersQuery.
	UnknownOwner Owner = iota
	// CustomerOwner selects the orders a customer placed.
	CustomerOwner
	// StoreOwner selects the orders placed at a store.
	StoreOwner
	// DeliveryPersonOwner selects the orders assigned to a courier.
	DeliveryPersonOwner
)

// String returns the owner name used in error fields.
func (o Owner) String() string {
	switch o {
	case CustomerOwner:
		return "customer"
	case StoreOwner:
		return "store"
	case DeliveryPersonOwner:
		return "deliveryPerson"
	default:
		return "unknown"
	}
}

// ListOrdersQuery asks for one page of the orders that belong to a customer, a
// store or a delivery person.
//
// Example:
//
//	query, err := NewListOrdersQuery(CustomerOwner, customerID, 0, 20)
//	if err != nil {
//		return err
//	}
//	page, err := NewListOrdersQueryHandler(readerFactory).Handle(ctx, query)
type ListOrdersQuery struct {
	owner   Owner
	ownerID kernel.UUID
	page    ports.PageRequest

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds a page request for one owner. Page bounds are
// normalised rather than rejected.
func NewListOrdersQuery(owner Owner, ownerID kernel.UUID, page, size int) (ListOrdersQuery, error) {
	var ownerErr error
	if owner < CustomerOwner || owner > DeliveryPersonOwner {
		ownerErr = errs.NewValueIsInvalidErrorWithCause("owner", fmt.Errorf("%d is not a valid owner", owner))
	}
	if err := errors.Join(ownerErr, ownerID.ValidateAs(owner.String()+"ID")); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		owner:   owner,
		ownerID: ownerID,
		page:    ports.PageRequest{Page: page, Size: size}.Normalize(),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the query came from its constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Owner returns which kind of owner the query filters on.
func (q ListOrdersQuery) Owner() Owner {
	return q.owner
}

// OwnerID returns the customer, store or delivery person id.
func (q ListOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Page returns the normalized page request.
func (q ListOrdersQuery) Page() ports.PageRequest {
	return q.page
}
