package ports

import (
	"context"
	"math"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

const (
	// DefaultPageSize applies when a request asks for no size or a negative one.
	DefaultPageSize = 20
	// MaxPageSize caps the number of orders returned by a single page.
	MaxPageSize = 100
	// MaxPage is the last page whose offset still fits in an int at MaxPageSize.
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest selects a zero-based page of results.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to sane bounds. Pages past MaxPage are pinned to
// MaxPage, which is always empty in practice, so Offset cannot overflow.
//
// Example:
//
//	page := ports.PageRequest{Page: -1, Size: 500}.Normalize()
//	// page.Page == 0, page.Size == ports.MaxPageSize
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the number of rows skipped before the page starts. Call it on a
// normalized request.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// OrderPage is one page of orders, newest first, with the total match count.
type OrderPage struct {
	Orders []*order.Order
	Page   int
	Size   int
	Total  int64
}

// OrderRepository stores order aggregates together with their items and history.
type OrderRepository interface {
	// Save inserts a new order or updates an existing one. New orders receive
	// their identity here. A stale version is rejected with errs.ErrVersionIsInvalid.
	Save(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// FindByID returns errs.ErrObjectNotFound when no order matches.
	FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByCustomerID returns the customer's orders, newest first.
	FindByCustomerID(ctx context.Context, customerID kernel.UUID, page PageRequest) (OrderPage, error)

	// FindByStoreID returns the orders placed at a store, newest first.
	FindByStoreID(ctx context.Context, storeID kernel.UUID, page PageRequest) (OrderPage, error)

	// FindByDeliveryPersonID returns the orders assigned to a courier, newest first.
	FindByDeliveryPersonID(ctx context.Context, personID kernel.UUID, page PageRequest) (OrderPage, error)

	// DeleteByID removes the order with its items and history. A missing order
	// is reported as errs.ErrObjectNotFound.
	DeleteByID(ctx context.Context, id kernel.UUID) error
}
