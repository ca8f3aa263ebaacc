package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// CreateOrderCommandHandler builds a Pending order from a command and saves it
// together with its first status event.
//
// Example:
//
//	h := NewCreateOrderCommandHandler(uowFactory)
//	created, err := h.Handle(ctx, cmd)
//	if err != nil {
//		return fmt.Errorf("place order: %w", err)
//	}
//	// created.ID() is set and created.TotalPrice() matches the items
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler returns a handler that opens a primary unit of work per call.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle places the order and returns it with its assigned identity. The total is
// derived from the items; nothing is persisted if any item is invalid.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(cmd.CustomerID(), cmd.StoreID(), cmd.DeliveryAddress(),
		cmd.PaymentMethod(), cmd.SpecialRequests())
	if err != nil {
		return nil, err
	}

	for _, in := range cmd.Items() {
		item, itemErr := order.NewItem(in.MenuID, in.Option, in.Quantity, in.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		if err = aggregate.AddItem(item); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create(ports.PrimaryRole)
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saved, err := uow.OrderRepository().Save(ctx, aggregate)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}
