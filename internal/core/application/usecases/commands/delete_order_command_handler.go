package commands

import (
	"context"

	"orders/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order in any status.
//
// Example:
//
//	h := NewDeleteOrderCommandHandler(uowFactory)
//	cmd, _ := NewDeleteOrderCommand(orderID)
//	if err := h.Handle(ctx, cmd); errors.Is(err, errs.ErrObjectNotFound) {
//		// nothing to delete
//	}
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler returns a handler that opens a primary unit of work per call.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the order with its items and history. A missing order is
// reported as errs.ErrObjectNotFound.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create(ports.PrimaryRole)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().DeleteByID(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
