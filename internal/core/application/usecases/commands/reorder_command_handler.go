package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
)

// ReorderCommandHandler places a copy of an earlier order: same customer,
// store, payment method and items, with a fresh history.
//
// Example:
//
//	h := NewReorderCommandHandler(uowFactory)
//	cmd, _ := NewReorderCommand(previousID, "10 Downing St", "")
//	again, err := h.Handle(ctx, cmd)
//	// again.Status() == order.Pending and again.ID() != previousID
type ReorderCommandHandler struct {
	uowFactory OrderUoWFactory
	reorderer  services.Reorderer
}

// NewReorderCommandHandler returns a handler that opens a primary unit of work per call.
func NewReorderCommandHandler(uowFactory OrderUoWFactory) ReorderCommandHandler {
	return ReorderCommandHandler{
		uowFactory: uowFactory,
		reorderer:  services.NewReorderer(),
	}
}

// Handle saves a new Pending order built from the referenced one. The source
// order is not modified.
func (h *ReorderCommandHandler) Handle(ctx context.Context, cmd ReorderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create(ports.PrimaryRole)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	source, err := orderRepo.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	reordered, err := h.reorderer.Reorder(source, cmd.DeliveryAddress())
	if err != nil {
		return nil, err
	}
	if cmd.SpecialRequests() != "" {
		reordered.UpdateSpecialRequests(cmd.SpecialRequests())
	}

	saved, err := orderRepo.Save(ctx, reordered)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}
