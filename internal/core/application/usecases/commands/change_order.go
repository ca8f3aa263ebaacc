package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// changeOrder loads one order on the primary connection, applies change and
// saves the result in the same transaction. Errors from change are returned as is.
func changeOrder(ctx context.Context, uowFactory OrderUoWFactory, orderID kernel.UUID,
	change func(aggregate *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create(ports.PrimaryRole)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = change(aggregate); err != nil {
		return nil, err
	}

	saved, err := orderRepo.Save(ctx, aggregate)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}
