// Package usecases exposes the order lifecycle to transports. Each operation
// builds a command or query and runs it through its handler.
package usecases

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// OrderLifecycle is everything a transport can do with orders.
type OrderLifecycle interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error)
	GetOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID kernel.UUID, page, size int) (ports.OrderPage, error)
	ListOrdersByStore(ctx context.Context, storeID kernel.UUID, page, size int) (ports.OrderPage, error)
	ListOrdersByDeliveryPerson(ctx context.Context, personID kernel.UUID, page, size int) (ports.OrderPage, error)
	CancelOrder(ctx context.Context, orderID kernel.UUID, reason string) error
	UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, status order.Status, reason string) (*order.Order, error)
	Reorder(ctx context.Context, orderID kernel.UUID, deliveryAddress, memo string) (*order.Order, error)
	ConfirmOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
	StartPreparingOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
	AssignDeliveryPerson(ctx context.Context, orderID, personID kernel.UUID) (*order.Order, error)
	CompleteOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
	UpdateSpecialRequests(ctx context.Context, orderID kernel.UUID, memo string) (*order.Order, error)
	DeleteOrder(ctx context.Context, orderID kernel.UUID) error
}

// CreateOrderInput carries a new order as a transport received it. Validation
// happens in commands.NewCreateOrderCommand.
type CreateOrderInput struct {
	CustomerID      kernel.UUID
	StoreID         kernel.UUID
	DeliveryAddress string
	PaymentMethod   order.PaymentMethod
	SpecialRequests string
	Items           []commands.OrderItemInput
}

var _ OrderLifecycle = (*Service)(nil)

// Service implements OrderLifecycle on top of the command and query handlers.
// It logs every successful mutation and keeps the order cache current.
//
// Example:
//
//	svc := usecases.NewService(uowFactory, uowFactory, cache, logger)
//	created, err := svc.CreateOrder(ctx, usecases.CreateOrderInput{
//		CustomerID:      customerID,
//		StoreID:         storeID,
//		DeliveryAddress: "221B Baker Street",
//		PaymentMethod:   order.CreditCard,
//		Items:           items,
//	})
//	if err != nil {
//		return err
//	}
//	_, err = svc.ConfirmOrder(ctx, created.ID())
type Service struct {
	createOrder           commands.CreateOrderCommandHandler
	cancelOrder           commands.CancelOrderCommandHandler
	updateOrderStatus     commands.UpdateOrderStatusCommandHandler
	reorder               commands.ReorderCommandHandler
	confirmOrder          commands.ConfirmOrderCommandHandler
	startPreparingOrder   commands.StartPreparingOrderCommandHandler
	assignDeliveryPerson  commands.AssignDeliveryPersonCommandHandler
	completeOrder         commands.CompleteOrderCommandHandler
	updateSpecialRequests commands.UpdateSpecialRequestsCommandHandler
	deleteOrder           commands.DeleteOrderCommandHandler

	getOrder   queries.GetOrderQueryHandler
	listOrders queries.ListOrdersQueryHandler

	cache  ports.OrderCache
	logger *slog.Logger
}

// NewService wires every handler. cache and logger may be nil.
func NewService(uowFactory commands.OrderUoWFactory, readerFactory queries.OrderReaderFactory,
	cache ports.OrderCache, logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		createOrder:           commands.NewCreateOrderCommandHandler(uowFactory),
		cancelOrder:           commands.NewCancelOrderCommandHandler(uowFactory),
		updateOrderStatus:     commands.NewUpdateOrderStatusCommandHandler(uowFactory),
		reorder:               commands.NewReorderCommandHandler(uowFactory),
		confirmOrder:          commands.NewConfirmOrderCommandHandler(uowFactory),
		startPreparingOrder:   commands.NewStartPreparingOrderCommandHandler(uowFactory),
		assignDeliveryPerson:  commands.NewAssignDeliveryPersonCommandHandler(uowFactory),
		completeOrder:         commands.NewCompleteOrderCommandHandler(uowFactory),
		updateSpecialRequests: commands.NewUpdateSpecialRequestsCommandHandler(uowFactory),
		deleteOrder:           commands.NewDeleteOrderCommandHandler(uowFactory),
		getOrder:              queries.NewGetOrderQueryHandler(readerFactory, cache, logger),
		listOrders:            queries.NewListOrdersQueryHandler(readerFactory),
		cache:                 cache,
		logger:                logger.With("component", "OrderLifecycle"),
	}
}

// CreateOrder places a Pending order and logs its total.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error) {
	cmd, err := commands.NewCreateOrderCommand(in.CustomerID, in.StoreID, in.DeliveryAddress,
		in.PaymentMethod, in.SpecialRequests, in.Items)
	if err != nil {
		return nil, err
	}

	created, err := s.createOrder.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "order created", "orderID", created.ID().String(),
		"customerID", created.CustomerID().String(), "totalPrice", created.TotalPrice().String())
	return created, nil
}

// GetOrder returns one order, from the cache when it holds it.
func (s *Service) GetOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return nil, err
	}
	return s.getOrder.Handle(ctx, query)
}

// ListOrdersByCustomer pages through the orders a customer placed.
func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID kernel.UUID, page, size int) (
	ports.OrderPage, error,
) {
	return s.list(ctx, queries.CustomerOwner, customerID, page, size)
}

// ListOrdersByStore pages through the orders placed at a store.
func (s *Service) ListOrdersByStore(ctx context.Context, storeID kernel.UUID, page, size int) (
	ports.OrderPage, error,
) {
	return s.list(ctx, queries.StoreOwner, storeID, page, size)
}

// ListOrdersByDeliveryPerson pages through the orders assigned to a courier.
func (s *Service) ListOrdersByDeliveryPerson(ctx context.Context, personID kernel.UUID, page, size int) (
	ports.OrderPage, error,
) {
	return s.list(ctx, queries.DeliveryPersonOwner, personID, page, size)
}

// CancelOrder only cancels Pending or Confirmed orders.
func (s *Service) CancelOrder(ctx context.Context, orderID kernel.UUID, reason string) error {
	cmd, err := commands.NewCancelOrderCommand(orderID, reason)
	if err != nil {
		return err
	}
	cancelled, err := s.cancelOrder.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	s.refresh(ctx, cancelled)
	s.logger.InfoContext(ctx, "order cancelled", "orderID", orderID.String(), "reason", reason)
	return nil
}

// UpdateOrderStatus follows the transition table, so it can also cancel an order
// that is already being prepared.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, status order.Status,
	reason string,
) (*order.Order, error) {
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, reason)
	if err != nil {
		return nil, err
	}
	return s.changed(ctx, orderID)(s.updateOrderStatus.Handle(ctx, cmd))
}

// Reorder copies the items of an existing order into a new Pending order.
func (s *Service) Reorder(ctx context.Context, orderID kernel.UUID, deliveryAddress, memo string) (
	*order.Order, error,
) {
	cmd, err := commands.NewReorderCommand(orderID, deliveryAddress, memo)
	if err != nil {
		return nil, err
	}

	created, err := s.reorder.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "order reordered", "sourceOrderID", orderID.String(),
		"orderID", created.ID().String())
	return created, nil
}

// ConfirmOrder moves a Pending order to Confirmed.
func (s *Service) ConfirmOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return nil, err
	}
	return s.changed(ctx, orderID)(s.confirmOrder.Handle(ctx, cmd))
}

// StartPreparingOrder moves a Confirmed order to Preparing.
func (s *Service) StartPreparingOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	cmd, err := commands.NewStartPreparingOrderCommand(orderID)
	if err != nil {
		return nil, err
	}
	return s.changed(ctx, orderID)(s.startPreparingOrder.Handle(ctx, cmd))
}

// AssignDeliveryPerson hands a Preparing order to a courier and starts delivery.
func (s *Service) AssignDeliveryPerson(ctx context.Context, orderID, personID kernel.UUID) (*order.Order, error) {
	cmd, err := commands.NewAssignDeliveryPersonCommand(orderID, personID)
	if err != nil {
		return nil, err
	}
	return s.changed(ctx, orderID)(s.assignDeliveryPerson.Handle(ctx, cmd))
}

// CompleteOrder marks a Delivering order as delivered.
func (s *Service) CompleteOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return nil, err
	}
	return s.changed(ctx, orderID)(s.completeOrder.Handle(ctx, cmd))
}

// UpdateSpecialRequests replaces the memo of an order.
func (s *Service) UpdateSpecialRequests(ctx context.Context, orderID kernel.UUID, memo string) (
	*order.Order, error,
) {
	cmd, err := commands.NewUpdateSpecialRequestsCommand(orderID, memo)
	if err != nil {
		return nil, err
	}
	return s.changed(ctx, orderID)(s.updateSpecialRequests.Handle(ctx, cmd))
}

// DeleteOrder removes the order and evicts it from the cache.
func (s *Service) DeleteOrder(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}
	if err = s.deleteOrder.Handle(ctx, cmd); err != nil {
		return err
	}
	s.invalidate(ctx, orderID)
	s.logger.InfoContext(ctx, "order deleted", "orderID", orderID.String())
	return nil
}

func (s *Service) list(ctx context.Context, owner queries.Owner, ownerID kernel.UUID, page, size int) (
	ports.OrderPage, error,
) {
	query, err := queries.NewListOrdersQuery(owner, ownerID, page, size)
	if err != nil {
		return ports.OrderPage{}, err
	}
	return s.listOrders.Handle(ctx, query)
}

// changed refreshes the cached copy after a successful mutation and logs the new status.
func (s *Service) changed(ctx context.Context, orderID kernel.UUID) func(*order.Order, error) (*order.Order, error) {
	return func(updated *order.Order, err error) (*order.Order, error) {
		if err != nil {
			return nil, err
		}
		s.refresh(ctx, updated)
		s.logger.InfoContext(ctx, "order updated", "orderID", orderID.String(),
			"status", updated.Status().String(), "version", updated.Version())
		return updated, nil
	}
}

// refresh writes the committed aggregate through to the cache. When the write
// fails the entry is dropped so the next read goes back to the primary.
func (s *Service) refresh(ctx context.Context, saved *order.Order) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, saved); err != nil {
		s.logger.WarnContext(ctx, "order cache refresh failed", "orderID", saved.ID().String(), "error", err)
		s.invalidate(ctx, saved.ID())
	}
}

func (s *Service) invalidate(ctx context.Context, orderID kernel.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, orderID); err != nil {
		s.logger.WarnContext(ctx, "order cache invalidation failed", "orderID", orderID.String(), "error", err)
	}
}
