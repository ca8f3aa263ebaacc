// Package commands holds the operations that change orders. Every command is
// built through a validating constructor and run by a handler that opens its
// own unit of work on the primary connection.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of work interfaces give handlers only the repositories they need.
type (
	// TxManager controls the transaction of one unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory exposes the order repository bound to the current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory exposes the outbox repository bound to the current transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is a transaction over orders. Saving an order inside it also writes
	// the order's status events to the outbox on Commit.
	//
	// Example:
	//
	//	uow := factory.Create(ports.PrimaryRole)
	//	if err := uow.Begin(ctx); err != nil {
	//		return err
	//	}
	//	defer func() {
	//		_ = uow.Rollback(ctx)
	//	}()
	//
	//	saved, err := uow.OrderRepository().Save(ctx, aggregate)
	//	if err != nil {
	//		return err
	//	}
	//	return uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a fresh OrderUoW per operation. ReplicaRole units
	// are read-only.
	OrderUoWFactory interface {
		Create(role ports.ConnectionRole) OrderUoW
	}

	// OutboxUoW is a transaction over the outbox, used by the relay.
	//
	// Example:
	//
	//	uow := factory.Create(ports.PrimaryRole)
	//	if err := uow.Begin(ctx); err != nil {
	//		return err
	//	}
	//	defer func() {
	//		_ = uow.Rollback(ctx)
	//	}()
	//
	//	pending, err := uow.OutboxRepository().FetchPending(ctx, 100)
	//	// publish pending, then
	//	err = uow.OutboxRepository().MarkPublished(ctx, ids, time.Now())
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates a fresh OutboxUoW per relay run.
	OutboxUoWFactory interface {
		Create(role ports.ConnectionRole) OutboxUoW
	}
)
