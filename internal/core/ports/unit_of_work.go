// Package ports declares what the application core needs from the outside
// world: order storage, the outbox, the order cache and the event publisher.
package ports

import (
	"context"
	"errors"
)

// ErrReadOnlyUnitOfWork is returned when a ReplicaRole unit of work is asked to write.
var ErrReadOnlyUnitOfWork = errors.New("unit of work is read-only")

// ConnectionRole tells the storage adapter which connection a unit of work runs on.
// Writers always ask for PrimaryRole; pure readers may ask for ReplicaRole.
type ConnectionRole int

const (
	// PrimaryRole is the read-write connection.
	PrimaryRole ConnectionRole = iota
	// ReplicaRole is a read-only connection that may lag behind the primary.
	ReplicaRole
)

// String returns "primary" or "replica".
func (r ConnectionRole) String() string {
	if r == ReplicaRole {
		return "replica"
	}
	return "primary"
}

// UnitOfWorkFactory creates one unit of work per business operation.
type UnitOfWorkFactory interface {
	Create(role ConnectionRole) UnitOfWork
}

// UnitOfWork scopes repositories to one transaction. Domain events of every
// order saved through it are written to the outbox on Commit.
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
//	if _, err := uow.OrderRepository().Save(ctx, aggregate); err != nil {
//		return err
//	}
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin starts a transaction. Without it every repository call commits on its own.
	Begin(ctx context.Context) error

	// Commit writes pending outbox messages and commits.
	Commit(ctx context.Context) error

	// Rollback discards the open transaction. Without one it only returns an error.
	Rollback(ctx context.Context) error

	// OrderRepository returns the order repository bound to this unit of work.
	OrderRepository() OrderRepository

	// OutboxRepository returns the outbox repository bound to this unit of work.
	OutboxRepository() OutboxRepository
}
