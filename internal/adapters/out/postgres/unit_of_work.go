// Package postgres provides the GORM implementation of the unit of work.
//
// A factory holds a primary and an optional replica connection; the caller
// picks one per unit of work with ports.ConnectionRole. Orders saved through a
// unit of work are tracked, and their status events are written to the outbox
// table inside the same transaction on Commit.
//
//	factory := NewGormUnitOfWorkFactory(primaryDB, replicaDB)
//	uow := factory.Create(ports.PrimaryRole)
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if _, err := uow.OrderRepository().Save(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each unit of work is meant for one goroutine and one business operation.
package postgres

import (
	"context"
	"fmt"

	"orders/internal/adapters/out/outbox"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)

// GormUnitOfWorkFactory creates units of work on the primary or replica connection.
type GormUnitOfWorkFactory struct {
	primary *gorm.DB
	replica *gorm.DB
}

// NewGormUnitOfWorkFactory creates the factory. A nil replica routes
// ReplicaRole to the primary connection, still read-only.
func NewGormUnitOfWorkFactory(primary, replica *gorm.DB) *GormUnitOfWorkFactory {
	if replica == nil {
		replica = primary
	}
	return &GormUnitOfWorkFactory{
		primary: primary,
		replica: replica,
	}
}

// Create returns a unit of work on the connection for role. ReplicaRole units
// are read-only.
//
// Example:
//
//	uow := factory.Create(ports.ReplicaRole)
//	found, err := uow.OrderRepository().FindByID(ctx, orderID)
func (f *GormUnitOfWorkFactory) Create(role ports.ConnectionRole) ports.UnitOfWork {
	db := f.primary
	if role == ports.ReplicaRole {
		db = f.replica
	}
	return &GormUnitOfWork{
		db:       db,
		readOnly: role == ports.ReplicaRole,
	}
}

// GormUnitOfWork wraps one GORM transaction. Without Begin, repositories run on
// the plain connection and every write is committed on its own.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	readOnly bool
	tracked  []*order.Order
}

// Begin starts the transaction. Calling it again while one is open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.tracked = nil
	return nil
}

// Commit writes the outbox rows for every tracked order and commits. Events are
// cleared from the orders only after the commit succeeded.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx
	uow.tx = nil
	if err := writeOutbox(ctx, outboxrepo.NewGormOutboxRepository(tx, uow.readOnly), uow.tracked); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	for _, aggregate := range uow.tracked {
		aggregate.ClearEvents()
	}
	uow.tracked = nil
	return nil
}

// Rollback discards the open transaction and forgets tracked orders.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

// OrderRepository returns an order repository on the transaction, or the plain connection before Begin.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.readOnly {
		return orderrepo.NewGormOrderRepository(uow.conn(), nil)
	}
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OutboxRepository returns an outbox repository on the same connection as OrderRepository.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn(), uow.readOnly)
}

// TrackAggregate is called by the order repository after a save. Inside a
// transaction the order is remembered for Commit; otherwise its events are
// written immediately.
func (uow *GormUnitOfWork) TrackAggregate(ctx context.Context, aggregate *order.Order) error {
	if uow.tx != nil {
		for _, tracked := range uow.tracked {
			if tracked == aggregate {
				return nil
			}
		}
		uow.tracked = append(uow.tracked, aggregate)
		return nil
	}

	if err := writeOutbox(ctx, outboxrepo.NewGormOutboxRepository(uow.db, uow.readOnly),
		[]*order.Order{aggregate}); err != nil {
		return err
	}
	aggregate.ClearEvents()
	return nil
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func writeOutbox(ctx context.Context, repo *outboxrepo.GormOutboxRepository, aggregates []*order.Order) error {
	for _, aggregate := range aggregates {
		msgs, err := outbox.Messages(aggregate)
		if err != nil {
			return err
		}
		if err = repo.Add(ctx, msgs); err != nil {
			return fmt.Errorf("write outbox for order %s: %w", aggregate.ID(), err)
		}
	}
	return nil
}
