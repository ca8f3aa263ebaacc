// Package queries holds the read-only operations on orders. Handlers never
// open a transaction and prefer the replica connection.
package queries

import (
	"orders/internal/core/ports"
)

type (
	// OrderReader exposes repositories without a transaction. Queries never write.
	OrderReader interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderReaderFactory creates readers on the primary or the replica.
	//
	// Example:
	//
	//	repo := factory.Create(ports.ReplicaRole).OrderRepository()
	//	page, err := repo.FindByStoreID(ctx, storeID, ports.PageRequest{Size: 20}.Normalize())
	OrderReaderFactory interface {
		Create(role ports.ConnectionRole) OrderReader
	}
)
