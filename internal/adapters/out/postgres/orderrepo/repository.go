package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker receives every saved order so its events reach the outbox.
type aggregateTracker interface {
	TrackAggregate(ctx context.Context, aggregate *order.Order) error
}

// NewGormOrderRepository creates the repository. A nil tracker makes it read-only.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Save inserts a new order or updates an existing one when its version still
// matches the stored row. Items are rewritten and new history rows appended.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	if r.tracker == nil {
		return nil, ports.ErrReadOnlyUnitOfWork
	}

	id := aggregate.ID()
	if aggregate.IsNew() {
		id = kernel.NewUUID()
	}
	version := aggregate.Version() + 1
	dto := fromDomain(aggregate, id, version)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if aggregate.IsNew() {
			if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
				return err
			}
		} else if err := r.update(tx, dto, aggregate.Version()); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
			return err
		}
		if len(dto.Items) > 0 {
			if err := tx.Create(&dto.Items).Error; err != nil {
				return err
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "seq"}},
			DoNothing: true,
		}).Create(&dto.History).Error
	})
	if err != nil {
		return nil, err
	}

	if err = aggregate.MarkPersisted(id, version); err != nil {
		return nil, err
	}
	if err = r.tracker.TrackAggregate(ctx, aggregate); err != nil {
		return nil, err
	}
	return aggregate, nil
}

func (r *GormOrderRepository) update(tx *gorm.DB, dto OrderDTO, expectedVersion int) error {
	result := tx.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"delivery_person_id": dto.DeliveryPersonID,
			"status":             dto.Status,
			"delivery_address":   dto.DeliveryAddress,
			"memo":               dto.Memo,
			"total_price":        dto.TotalPrice,
			"version":            dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var stored int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&stored).Error; err != nil {
		return err
	}
	if stored == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID.String())
	}
	return errs.NewVersionIsInvalidError("order",
		fmt.Errorf("order %s was changed by someone else since version %d", dto.ID, expectedVersion))
}

// FindByID loads the order with its items and history.
func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.ValidateAs("orderID"); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByCustomerID returns one page of the customer's orders, newest first.
//
// Example:
//
//	page, err := repo.FindByCustomerID(ctx, customerID, ports.PageRequest{Page: 0, Size: 20}.Normalize())
//	if err != nil {
//		return err
//	}
//	fmt.Println(page.Total, len(page.Orders))
func (r *GormOrderRepository) FindByCustomerID(ctx context.Context, customerID kernel.UUID,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	return r.page(ctx, page, "customer_id = ?", customerID.Bytes())
}

// FindByStoreID returns one page of the store's orders, newest first.
func (r *GormOrderRepository) FindByStoreID(ctx context.Context, storeID kernel.UUID,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	return r.page(ctx, page, "store_id = ?", storeID.Bytes())
}

// FindByDeliveryPersonID returns one page of the courier's orders, newest first.
func (r *GormOrderRepository) FindByDeliveryPersonID(ctx context.Context, personID kernel.UUID,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	return r.page(ctx, page, "delivery_person_id = ?", personID.Bytes())
}

// DeleteByID removes the order with its items and history.
func (r *GormOrderRepository) DeleteByID(ctx context.Context, id kernel.UUID) error {
	if err := id.ValidateAs("orderID"); err != nil {
		return err
	}
	if r.tracker == nil {
		return ports.ErrReadOnlyUnitOfWork
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id.Bytes()).Delete(&ItemDTO{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id.Bytes()).Delete(&HistoryDTO{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return nil
	})
}

func (r *GormOrderRepository) page(ctx context.Context, req ports.PageRequest, where string, arg any) (
	ports.OrderPage, error,
) {
	req = req.Normalize()
	result := ports.OrderPage{Page: req.Page, Size: req.Size}

	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where(where, arg).Count(&result.Total).Error; err != nil {
		return ports.OrderPage{}, err
	}

	var dtos []OrderDTO
	err := r.withChildren(ctx).
		Where(where, arg).
		Order("order_time DESC, id DESC").
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&dtos).Error
	if err != nil {
		return ports.OrderPage{}, err
	}

	result.Orders = make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toDomainErr := toDomain(dto)
		if toDomainErr != nil {
			return ports.OrderPage{}, toDomainErr
		}
		result.Orders = append(result.Orders, o)
	}
	return result, nil
}

func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}
