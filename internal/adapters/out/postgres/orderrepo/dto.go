// Package orderrepo persists order aggregates with GORM. An order is stored as
// one row in orders plus its rows in order_items and order_status_history.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Version backs the optimistic concurrency check.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	StoreID          uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`
	Status           int        `gorm:"index"`
	OrderTime        time.Time  `gorm:"index"`
	DeliveryAddress  string     `gorm:"size:500"`
	PaymentMethod    int
	Memo             string          `gorm:"size:1000"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Version          int

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName maps OrderDTO to the orders table.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order_items row. The option columns are all null when the item
// has no option.
type ItemDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID `gorm:"type:uuid;index"`
	Position              int
	MenuID                uuid.UUID  `gorm:"type:uuid"`
	OptionID              *uuid.UUID `gorm:"type:uuid"`
	OptionName            *string
	OptionAdditionalPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Quantity              int
	UnitPrice             decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName maps ItemDTO to the order_items table.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO is one order_status_history row. Rows are only ever inserted.
type HistoryDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	Status    int
	ChangedAt time.Time
}

// TableName maps HistoryDTO to the order_status_history table.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain maps the aggregate under the given identity and version. The
// identity differs from aggregate.ID() only for orders that were never saved.
func fromDomain(aggregate *order.Order, id kernel.UUID, version int) OrderDTO {
	snap := aggregate.Snapshot()
	orderID := id.Bytes()

	var personID *uuid.UUID
	if snap.DeliveryPersonID != nil {
		raw := snap.DeliveryPersonID.Bytes()
		personID = &raw
	}

	items := make([]ItemDTO, 0, len(snap.Items))
	for idx, item := range snap.Items {
		dto := ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   orderID,
			Position:  idx,
			MenuID:    item.MenuID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		}
		if opt := item.Option(); opt != nil {
			optID := opt.ID().Bytes()
			name := opt.Name()
			dto.OptionID = &optID
			dto.OptionName = &name
			dto.OptionAdditionalPrice = decimal.NewNullDecimal(opt.AdditionalPrice().Decimal())
		}
		items = append(items, dto)
	}

	history := make([]HistoryDTO, 0, len(snap.History))
	for idx, entry := range snap.History {
		history = append(history, HistoryDTO{
			OrderID:   orderID,
			Seq:       idx + 1,
			Status:    int(entry.Status()),
			ChangedAt: entry.ChangedAt(),
		})
	}

	return OrderDTO{
		ID:               orderID,
		CustomerID:       snap.CustomerID.Bytes(),
		StoreID:          snap.StoreID.Bytes(),
		DeliveryPersonID: personID,
		Status:           int(snap.Status),
		OrderTime:        snap.OrderTime,
		DeliveryAddress:  snap.DeliveryAddress,
		PaymentMethod:    int(snap.PaymentMethod),
		Memo:             snap.Memo,
		TotalPrice:       aggregate.TotalPrice().Decimal(),
		Version:          version,
		Items:            items,
		History:          history,
	}
}

// toDomain rebuilds the aggregate. Items and History must be loaded in
// position and sequence order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	var personID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		id := kernel.UUIDFrom(*dto.DeliveryPersonID)
		personID = &id
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		entry, err := order.NewHistoryEntry(order.Status(h.Status), h.ChangedAt.UTC())
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               kernel.UUIDFrom(dto.ID),
		CustomerID:       kernel.UUIDFrom(dto.CustomerID),
		StoreID:          kernel.UUIDFrom(dto.StoreID),
		DeliveryPersonID: personID,
		Status:           order.Status(dto.Status),
		OrderTime:        dto.OrderTime.UTC(),
		DeliveryAddress:  dto.DeliveryAddress,
		PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
		Memo:             dto.Memo,
		Items:            items,
		History:          history,
		Version:          dto.Version,
	})
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	var option *order.MenuOption
	if dto.OptionID != nil {
		additional := kernel.Zero
		if dto.OptionAdditionalPrice.Valid {
			if additional, err = kernel.NewMoney(dto.OptionAdditionalPrice.Decimal); err != nil {
				return order.Item{}, err
			}
		}
		var name string
		if dto.OptionName != nil {
			name = *dto.OptionName
		}
		opt, optErr := order.NewMenuOption(kernel.UUIDFrom(*dto.OptionID), name, additional)
		if optErr != nil {
			return order.Item{}, optErr
		}
		option = &opt
	}

	return order.RestoreItem(kernel.UUIDFrom(dto.ID), kernel.UUIDFrom(dto.MenuID), option, dto.Quantity,
		unitPrice)
}
