package ordercache

import (
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

type cachedOrder struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	StoreID          string          `json:"store_id"`
	DeliveryPersonID string          `json:"delivery_person_id,omitempty"`
	Status           string          `json:"status"`
	OrderTime        time.Time       `json:"order_time"`
	DeliveryAddress  string          `json:"delivery_address"`
	PaymentMethod    string          `json:"payment_method"`
	Memo             string          `json:"memo,omitempty"`
	Version          int             `json:"version"`
	Items            []cachedItem    `json:"items"`
	History          []cachedHistory `json:"history"`
}

type cachedItem struct {
	ID        string        `json:"id"`
	MenuID    string        `json:"menu_id"`
	Option    *cachedOption `json:"option,omitempty"`
	Quantity  int           `json:"quantity"`
	UnitPrice string        `json:"unit_price"`
}

type cachedOption struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AdditionalPrice string `json:"additional_price"`
}

type cachedHistory struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

func encode(aggregate *order.Order) ([]byte, error) {
	snap := aggregate.Snapshot()
	dto := cachedOrder{
		ID:              snap.ID.String(),
		CustomerID:      snap.CustomerID.String(),
		StoreID:         snap.StoreID.String(),
		Status:          snap.Status.String(),
		OrderTime:       snap.OrderTime,
		DeliveryAddress: snap.DeliveryAddress,
		PaymentMethod:   snap.PaymentMethod.String(),
		Memo:            snap.Memo,
		Version:         snap.Version,
		Items:           make([]cachedItem, 0, len(snap.Items)),
		History:         make([]cachedHistory, 0, len(snap.History)),
	}
	if snap.DeliveryPersonID != nil {
		dto.DeliveryPersonID = snap.DeliveryPersonID.String()
	}
	for _, item := range snap.Items {
		ci := cachedItem{
			ID:        item.ID().String(),
			MenuID:    item.MenuID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
		}
		if opt := item.Option(); opt != nil {
			ci.Option = &cachedOption{
				ID:              opt.ID().String(),
				Name:            opt.Name(),
				AdditionalPrice: opt.AdditionalPrice().String(),
			}
		}
		dto.Items = append(dto.Items, ci)
	}
	for _, entry := range snap.History {
		dto.History = append(dto.History, cachedHistory{Status: entry.Status().String(), ChangedAt: entry.ChangedAt()})
	}
	return json.Marshal(dto)
}

func decode(raw []byte) (*order.Order, error) {
	var dto cachedOrder
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached order: %w", err)
	}

	snap := order.Snapshot{
		OrderTime:       dto.OrderTime,
		DeliveryAddress: dto.DeliveryAddress,
		Memo:            dto.Memo,
		Version:         dto.Version,
	}
	var err error
	if snap.ID, err = kernel.UUIDFromString(dto.ID); err != nil {
		return nil, err
	}
	if snap.CustomerID, err = kernel.UUIDFromString(dto.CustomerID); err != nil {
		return nil, err
	}
	if snap.StoreID, err = kernel.UUIDFromString(dto.StoreID); err != nil {
		return nil, err
	}
	if dto.DeliveryPersonID != "" {
		personID, personErr := kernel.UUIDFromString(dto.DeliveryPersonID)
		if personErr != nil {
			return nil, personErr
		}
		snap.DeliveryPersonID = &personID
	}
	if snap.Status, err = order.ParseStatus(dto.Status); err != nil {
		return nil, err
	}
	if snap.PaymentMethod, err = order.ParsePaymentMethod(dto.PaymentMethod); err != nil {
		return nil, err
	}

	for _, ci := range dto.Items {
		item, itemErr := decodeItem(ci)
		if itemErr != nil {
			return nil, itemErr
		}
		snap.Items = append(snap.Items, item)
	}
	for _, ch := range dto.History {
		status, statusErr := order.ParseStatus(ch.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		entry, entryErr := order.NewHistoryEntry(status, ch.ChangedAt)
		if entryErr != nil {
			return nil, entryErr
		}
		snap.History = append(snap.History, entry)
	}

	return order.RestoreOrder(snap)
}

func decodeItem(ci cachedItem) (order.Item, error) {
	id, err := kernel.UUIDFromString(ci.ID)
	if err != nil {
		return order.Item{}, err
	}
	menuID, err := kernel.UUIDFromString(ci.MenuID)
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.MoneyFromString(ci.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	var option *order.MenuOption
	if ci.Option != nil {
		optID, optErr := kernel.UUIDFromString(ci.Option.ID)
		if optErr != nil {
			return order.Item{}, optErr
		}
		price, priceErr := kernel.MoneyFromString(ci.Option.AdditionalPrice)
		if priceErr != nil {
			return order.Item{}, priceErr
		}
		opt, optErr := order.NewMenuOption(optID, ci.Option.Name, price)
		if optErr != nil {
			return order.Item{}, optErr
		}
		option = &opt
	}

	return order.RestoreItem(id, menuID, option, ci.Quantity, unitPrice)
}
