package http

import (
	"errors"
	"time"

	"orders/internal/core/application/usecases"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MenuOption is an add-on chosen for an item, in requests and responses.
type MenuOption struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
}

// NewOrderItem is one line of a NewOrder request.
type NewOrderItem struct {
	MenuID    uuid.UUID       `json:"menuId"`
	Option    *MenuOption     `json:"option,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// NewOrder is the body of POST /api/v1/orders.
//
// Example:
//
//	{
//	  "customerId": "6f1c...",
//	  "storeId": "0b7e...",
//	  "deliveryAddress": "12 Main St",
//	  "paymentMethod": "KAKAO_PAY",
//	  "items": [{"menuId": "9a0d...", "quantity": 2, "unitPrice": "8.50"}]
//	}
type NewOrder struct {
	CustomerID      uuid.UUID      `json:"customerId"`
	StoreID         uuid.UUID      `json:"storeId"`
	DeliveryAddress string         `json:"deliveryAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	SpecialRequests string         `json:"specialRequests"`
	Items           []NewOrderItem `json:"items"`
}

// CancelOrder is the body of the cancel request. Reason may be empty.
type CancelOrder struct {
	Reason string `json:"reason"`
}

// UpdateStatus is the body of the status change request.
type UpdateStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Reorder overrides the copied address and memo when they are not blank.
type Reorder struct {
	DeliveryAddress string `json:"deliveryAddress"`
	SpecialRequests string `json:"specialRequests"`
}

// AssignDeliveryPerson names the courier who takes the order.
type AssignDeliveryPerson struct {
	DeliveryPersonID uuid.UUID `json:"deliveryPersonId"`
}

// SpecialRequests replaces the memo of an order.
type SpecialRequests struct {
	SpecialRequests string `json:"specialRequests"`
}

// Item is one order line in a response. Prices are fixed two-decimal strings.
type Item struct {
	ID        uuid.UUID   `json:"id"`
	MenuID    uuid.UUID   `json:"menuId"`
	Option    *MenuOption `json:"option,omitempty"`
	Quantity  int         `json:"quantity"`
	UnitPrice string      `json:"unitPrice"`
	LineTotal string      `json:"lineTotal"`
}

// HistoryEntry is one entry of the status log in a response.
type HistoryEntry struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
}

// Order is the full order representation returned by every endpoint.
type Order struct {
	ID                uuid.UUID      `json:"id"`
	CustomerID        uuid.UUID      `json:"customerId"`
	StoreID           uuid.UUID      `json:"storeId"`
	DeliveryPersonID  *uuid.UUID     `json:"deliveryPersonId,omitempty"`
	Status            string         `json:"status"`
	StatusDescription string         `json:"statusDescription"`
	OrderTime         time.Time      `json:"orderTime"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	DeliveryAddress   string         `json:"deliveryAddress"`
	PaymentMethod     string         `json:"paymentMethod"`
	SpecialRequests   string         `json:"specialRequests"`
	TotalPrice        string         `json:"totalPrice"`
	Items             []Item         `json:"items"`
	History           []HistoryEntry `json:"history"`
	Version           int            `json:"version"`
}

// OrderPage is one page of a list endpoint. Total counts every matching order.
type OrderPage struct {
	Orders []Order `json:"orders"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
	Total  int64   `json:"total"`
}

func (r NewOrder) toInput() (usecases.CreateOrderInput, error) {
	method, err := order.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return usecases.CreateOrderInput{}, err
	}

	items := make([]commands.OrderItemInput, 0, len(r.Items))
	var itemErrs []error
	for _, it := range r.Items {
		in, err := it.toInput()
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, in)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return usecases.CreateOrderInput{}, err
	}

	return usecases.CreateOrderInput{
		CustomerID:      kernel.UUIDFrom(r.CustomerID),
		StoreID:         kernel.UUIDFrom(r.StoreID),
		DeliveryAddress: r.DeliveryAddress,
		PaymentMethod:   method,
		SpecialRequests: r.SpecialRequests,
		Items:           items,
	}, nil
}

func (r NewOrderItem) toInput() (commands.OrderItemInput, error) {
	price, err := kernel.NewMoney(r.UnitPrice)
	if err != nil {
		return commands.OrderItemInput{}, err
	}

	in := commands.OrderItemInput{
		MenuID:    kernel.UUIDFrom(r.MenuID),
		Quantity:  r.Quantity,
		UnitPrice: price,
	}
	if r.Option != nil {
		surcharge, err := kernel.NewMoney(r.Option.AdditionalPrice)
		if err != nil {
			return commands.OrderItemInput{}, err
		}
		option, err := order.NewMenuOption(kernel.UUIDFrom(r.Option.ID), r.Option.Name, surcharge)
		if err != nil {
			return commands.OrderItemInput{}, err
		}
		in.Option = &option
	}
	return in, nil
}

func parseUUID(param, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func toOrder(o *order.Order) Order {
	items := make([]Item, 0, len(o.Items()))
	for _, it := range o.Items() {
		item := Item{
			ID:        it.ID().Bytes(),
			MenuID:    it.MenuID().Bytes(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice().String(),
			LineTotal: it.LineTotal().String(),
		}
		if opt := it.Option(); opt != nil {
			item.Option = &MenuOption{
				ID:              opt.ID().Bytes(),
				Name:            opt.Name(),
				AdditionalPrice: opt.AdditionalPrice().Decimal(),
			}
		}
		items = append(items, item)
	}

	entries := o.History().Entries()
	history := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, HistoryEntry{Status: e.Status().String(), ChangedAt: e.ChangedAt()})
	}

	resp := Order{
		ID:                o.ID().Bytes(),
		CustomerID:        o.CustomerID().Bytes(),
		StoreID:           o.StoreID().Bytes(),
		Status:            o.Status().String(),
		StatusDescription: o.Status().Description(),
		OrderTime:         o.OrderTime(),
		EstimatedDelivery: o.EstimatedDelivery(),
		DeliveryAddress:   o.DeliveryAddress(),
		PaymentMethod:     o.PaymentMethod().String(),
		SpecialRequests:   o.SpecialRequests(),
		TotalPrice:        o.TotalPrice().String(),
		Items:             items,
		History:           history,
		Version:           o.Version(),
	}
	if person := o.DeliveryPerson(); person != nil {
		id := person.Bytes()
		resp.DeliveryPersonID = &id
	}
	return resp
}

func toOrderPage(p ports.OrderPage) OrderPage {
	orders := make([]Order, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, toOrder(o))
	}
	return OrderPage{Orders: orders, Page: p.Page, Size: p.Size, Total: p.Total}
}
