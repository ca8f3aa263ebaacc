// Package outbox turns the events recorded on an order into outbox messages
// and back.
package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// StatusChangedPayload is the wire form of order.StatusChanged.
type StatusChangedPayload struct {
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	StoreID    string    `json:"storeId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Reason     string    `json:"reason,omitempty"`
	TotalPrice string    `json:"totalPrice"`
	ChangedAt  time.Time `json:"changedAt"`
}

// Messages encodes the pending events of a saved order. The order must already
// have its identity.
func Messages(aggregate *order.Order) ([]ports.OutboxMessage, error) {
	if aggregate.IsNew() {
		return nil, fmt.Errorf("encode events: %w", kernel.ErrUUIDIsNotConstructed)
	}

	events := aggregate.Events()
	msgs := make([]ports.OutboxMessage, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(StatusChangedPayload{
			OrderID:    aggregate.ID().String(),
			CustomerID: aggregate.CustomerID().String(),
			StoreID:    aggregate.StoreID().String(),
			From:       e.From.String(),
			To:         e.To.String(),
			Reason:     e.Reason,
			TotalPrice: aggregate.TotalPrice().String(),
			ChangedAt:  e.At,
		})
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", e.EventName(), err)
		}
		msgs = append(msgs, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			AggregateID: aggregate.ID(),
			EventName:   e.EventName(),
			Payload:     payload,
			OccurredAt:  e.At,
		})
	}
	return msgs, nil
}

// DecodeStatusChanged reads the payload of an order.status_changed message.
func DecodeStatusChanged(msg ports.OutboxMessage) (StatusChangedPayload, error) {
	var p StatusChangedPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return StatusChangedPayload{}, fmt.Errorf("decode %s %s: %w", msg.EventName, msg.ID, err)
	}
	return p, nil
}
