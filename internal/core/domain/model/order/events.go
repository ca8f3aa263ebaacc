package order

import "time"

// StatusChanged is recorded on the order every time its status moves.
// Creation is recorded as a change from Unknown to Pending.
type StatusChanged struct {
	From   Status
	To     Status
	Reason string
	At     time.Time
}

// EventName is the outbox and bus name of the event.
func (StatusChanged) EventName() string {
	return "order.status_changed"
}
