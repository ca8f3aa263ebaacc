package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──> Confirmed ──> Preparing ──> Delivering ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
type Status int

const (
	// Unknown catches uninitialised values; it never appears on a valid order.
	Unknown Status = iota
	// Pending is the status of a newly placed order.
	Pending
	// Confirmed means the store accepted the order.
	Confirmed
	// Preparing means the kitchen is working on it.
	Preparing
	// Delivering means a delivery person picked it up.
	Delivering
	// Completed means the order was delivered.
	Completed
	// Cancelled means the order was called off before delivery.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Confirmed:  "CONFIRMED",
	Preparing:  "PREPARING",
	Delivering: "DELIVERING",
	Completed:  "COMPLETED",
	Cancelled:  "CANCELLED",
}

var statusDescriptions = map[Status]string{
	Pending:    "waiting for the store to accept",
	Confirmed:  "accepted by the store",
	Preparing:  "being prepared",
	Delivering: "out for delivery",
	Completed:  "delivered",
	Cancelled:  "cancelled",
}

// transitions is the complete set of legal status edges. A missing key or a
// missing target means the move is rejected.
var transitions = map[Status]map[Status]bool{
	Pending:    {Confirmed: true, Cancelled: true},
	Confirmed:  {Preparing: true, Cancelled: true},
	Preparing:  {Delivering: true, Cancelled: true},
	Delivering: {Completed: true},
	Completed:  {},
	Cancelled:  {},
}

// IsValidTransition reports whether the table admits current -> target.
func IsValidTransition(current, target Status) bool {
	return transitions[current][target]
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Delivering, Completed, Cancelled}
}

// ParseStatus accepts the String form in any case, surrounding spaces ignored.
// "UNKNOWN" and anything else unrecognised fail with errs.ErrValueIsInvalid.
//
// Example:
//
//	status, err := order.ParseStatus("delivering")
//	// status == order.Delivering, err == nil
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values with errs.ErrValueIsInvalid.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Description returns a short human-readable phrase for the status.
func (s Status) Description() string {
	return statusDescriptions[s]
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// IsInProgress reports whether the store or courier is working on the order.
func (s Status) IsInProgress() bool {
	return s == Confirmed || s == Preparing || s == Delivering
}

// IsCancellable is the narrow cancellation rule used by Order.Cancel.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Confirmed
}

func (s Status) requiresDeliveryPerson() bool {
	return s == Delivering || s == Completed
}
