package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderIsNotConstructed is returned when a zero-value Order is used.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")
	// ErrItemIsNotConstructed is returned when a zero-value Item is used.
	ErrItemIsNotConstructed = errors.New("order item must be created via NewItem or RestoreItem")

	// ErrInvalidStatusTransition is the sentinel behind every StatusTransitionError.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrOrderHasNoItems is returned by Confirm for an order without items.
	ErrOrderHasNoItems = errors.New("order has no items")
	// ErrTotalPriceNotPositive is returned by Confirm when the items add up to zero.
	ErrTotalPriceNotPositive = errors.New("order total must be greater than zero")

	// ErrDeliveryPersonAssignment is returned when a delivery person is assigned
	// to an order that is not being prepared.
	ErrDeliveryPersonAssignment = errors.New("delivery person can only be assigned while the order is preparing")

	// ErrDeliveryPersonIsMissing is returned when an order would be delivering
	// or completed without a delivery person.
	ErrDeliveryPersonIsMissing = errors.New("delivery person is not assigned")
)

// StatusTransitionError describes a rejected move between two statuses.
type StatusTransitionError struct {
	From  Status
	To    Status
	Cause error
}

// NewStatusTransitionError reports a move the transition table does not allow.
func NewStatusTransitionError(from, to Status) *StatusTransitionError {
	return &StatusTransitionError{From: from, To: to}
}

// NewStatusTransitionErrorWithCause reports an allowed move that a business rule
// rejected, such as confirming an empty order.
//
// Example:
//
//	err := NewStatusTransitionErrorWithCause(Pending, Confirmed, ErrOrderHasNoItems)
//	errors.Is(err, ErrInvalidStatusTransition) // true
//	errors.Is(err, ErrOrderHasNoItems)         // true
func NewStatusTransitionErrorWithCause(from, to Status, cause error) *StatusTransitionError {
	return &StatusTransitionError{From: from, To: to, Cause: cause}
}

// Error formats both statuses and the cause, if any.
func (e *StatusTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %v)", ErrInvalidStatusTransition, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidStatusTransition, e.From, e.To)
}

// Unwrap exposes ErrInvalidStatusTransition and the cause to errors.Is.
func (e *StatusTransitionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidStatusTransition, e.Cause}
	}
	return []error{ErrInvalidStatusTransition}
}
