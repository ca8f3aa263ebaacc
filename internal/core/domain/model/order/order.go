package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// EstimatedDeliveryWindow is added to the order time to estimate arrival.
const EstimatedDeliveryWindow = 30 * time.Minute

// Order is the aggregate root of a customer's delivery order.
//
// The identity stays zero until persistence assigns one on the first save.
// Items, history and the derived total are only reachable through the methods
// below, so the total always matches the items and the last history entry
// always matches the status.
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	storeID          kernel.UUID
	deliveryPersonID *kernel.UUID

	status          Status
	orderTime       time.Time
	deliveryAddress string
	paymentMethod   PaymentMethod
	memo            string

	totalPrice kernel.Money
	items      Items
	history    History

	version int
	events  []StatusChanged

	isConstructed bool
}

// NewOrder places a new Pending order with no items and a total of zero.
// All input problems are reported together.
func NewOrder(customerID, storeID kernel.UUID, deliveryAddress string, paymentMethod PaymentMethod,
	memo string,
) (*Order, error) {
	now := clock()
	o := &Order{
		status:        Pending,
		orderTime:     now,
		memo:          memo,
		totalPrice:    kernel.Zero,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.history.Append(Pending, now)
	o.events = append(o.events, StatusChanged{From: Unknown, To: Pending, At: now})
	return o, nil
}

// Snapshot carries the persisted state of an order back into the domain.
type Snapshot struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	StoreID          kernel.UUID
	DeliveryPersonID *kernel.UUID
	Status           Status
	OrderTime        time.Time
	DeliveryAddress  string
	PaymentMethod    PaymentMethod
	Memo             string
	Items            []Item
	History          []HistoryEntry
	Version          int
}

// RestoreOrder rebuilds an order from storage. The total is recomputed from the
// items rather than trusted, the history must end in the stored status, and a
// delivery person must be present exactly when the status is Delivering or
// Completed.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:        s.Status,
		orderTime:     s.OrderTime,
		memo:          s.Memo,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		s.ID.ValidateAs("orderID"),
		o.setCustomerID(s.CustomerID),
		o.setStoreID(s.StoreID),
		o.setDeliveryAddress(s.DeliveryAddress),
		o.setPaymentMethod(s.PaymentMethod),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.id = s.ID

	if s.DeliveryPersonID != nil {
		if err := s.DeliveryPersonID.ValidateAs("deliveryPersonID"); err != nil {
			return nil, err
		}
		personID := *s.DeliveryPersonID
		o.deliveryPersonID = &personID
	}
	if (o.deliveryPersonID != nil) != o.status.requiresDeliveryPerson() {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveryPersonID",
			fmt.Errorf("a delivery person is set exactly when the order is delivering or completed, got status %s", o.status))
	}

	for _, item := range s.Items {
		if err := o.items.Add(item); err != nil {
			return nil, err
		}
	}
	o.recalculateTotal()

	for _, entry := range s.History {
		if err := entry.status.Validate(); err != nil {
			return nil, err
		}
		o.history.Append(entry.status, entry.changedAt)
	}
	if last, ok := o.history.Last(); !ok || last.status != o.status {
		return nil, errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("last entry does not match status %s", o.status))
	}

	return o, nil
}

// Validate returns ErrOrderIsNotConstructed for a nil or zero-value order.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares identities. Unsaved orders are never equal to anything.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

// ID returns the identity assigned on first save, or the zero UUID for a new order.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// StoreID returns the store that prepares the order.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// OrderTime returns when the order was placed.
func (o *Order) OrderTime() time.Time {
	return o.orderTime
}

// DeliveryAddress returns the trimmed delivery address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// SpecialRequests returns the free-text memo, possibly empty.
func (o *Order) SpecialRequests() string {
	return o.memo
}

// TotalPrice returns the sum of every line total.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// Items returns a copy of the line items in insertion order.
func (o *Order) Items() []Item {
	return o.items.All()
}

// History returns a copy of the status log.
func (o *Order) History() History {
	return o.history.clone()
}

// Version returns the optimistic lock version, zero before the first save.
func (o *Order) Version() int {
	return o.version
}

// IsNew reports whether the order has never been saved.
func (o *Order) IsNew() bool {
	return o.id.IsZero()
}

// EstimatedDelivery returns OrderTime plus EstimatedDeliveryWindow.
func (o *Order) EstimatedDelivery() time.Time {
	return o.orderTime.Add(EstimatedDeliveryWindow)
}

// Snapshot exports the full state for storage adapters. RestoreOrder(o.Snapshot())
// yields an equivalent order without pending events.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:               o.id,
		CustomerID:       o.customerID,
		StoreID:          o.storeID,
		DeliveryPersonID: o.DeliveryPerson(),
		Status:           o.status,
		OrderTime:        o.orderTime,
		DeliveryAddress:  o.deliveryAddress,
		PaymentMethod:    o.paymentMethod,
		Memo:             o.memo,
		Items:            o.items.All(),
		History:          o.history.Entries(),
		Version:          o.version,
	}
}

// DeliveryPerson returns a copy of the assigned delivery person, or nil.
func (o *Order) DeliveryPerson() *kernel.UUID {
	if o.deliveryPersonID == nil {
		return nil
	}
	id := *o.deliveryPersonID
	return &id
}

// AddItem attaches a validated item and recomputes the total.
func (o *Order) AddItem(item Item) error {
	if err := o.items.Add(item); err != nil {
		return err
	}
	o.recalculateTotal()
	return nil
}

// RemoveItem detaches the item if present. The total is recomputed either way.
func (o *Order) RemoveItem(itemID kernel.UUID) {
	o.items.Remove(itemID)
	o.recalculateTotal()
}

// Confirm accepts a Pending order. The order must have items worth more than zero.
func (o *Order) Confirm() error {
	if !IsValidTransition(o.status, Confirmed) {
		return NewStatusTransitionError(o.status, Confirmed)
	}
	if o.items.IsEmpty() {
		return NewStatusTransitionErrorWithCause(o.status, Confirmed, ErrOrderHasNoItems)
	}
	if !o.totalPrice.IsPositive() {
		return NewStatusTransitionErrorWithCause(o.status, Confirmed, ErrTotalPriceNotPositive)
	}
	o.moveTo(Confirmed, "")
	return nil
}

// StartPreparing moves a Confirmed order to Preparing.
func (o *Order) StartPreparing() error {
	if !IsValidTransition(o.status, Preparing) {
		return NewStatusTransitionError(o.status, Preparing)
	}
	o.moveTo(Preparing, "")
	return nil
}

// AssignDeliveryPerson hands a Preparing order to a courier and moves it to Delivering.
func (o *Order) AssignDeliveryPerson(personID kernel.UUID) error {
	if o.status != Preparing {
		return fmt.Errorf("%w: order is %s", ErrDeliveryPersonAssignment, o.status)
	}
	if err := personID.ValidateAs("deliveryPersonID"); err != nil {
		return err
	}

	o.deliveryPersonID = &personID
	o.moveTo(Delivering, "")
	return nil
}

// Complete moves a Delivering order to Completed. The delivery person assigned
// earlier stays on the order.
//
// Example:
//
//	if err := o.AssignDeliveryPerson(courierID); err != nil {
//		return err
//	}
//	if err := o.Complete(); err != nil {
//		return err
//	}
//	// o.Status() == order.Completed
func (o *Order) Complete() error {
	if !IsValidTransition(o.status, Completed) {
		return NewStatusTransitionError(o.status, Completed)
	}
	if o.deliveryPersonID == nil {
		return ErrDeliveryPersonIsMissing
	}
	o.moveTo(Completed, "")
	return nil
}

// Cancel applies the narrow cancellation rule: only Pending and Confirmed orders
// can be cancelled.
func (o *Order) Cancel(reason string) error {
	if !o.CanBeCancelled() {
		return NewStatusTransitionError(o.status, Cancelled)
	}
	o.moveTo(Cancelled, reason)
	return nil
}

// UpdateStatus moves the order along any edge of the transition table.
// Entering Delivering or Completed still requires an assigned delivery person.
func (o *Order) UpdateStatus(target Status, reason string) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !o.CanChangeStatusTo(target) {
		return NewStatusTransitionError(o.status, target)
	}
	if target.requiresDeliveryPerson() && o.deliveryPersonID == nil {
		return ErrDeliveryPersonIsMissing
	}
	o.moveTo(target, reason)
	return nil
}

// UpdateSpecialRequests replaces the memo. An empty memo clears it.
func (o *Order) UpdateSpecialRequests(memo string) {
	o.memo = memo
}

// CanBeCancelled reports whether Cancel would succeed.
func (o *Order) CanBeCancelled() bool {
	return o.status.IsCancellable()
}

// CanChangeStatusTo consults the transition table only, not the business rules.
func (o *Order) CanChangeStatusTo(target Status) bool {
	return IsValidTransition(o.status, target)
}

// IsDelivering reports whether a courier is on the way.
func (o *Order) IsDelivering() bool {
	return o.status == Delivering
}

// IsCompleted reports whether the order was delivered.
func (o *Order) IsCompleted() bool {
	return o.status == Completed
}

// Events returns the status changes recorded since the last ClearEvents.
func (o *Order) Events() []StatusChanged {
	out := make([]StatusChanged, len(o.events))
	copy(out, o.events)
	return out
}

// ClearEvents drops recorded events once the outbox holds them.
func (o *Order) ClearEvents() {
	o.events = nil
}

// MarkPersisted is called by storage adapters after a successful save. The
// identity can be set only once.
func (o *Order) MarkPersisted(id kernel.UUID, version int) error {
	if err := id.ValidateAs("orderID"); err != nil {
		return err
	}
	if !o.id.IsZero() && !o.id.IsEqual(id) {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("order %s cannot be re-identified as %s", o.id, id))
	}
	o.id = id
	o.version = version
	return nil
}

func (o *Order) moveTo(target Status, reason string) {
	at := clock()
	from := o.status
	o.status = target
	o.history.Append(target, at)
	o.events = append(o.events, StatusChanged{From: from, To: target, Reason: reason, At: at})
}

func (o *Order) recalculateTotal() {
	o.totalPrice = o.items.Total()
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.ValidateAs("customerID"); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.ValidateAs("storeID"); err != nil {
		return err
	}
	o.storeID = id
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

// clock is truncated to microseconds so timestamps survive a database round trip.
func clock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
