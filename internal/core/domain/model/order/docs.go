// Package order provides the Order aggregate root of the ordering service and
// the value objects it owns.
//
// The package includes:
//   - Order: the aggregate root; every consistency-relevant mutation goes through it
//   - Status: the order status enum and its static transition table
//   - Item and Items: line items and the collection that derives the order total
//   - History: the append-only log of statuses the order has held
//   - PaymentMethod: the enumerated payment methods accepted at checkout
//
// Key business rules:
//   - the total price always equals the sum of item line totals
//   - the last history entry always equals the current status
//   - status moves only along the edges of the transition table; Completed and
//     Cancelled are terminal
//   - a delivery person is attached exactly when the order is Delivering or Completed
//
// Two cancellation rules coexist. Cancel uses the narrow rule (Pending or
// Confirmed only) while UpdateStatus consults the table alone, which also admits
// Preparing -> Cancelled.
package order
