// Package kernel holds the value objects shared by every aggregate of the order
// service: identifiers (UUID) and monetary amounts (Money).
//
// Both types are immutable. Their zero values are meaningful only as "absent":
// a zero UUID marks an order that has not been persisted yet and a zero Money is
// the total of an empty order.
package kernel
