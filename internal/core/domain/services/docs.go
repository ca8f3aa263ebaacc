// Package services provides domain services for work that spans more than one
// order aggregate.
//
// The package includes:
//   - Reorderer: builds a new order from a previous one
package services
