package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in the store's currency with two decimal places.
type Money struct {
	amount decimal.Decimal
}

// Zero is the empty amount.
var Zero = Money{amount: decimal.Zero}

// NewMoney rounds amount to two decimal places. Negative amounts are rejected
// with errs.ErrValueIsOutOfRange.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.RequireFromString("12.499"))
//	// price.String() == "12.50"
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount.Round(2)}, nil
}

// MoneyFromString parses a decimal string such as "18.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q: %w", s, err))
	}
	return NewMoney(d)
}

// MoneyFromInt builds a whole amount, mostly useful for fixtures.
func MoneyFromInt(amount int64) Money {
	m, err := NewMoney(decimal.NewFromInt(amount))
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the rounded amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul multiplies the amount by a quantity.
func (m Money) Mul(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically, so 1.5 equals 1.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
