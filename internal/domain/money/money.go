// Package money handles amounts expressed in integer minor currency units.
package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for zero, negative, fractional, non-numeric or
// out of range amounts.
var ErrInvalidAmount = errors.New("amount must be a positive whole number of minor units")

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Validate reports whether amount can be moved by a deposit, withdrawal or transfer.
func Validate(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// FromDecimal converts a decoded request amount into minor units. The sign is
// preserved so that a negative amount still reaches the engine and is rejected
// there with the same error.
func FromDecimal(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, ErrInvalidAmount
	}
	if d.Abs().GreaterThan(maxMinorUnits) {
		return 0, ErrInvalidAmount
	}
	return d.IntPart(), nil
}

// Add returns balance+amount, failing instead of wrapping around.
func Add(balance, amount int64) (int64, error) {
	if amount > 0 && balance > math.MaxInt64-amount {
		return 0, ErrInvalidAmount
	}
	return balance + amount, nil
}

// Format renders minor units with two decimal places, e.g. 12345 -> "123.45".
func Format(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
