// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
//
// Stock quantities are NOT Money: a quantity on hand is a count of
// canonical units and stays a plain int64 everywhere.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// MoneyFromUnits values a count of canonical units at a per-unit price.
// Used for stock valuation in reports.
func MoneyFromUnits(units int64, unitPrice Money) Money {
	return unitPrice.Mul(decimal.NewFromInt(units))
}
