package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a non-negative monetary amount normalized to two decimal
// places. All arithmetic returns a fresh value; a Money can never hold
// a negative or unnormalized amount.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the additive identity.
var ZeroMoney = Money{amount: decimal.Zero}

// NewMoney validates and normalizes an amount. Negative amounts are
// rejected; everything else is rounded half-up to two decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("amount must not be negative, got %s", amount)
	}
	return Money{amount: amount.Round(2)}, nil
}

// NewMoneyFromString parses a decimal string into Money.
func NewMoneyFromString(value string) (Money, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount: %w", err)
	}
	return NewMoney(amount)
}

// Add returns the normalized sum of the two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// MultiplyBy scales the amount by a non-negative integer factor.
func (m Money) MultiplyBy(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, errors.New("multiplier must not be negative")
	}
	return m.mulUnchecked(factor), nil
}

func (m Money) mulUnchecked(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor))).Round(2)}
}

// Amount exposes the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Equals compares by numeric value.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON renders Money as a fixed-scale decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON number or a decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := NewMoney(amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
