package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits a payout amount may carry.
const AmountScale = 2

var microsPerUnit = decimal.NewFromInt(1_000_000)

// maxMicros is the largest amount, in micros, that fits the int64 column.
var maxMicros = decimal.NewFromInt(math.MaxInt64)

// ToMicros converts a decimal amount into int64 micros (10^-6) for storage.
func ToMicros(d decimal.Decimal) int64 {
	return d.Mul(microsPerUnit).IntPart()
}

// FromMicros converts stored micros back into a decimal amount.
func FromMicros(micros int64) decimal.Decimal {
	return decimal.NewFromInt(micros).Div(microsPerUnit)
}

// MaxAmount is the largest payout amount with AmountScale digits that can be stored.
func MaxAmount() decimal.Decimal {
	return maxMicros.Div(microsPerUnit).Truncate(AmountScale)
}

// ValidateAmount checks that d is a positive amount with at most AmountScale
// fractional digits that converts to micros without overflow.
func ValidateAmount(op string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return ValidationError(op, "amount must be greater than zero")
	}
	if !d.Equal(d.Truncate(AmountScale)) {
		return ValidationError(op, "amount must have at most %d decimal places", AmountScale)
	}
	if d.Mul(microsPerUnit).GreaterThan(maxMicros) {
		return ValidationError(op, "amount must not exceed %s", MaxAmount().String())
	}
	return nil
}

// ParseAmount parses a decimal string and validates it as a payout amount.
func ParseAmount(op, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ValidationError(op, "amount %q is not a decimal number", s)
	}
	if err := ValidateAmount(op, d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}
