// Package money converts decimal currency amounts to and from integer minor units (cents).
// Every balance and limit comparison in the processor happens on the integer form.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits kept in minor units.
const Scale = 2

var ErrOutOfRange = errors.New("amount out of range")

// ToMinorUnits parses a decimal string such as "350000", "12.5" or "-0.07".
// Fraction digits beyond the second are truncated, not rounded. Blank input is zero.
func ToMinorUnits(value string) (int64, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}

	return DecimalToMinorUnits(d)
}

// DecimalToMinorUnits applies the same truncation rule to an already decoded decimal.
func DecimalToMinorUnits(d decimal.Decimal) (int64, error) {
	cents := d.Truncate(Scale).Shift(Scale)
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, d.String())
	}
	return cents.IntPart(), nil
}

// FromMinorUnits renders n as a decimal string with exactly two fraction digits.
func FromMinorUnits(n int64) string {
	return decimal.New(n, -Scale).StringFixed(Scale)
}

// IsExact reports whether d converts to minor units without dropping digits.
func IsExact(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale))
}
