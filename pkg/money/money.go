// Package money holds the fixed-point helpers used for every monetary value in
// the system. All arithmetic goes through shopspring/decimal so repeated
// add/multiply/round cycles never accumulate binary floating point drift.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

// Zero is the canonical 0.00 value.
var Zero = decimal.Zero

// Parse converts user-entered monetary text into a decimal. Both "," and "."
// are accepted as decimal separators, and trailing currency markers ("₺", "TL")
// are ignored. Malformed input returns apperror.ErrInvalidAmount so the caller
// can fall back to its last known good value.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "TL")
	s = strings.TrimSuffix(s, "₺")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.ErrInvalidAmount
	}
	return d, nil
}

// Round2 rounds to two decimals, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Mul returns the line total for quantity * unitPrice, rounded to two decimals.
func Mul(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round2(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Clamp bounds v to the [lo, hi] range.
func Clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
