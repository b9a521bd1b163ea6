package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

// Cents is a fixed-precision amount in minor units. All arithmetic on raised
// totals and donation amounts happens in integer cents so repeated additions
// never drift.
type Cents int64

var centsFactor = decimal.NewFromInt(100)

// ParseAmount converts a raw decimal string (dollars) into Cents.
// It rejects non-numeric input, zero, negatives, and sub-cent precision.
func ParseAmount(raw string) (Cents, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount is required")
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "amount must be a number")
	}
	return FromDecimal(d)
}

// FromDecimal converts a decimal dollar amount into Cents.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	if d.Sign() <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	scaled := d.Mul(centsFactor)
	if !scaled.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be more precise than one cent")
	}
	if !scaled.BigInt().IsInt64() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount is out of range")
	}
	return Cents(scaled.IntPart()), nil
}

// Dollars returns the exact decimal dollar value.
func (c Cents) Dollars() decimal.Decimal {
	return decimal.NewFromInt(int64(c)).Div(centsFactor)
}

// String renders the amount in dollars, e.g. "250.5".
func (c Cents) String() string {
	return c.Dollars().String()
}

// MarshalJSON emits the amount as a bare JSON number in dollars.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.Dollars().String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string.
func (c *Cents) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Progress reports raised/goal as a percentage clamped to [0, 100].
// The stored raised amount itself is never clamped.
func Progress(raised, goal Cents) float64 {
	if goal <= 0 {
		return 0
	}
	pct, _ := decimal.NewFromInt(int64(raised)).
		Div(decimal.NewFromInt(int64(goal))).
		Mul(decimal.NewFromInt(100)).
		Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// MustParse is a test helper for amounts known to be valid.
func MustParse(raw string) Cents {
	c, err := ParseAmount(raw)
	if err != nil {
		panic(fmt.Sprintf("money: %v", err))
	}
	return c
}
