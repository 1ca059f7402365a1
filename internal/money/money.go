// Package money holds the exact decimal type used for balances and tariffs.
// Values cross the storage boundary as decimal strings and the API boundary as
// JSON numbers; arithmetic never goes through float64.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{d: decimal.Zero}

// Scale is the number of decimal places storage keeps (NUMERIC(15,2)).
const Scale = 2

// Max is the largest amount a NUMERIC(15,2) column holds.
var Max = Money{d: decimal.RequireFromString("9999999999999.99")}

// Parse reads a storage-form decimal string such as "1234.56".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func FromInt(v int64) Money { return Money{d: decimal.NewFromInt(v)} }

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

func (m Money) LessThan(o Money) bool        { return m.d.LessThan(o.d) }
func (m Money) LessThanOrEqual(o Money) bool { return m.d.LessThanOrEqual(o.d) }
func (m Money) Equal(o Money) bool           { return m.d.Equal(o.d) }
func (m Money) IsPositive() bool             { return m.d.IsPositive() }
func (m Money) IsNegative() bool             { return m.d.IsNegative() }

// Storable reports whether m fits a NUMERIC(15,2) column without rounding
// or overflow.
func (m Money) Storable() bool {
	return m.d.Equal(m.d.Round(Scale)) && m.d.Abs().LessThanOrEqual(Max.d)
}

// String returns the storage representation.
func (m Money) String() string { return m.d.String() }

// Float64 is for response payloads only.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	m.d = d
	return nil
}
