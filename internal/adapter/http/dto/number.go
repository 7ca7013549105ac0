package dto

import (
	"github.com/shopspring/decimal"
)

// Number is a decimal that travels as a bare JSON number. Quoted numbers
// are accepted on input.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	return n.Decimal.UnmarshalJSON(data)
}

func numberPtr(d *decimal.Decimal) *Number {
	if d == nil {
		return nil
	}
	n := NewNumber(*d)
	return &n
}
