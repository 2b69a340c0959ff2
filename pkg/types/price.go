package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is an optional amount that travels as a bare JSON number or null.
type Price struct {
	decimal.NullDecimal
}

// NewPrice wraps a present amount.
func NewPrice(d decimal.Decimal) Price {
	return Price{NullDecimal: decimal.NullDecimal{Decimal: d, Valid: true}}
}

// ParsePrice reads an optional amount; blank input means no price.
func ParsePrice(value string) (Price, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Price{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", value, err)
	}
	if d.IsNegative() {
		return Price{}, fmt.Errorf("invalid price %q: must not be negative", value)
	}
	return NewPrice(d), nil
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. Quoted and empty values are
// accepted because form-driven clients send them.
func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = Price{}
		return nil
	}

	raw := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
	}

	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Label renders the amount the way the board prints prices.
func (p Price) Label() string {
	if !p.Valid {
		return "N/A"
	}
	return "₱" + p.Decimal.StringFixed(2)
}
