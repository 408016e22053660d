package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Variant describes one size/color combination with its own stock tracking.
type Variant struct {
	Size    string `json:"size,omitempty"`
	Color   string `json:"color,omitempty"`
	Stock   int    `json:"stock"`
	InStock bool   `json:"in_stock"`
}

// VariantList is the JSONB-persisted collection of product variants.
type VariantList []Variant

// Value marshals the list into JSON for Postgres.
func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the list.
func (v *VariantList) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}

	var raw []byte
	switch val := value.(type) {
	case string:
		raw = []byte(val)
	case []byte:
		raw = val
	default:
		return fmt.Errorf("variant list: unsupported scan type %T", value)
	}

	result := make(VariantList, 0)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*v = result
	return nil
}
