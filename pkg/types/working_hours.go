package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// WorkingHours holds the daily open/close times persisted as JSONB.
type WorkingHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// DefaultWorkingHours returns the fallback schedule applied at shop creation.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Open: "08:00", Close: "18:00"}
}

// Value marshals the schedule into JSON for Postgres.
func (w WorkingHours) Value() (driver.Value, error) {
	buf, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the schedule.
func (w *WorkingHours) Scan(value interface{}) error {
	if value == nil {
		*w = WorkingHours{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("working hours: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, w)
}
