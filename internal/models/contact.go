package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CustomFields is an open mapping of per-contact attributes stored as JSONB.
// Values are strings, numbers or booleans as delivered by the JSON decoder.
type CustomFields map[string]interface{}

// Value implements driver.Valuer.
func (f CustomFields) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *CustomFields) Scan(src interface{}) error {
	if src == nil {
		*f = CustomFields{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CustomFields", src)
	}

	if len(data) == 0 {
		*f = CustomFields{}
		return nil
	}

	return json.Unmarshal(data, f)
}

// Contact is a tenant's addressable contact. The dispatch core only ever
// reads contacts; mutation happens elsewhere.
type Contact struct {
	ID           int64        `db:"id" json:"id"`
	TenantID     int64        `db:"tenant_id" json:"tenant_id"`
	Name         string       `db:"name" json:"name"`
	Phone        string       `db:"phone" json:"phone"`
	CustomFields CustomFields `db:"custom_fields" json:"custom_fields,omitempty"`
	IsOptedOut   bool         `db:"is_opted_out" json:"is_opted_out"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
