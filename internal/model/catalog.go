package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Service is a bookable catalog entry owned by a business. Price is in the
// smallest currency unit; Duration in minutes.
type Service struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Price      int64     `db:"price" json:"price"`
	Duration   int       `db:"duration" json:"duration"`
	Active     bool      `db:"active" json:"active"`
}

// UUIDList is stored as a JSONB column.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	bytes, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into UUIDList", src)
	}
	return json.Unmarshal(bytes, l)
}

// Package bundles several services under one price. Its effective duration
// is the sum of the member services' durations.
type Package struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Price      int64     `db:"price" json:"price"`
	ServiceIDs UUIDList  `db:"service_ids" json:"service_ids"`
	Active     bool      `db:"active" json:"active"`
}
