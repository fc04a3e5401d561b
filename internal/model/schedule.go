package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Break is a pause inside a working day, e.g. lunch.
type Break struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label,omitempty"`
}

// BreakList is stored as a JSONB column.
type BreakList []Break

func (b BreakList) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	return json.Marshal(b)
}

func (b *BreakList) Scan(src interface{}) error {
	if src == nil {
		*b = nil
		return nil
	}
	bytes, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into BreakList", src)
	}
	return json.Unmarshal(bytes, b)
}

// Schedule is the working window for one business on one weekday.
// At most one row exists per (business_id, day_of_week).
type Schedule struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	IsWorking  bool      `db:"is_working" json:"is_working"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	Breaks     BreakList `db:"breaks" json:"breaks"`
}

// Default working window applied when a vendor never configured a day.
const (
	DefaultScheduleStart = "09:00"
	DefaultScheduleEnd   = "20:00"
)

// DefaultSchedule returns the lazily-created open schedule for a day.
func DefaultSchedule(businessID uuid.UUID, dayOfWeek int) *Schedule {
	return &Schedule{
		BusinessID: businessID,
		DayOfWeek:  dayOfWeek,
		IsWorking:  true,
		StartTime:  DefaultScheduleStart,
		EndTime:    DefaultScheduleEnd,
	}
}

type UpsertScheduleRequest struct {
	IsWorking bool    `json:"is_working"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Breaks    []Break `json:"breaks"`
}
