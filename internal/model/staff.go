package model

import (
	"github.com/google/uuid"
)

// Staff is a member of exactly one business. Deactivation stops new
// assignments but never touches existing bookings.
type Staff struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Phone      string    `db:"phone" json:"phone,omitempty"`
	IsActive   bool      `db:"is_active" json:"is_active"`
}

type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}
