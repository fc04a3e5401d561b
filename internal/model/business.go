package model

import (
	"github.com/google/uuid"
)

// BusinessType discriminates the two storefront variants. They share one
// shape; the tag only affects presentation.
type BusinessType string

const (
	BusinessTypeSalon BusinessType = "salon"
	BusinessTypeSpa   BusinessType = "spa"
)

type Business struct {
	Base
	VendorID uuid.UUID    `db:"vendor_id" json:"vendor_id"`
	Type     BusinessType `db:"type" json:"type"`
	Name     string       `db:"name" json:"name"`
	Location string       `db:"location" json:"location"`
	// Email is the vendor's contact address for payout notices.
	Email string `db:"email" json:"email,omitempty"`
	// CommissionRate is a percentage (e.g. 15.0). It is read at settlement
	// time and stamped onto the booking; later changes never reprice
	// already-settled bookings.
	CommissionRate float64 `db:"commission_rate" json:"commission_rate"`
	Active         bool    `db:"active" json:"active"`
}
