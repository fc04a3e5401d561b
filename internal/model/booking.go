package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusMissed    BookingStatus = "missed"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking snapshots price, duration, and title at creation so later catalog
// edits do not reprice it. Commission fields stay zero until settlement.
type Booking struct {
	Base
	CustomerID     uuid.UUID     `db:"customer_id" json:"customer_id"`
	BusinessID     uuid.UUID     `db:"business_id" json:"business_id"`
	ServiceID      *uuid.UUID    `db:"service_id" json:"service_id,omitempty"`
	PackageID      *uuid.UUID    `db:"package_id" json:"package_id,omitempty"`
	StaffID        *uuid.UUID    `db:"staff_id" json:"staff_id,omitempty"`
	Date           time.Time     `db:"date" json:"date"`
	Time           string        `db:"time" json:"time"`
	Duration       int           `db:"duration" json:"duration"`
	Price          int64         `db:"price" json:"price"`
	Title          string        `db:"title" json:"title"`
	Address        string        `db:"address" json:"address,omitempty"`
	Latitude       *float64      `db:"latitude" json:"latitude,omitempty"`
	Longitude      *float64      `db:"longitude" json:"longitude,omitempty"`
	Notes          string        `db:"notes" json:"notes,omitempty"`
	Status         BookingStatus `db:"status" json:"status"`
	PaymentStatus  PaymentStatus `db:"payment_status" json:"payment_status"`
	GatewayOrderID *string       `db:"gateway_order_id" json:"gateway_order_id,omitempty"`
	// CommissionAmount + VendorEarnings == Price once PaymentStatus is paid.
	CommissionAmount int64 `db:"commission_amount" json:"commission_amount"`
	VendorEarnings   int64 `db:"vendor_earnings" json:"vendor_earnings"`
}

// IsTerminal reports whether no further status transition is permitted.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// IsCancelled reports whether the booking no longer occupies its slot.
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

type CreateBookingRequest struct {
	ServiceID        *uuid.UUID `json:"service_id"`
	PackageID        *uuid.UUID `json:"package_id"`
	Date             string     `json:"date" binding:"required"`
	Time             string     `json:"time" binding:"required"`
	PreferredStaffID *uuid.UUID `json:"preferred_staff_id"`
	Address          string     `json:"address"`
	Notes            string     `json:"notes" binding:"max=1000"`
}

type RescheduleBookingRequest struct {
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type BookingFilters struct {
	CustomerID uuid.UUID
	BusinessID uuid.UUID
	StaffID    uuid.UUID
	Status     BookingStatus
	StartDate  time.Time
	EndDate    time.Time
}
