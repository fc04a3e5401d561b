package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
)

type fakeBookingRepo struct {
	bookings []*model.Booking
}

func (f *fakeBookingRepo) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func (f *fakeBookingRepo) Create(_ context.Context, _ *sqlx.Tx, booking *model.Booking) error {
	booking.ID = uuid.New()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBookingRepo) Update(_ context.Context, _ sqlx.ExtContext, booking *model.Booking) error {
	for i, b := range f.bookings {
		if b.ID == booking.ID {
			f.bookings[i] = booking
		}
	}
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.BookingStatus) error {
	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = status
		}
	}
	return nil
}

func (f *fakeBookingRepo) List(_ context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	var matched []*model.Booking
	for _, b := range f.bookings {
		if filters.CustomerID != uuid.Nil && b.CustomerID != filters.CustomerID {
			continue
		}
		if filters.BusinessID != uuid.Nil && b.BusinessID != filters.BusinessID {
			continue
		}
		if filters.StaffID != uuid.Nil && (b.StaffID == nil || *b.StaffID != filters.StaffID) {
			continue
		}
		matched = append(matched, b)
	}
	return matched, nil
}

func (f *fakeBookingRepo) ListForDate(_ context.Context, _ *sqlx.Tx, businessID uuid.UUID, date time.Time) ([]*model.Booking, error) {
	var matched []*model.Booking
	for _, b := range f.bookings {
		if b.BusinessID == businessID && b.Date.Equal(date) && !b.IsCancelled() {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (f *fakeBookingRepo) Settle(_ context.Context, _ sqlx.ExtContext, id uuid.UUID, commission, earnings int64) (bool, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			if b.PaymentStatus != model.PaymentStatusPending {
				return false, nil
			}
			b.PaymentStatus = model.PaymentStatusPaid
			b.CommissionAmount = commission
			b.VendorEarnings = earnings
			return true, nil
		}
	}
	return false, sql.ErrNoRows
}

func (f *fakeBookingRepo) SetGatewayOrder(_ context.Context, id uuid.UUID, orderID string) error {
	for _, b := range f.bookings {
		if b.ID == id {
			b.GatewayOrderID = &orderID
		}
	}
	return nil
}

type fakeCatalogRepo struct {
	services map[uuid.UUID]*model.Service
	packages map[uuid.UUID]*model.Package
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id uuid.UUID) (*model.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCatalogRepo) GetServices(_ context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	var matched []*model.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeCatalogRepo) ListServices(_ context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	var matched []*model.Service
	for _, s := range f.services {
		if s.BusinessID == businessID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeCatalogRepo) GetPackage(_ context.Context, id uuid.UUID) (*model.Package, error) {
	if p, ok := f.packages[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*model.Business
}

func (f *fakeBusinessRepo) Get(_ context.Context, id uuid.UUID) (*model.Business, error) {
	if b, ok := f.businesses[id]; ok {
		return b, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBusinessRepo) GetForUpdate(_ context.Context, _ *sqlx.Tx, id uuid.UUID) (*model.Business, error) {
	if b, ok := f.businesses[id]; ok {
		return b, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBusinessRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]*model.Business, error) {
	var matched []*model.Business
	for _, b := range f.businesses {
		if b.VendorID == vendorID {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

type fakeScheduleRepo struct {
	byDay map[int]*model.Schedule
}

func (f *fakeScheduleRepo) GetForDay(_ context.Context, _ uuid.UUID, dayOfWeek int) (*model.Schedule, error) {
	return f.byDay[dayOfWeek], nil
}

func (f *fakeScheduleRepo) ListForBusiness(_ context.Context, _ uuid.UUID) ([]*model.Schedule, error) {
	var all []*model.Schedule
	for _, s := range f.byDay {
		all = append(all, s)
	}
	return all, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, schedule *model.Schedule) error {
	f.byDay[schedule.DayOfWeek] = schedule
	return nil
}

type fakeStaffRepo struct {
	staff []*model.Staff
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *model.Staff) error {
	f.staff = append(f.staff, staff)
	return nil
}

func (f *fakeStaffRepo) Get(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	for _, s := range f.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStaffRepo) ListActive(_ context.Context, _ uuid.UUID) ([]*model.Staff, error) {
	var active []*model.Staff
	for _, s := range f.staff {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (f *fakeStaffRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, s := range f.staff {
		if s.ID == id {
			s.IsActive = false
		}
	}
	return nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}

func (f *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}

func (f *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

func (f *fakeOutboxRepo) BeginTx(_ context.Context) (*sql.Tx, error) { return nil, nil }

func (f *fakeOutboxRepo) UpdateStatusTx(_ context.Context, _ *sql.Tx, _ uuid.UUID, _ string, _ *string, _ *time.Time) error {
	return nil
}

func (f *fakeOutboxRepo) MoveToDeadLetter(_ context.Context, _ *sql.Tx, _ *model.OutboxEvent) error {
	return nil
}

func (f *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
