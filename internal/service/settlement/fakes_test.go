package settlement

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

func (f *fakeBookingRepo) Update(_ context.Context, _ sqlx.ExtContext, _ *model.Booking) error {
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

func (f *fakeBookingRepo) List(_ context.Context, _ *model.BookingFilters) ([]*model.Booking, error) {
	return f.bookings, nil
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
			if b.Status == model.BookingStatusPending {
				b.Status = model.BookingStatusUpcoming
			}
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

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*model.Business
	locked     []uuid.UUID
}

func (f *fakeBusinessRepo) Get(_ context.Context, id uuid.UUID) (*model.Business, error) {
	if b, ok := f.businesses[id]; ok {
		return b, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBusinessRepo) GetForUpdate(_ context.Context, _ *sqlx.Tx, id uuid.UUID) (*model.Business, error) {
	if b, ok := f.businesses[id]; ok {
		f.locked = append(f.locked, id)
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

type fakePayoutRepo struct {
	payouts []*model.Payout
	totals  model.PayoutTotals
}

func (f *fakePayoutRepo) Create(_ context.Context, _ sqlx.ExtContext, payout *model.Payout) error {
	payout.ID = uuid.New()
	f.payouts = append(f.payouts, payout)
	f.totals.PendingPayouts += payout.Amount
	return nil
}

func (f *fakePayoutRepo) Get(_ context.Context, id uuid.UUID) (*model.Payout, error) {
	for _, p := range f.payouts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePayoutRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]*model.Payout, error) {
	var matched []*model.Payout
	for _, p := range f.payouts {
		if p.VendorID == vendorID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakePayoutRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.PayoutStatus) error {
	for _, p := range f.payouts {
		if p.ID == id {
			p.Status = status
		}
	}
	return nil
}

func (f *fakePayoutRepo) Totals(_ context.Context, _ sqlx.ExtContext, _ uuid.UUID) (*model.PayoutTotals, error) {
	totals := f.totals
	return &totals, nil
}

type fakeWalletRepo struct {
	customers    map[uuid.UUID]*model.Customer
	balances     map[uuid.UUID]int64
	transactions []*model.WalletTransaction
}

func (f *fakeWalletRepo) GetCustomer(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeWalletRepo) BalanceForUpdate(_ context.Context, _ *sqlx.Tx, customerID uuid.UUID) (int64, error) {
	balance, ok := f.balances[customerID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return balance, nil
}

func (f *fakeWalletRepo) Debit(_ context.Context, _ *sqlx.Tx, customerID uuid.UUID, amount int64) error {
	f.balances[customerID] -= amount
	return nil
}

func (f *fakeWalletRepo) CreateTransaction(_ context.Context, _ *sqlx.Tx, txn *model.WalletTransaction) error {
	txn.ID = uuid.New()
	f.transactions = append(f.transactions, txn)
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

func (f *fakeOutboxRepo) eventTypes() []string {
	var types []string
	for _, e := range f.events {
		types = append(types, e.EventType)
	}
	return types
}
