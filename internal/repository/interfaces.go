package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
)

// All repository interfaces in one file
type (
	// BusinessRepository reads businesses. Profile mutation lives in the
	// vendor management surface, not here.
	BusinessRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
		// GetForUpdate locks the business row for the remainder of tx,
		// serializing payout requests against the same business.
		GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.Business, error)
		ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.Business, error)
	}

	// ScheduleRepository stores one row per (business, weekday).
	// GetForDay returns (nil, nil) when the day was never configured.
	ScheduleRepository interface {
		GetForDay(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*model.Schedule, error)
		ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.Schedule, error)
		Upsert(ctx context.Context, schedule *model.Schedule) error
	}

	StaffRepository interface {
		Create(ctx context.Context, staff *model.Staff) error
		Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
		ListActive(ctx context.Context, businessID uuid.UUID) ([]*model.Staff, error)
		Deactivate(ctx context.Context, id uuid.UUID) error
	}

	CatalogRepository interface {
		GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
		GetServices(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error)
		ListServices(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error)
		GetPackage(ctx context.Context, id uuid.UUID) (*model.Package, error)
	}

	// BookingRepository persists bookings. Methods taking a *sqlx.Tx join
	// the caller's transaction; the availability read and the insert must
	// share one so a failed check leaves no state behind.
	BookingRepository interface {
		WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
		Create(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, q sqlx.ExtContext, booking *model.Booking) error
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		// ListForDate returns non-cancelled bookings for a business on a
		// calendar date, reading through tx when one is supplied.
		ListForDate(ctx context.Context, tx *sqlx.Tx, businessID uuid.UUID, date time.Time) ([]*model.Booking, error)
		// Settle stamps the commission split and marks the booking paid.
		// It only touches rows still pending payment; zero rows affected
		// means the booking was already settled.
		Settle(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, commission, earnings int64) (bool, error)
		SetGatewayOrder(ctx context.Context, id uuid.UUID, orderID string) error
	}

	WalletRepository interface {
		GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
		// BalanceForUpdate locks the customer row for the remainder of tx.
		BalanceForUpdate(ctx context.Context, tx *sqlx.Tx, customerID uuid.UUID) (int64, error)
		// Debit subtracts amount; it fails rather than letting the balance
		// go negative.
		Debit(ctx context.Context, tx *sqlx.Tx, customerID uuid.UUID, amount int64) error
		CreateTransaction(ctx context.Context, tx *sqlx.Tx, txn *model.WalletTransaction) error
	}

	// PayoutRepository persists payout requests. Create and Totals take a
	// q so the balance check and the insert can share one transaction
	// under the business row lock.
	PayoutRepository interface {
		Create(ctx context.Context, q sqlx.ExtContext, payout *model.Payout) error
		Get(ctx context.Context, id uuid.UUID) (*model.Payout, error)
		ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.Payout, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.PayoutStatus) error
		// Totals aggregates settled earnings and payout sums for a business
		// in one round trip, so the balance check sees one snapshot.
		Totals(ctx context.Context, q sqlx.ExtContext, businessID uuid.UUID) (*model.PayoutTotals, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		BeginTx(ctx context.Context) (*sql.Tx, error)
		UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status string, errorMessage *string, retryAt *time.Time) error
		MoveToDeadLetter(ctx context.Context, tx *sql.Tx, event *model.OutboxEvent) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
