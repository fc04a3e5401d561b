package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/salon-api/internal/model"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

const bookingColumns = `
	id, customer_id, business_id, service_id, package_id, staff_id,
	date, time, duration, price, title, address, latitude, longitude, notes,
	status, payment_status, gateway_order_id, commission_amount,
	vendor_earnings, created_at, updated_at
`

// Create inserts a booking inside the caller's transaction. The schema
// carries an exclusion constraint on (staff_id, date, slot range) so two
// transactions racing for the same staff and window cannot both commit;
// the loser surfaces as a slot-taken conflict.
func (r *bookingRepository) Create(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				  $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.BusinessID,
		booking.ServiceID,
		booking.PackageID,
		booking.StaffID,
		booking.Date,
		booking.Time,
		booking.Duration,
		booking.Price,
		booking.Title,
		booking.Address,
		booking.Latitude,
		booking.Longitude,
		booking.Notes,
		booking.Status,
		booking.PaymentStatus,
		booking.GatewayOrderID,
		booking.CommissionAmount,
		booking.VendorEarnings,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == "23P01" || pqErr.Code == "23505") {
			return apperrors.Conflict(apperrors.ReasonSlotTaken,
				"slot was taken by a concurrent booking", nil)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, q sqlx.ExtContext, booking *model.Booking) error {
	if q == nil {
		q = r.db
	}
	query := `
		UPDATE bookings
		SET date = $1, time = $2, staff_id = $3, address = $4, latitude = $5,
			longitude = $6, notes = $7, status = $8, updated_at = $9
		WHERE id = $10
	`
	booking.UpdatedAt = time.Now()

	result, err := q.ExecContext(ctx, query,
		booking.Date,
		booking.Time,
		booking.StaffID,
		booking.Address,
		booking.Latitude,
		booking.Longitude,
		booking.Notes,
		booking.Status,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.CustomerID != uuid.Nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argCount)
		args = append(args, filters.CustomerID)
		argCount++
	}
	if filters.BusinessID != uuid.Nil {
		query += fmt.Sprintf(" AND business_id = $%d", argCount)
		args = append(args, filters.BusinessID)
		argCount++
	}
	if filters.StaffID != uuid.Nil {
		query += fmt.Sprintf(" AND staff_id = $%d", argCount)
		args = append(args, filters.StaffID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND date >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}
	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND date <= $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	query += " ORDER BY date ASC, time ASC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListForDate(ctx context.Context, tx *sqlx.Tx, businessID uuid.UUID, date time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE business_id = $1
		AND date = $2
		AND status != 'cancelled'
		ORDER BY time ASC
	`

	var bookings []*model.Booking
	var err error
	if tx != nil {
		err = tx.SelectContext(ctx, &bookings, query, businessID, date)
	} else {
		err = r.db.SelectContext(ctx, &bookings, query, businessID, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}
	return bookings, nil
}

// Settle is guarded by payment_status = 'pending' so a second settlement
// attempt affects zero rows instead of re-stamping amounts. A pending
// booking moves to upcoming in the same statement. q may be nil to run
// outside any transaction.
func (r *bookingRepository) Settle(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, commission, earnings int64) (bool, error) {
	if q == nil {
		q = r.db
	}
	query := `
		UPDATE bookings
		SET commission_amount = $1, vendor_earnings = $2,
			payment_status = 'paid',
			status = CASE WHEN status = 'pending' THEN 'upcoming' ELSE status END,
			updated_at = $3
		WHERE id = $4 AND payment_status = 'pending'
	`
	result, err := q.ExecContext(ctx, query, commission, earnings, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to settle booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *bookingRepository) SetGatewayOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	query := `
		UPDATE bookings
		SET gateway_order_id = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, orderID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set gateway order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}
