package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
)

func (r *payoutRepository) Create(ctx context.Context, q sqlx.ExtContext, payout *model.Payout) error {
	if q == nil {
		q = r.db
	}
	query := `
		INSERT INTO payouts (
			id, vendor_id, business_id, amount, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	payout.ID = uuid.New()
	payout.CreatedAt = time.Now()
	payout.UpdatedAt = time.Now()

	_, err := q.ExecContext(ctx, query,
		payout.ID,
		payout.VendorID,
		payout.BusinessID,
		payout.Amount,
		payout.Status,
		payout.CreatedAt,
		payout.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payout: %w", err)
	}
	return nil
}

func (r *payoutRepository) Get(ctx context.Context, id uuid.UUID) (*model.Payout, error) {
	query := `
		SELECT id, vendor_id, business_id, amount, status, created_at, updated_at
		FROM payouts
		WHERE id = $1
	`
	var payout model.Payout
	err := r.db.GetContext(ctx, &payout, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payout: %w", err)
	}
	return &payout, nil
}

func (r *payoutRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.Payout, error) {
	query := `
		SELECT id, vendor_id, business_id, amount, status, created_at, updated_at
		FROM payouts
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`
	var payouts []*model.Payout
	err := r.db.SelectContext(ctx, &payouts, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

func (r *payoutRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PayoutStatus) error {
	query := `
		UPDATE payouts
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update payout status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payout not found")
	}
	return nil
}

// Totals computes earnings and payout sums in a single statement so the
// available-balance check works off one consistent snapshot. Passing the
// payout transaction as q keeps the read under the business row lock.
func (r *payoutRepository) Totals(ctx context.Context, q sqlx.ExtContext, businessID uuid.UUID) (*model.PayoutTotals, error) {
	if q == nil {
		q = r.db
	}
	query := `
		SELECT
			COALESCE((
				SELECT SUM(vendor_earnings) FROM bookings
				WHERE business_id = $1 AND payment_status = 'paid'
			), 0) AS total_earnings,
			COALESCE((
				SELECT SUM(amount) FROM payouts
				WHERE business_id = $1 AND status = 'processed'
			), 0) AS processed_payouts,
			COALESCE((
				SELECT SUM(amount) FROM payouts
				WHERE business_id = $1 AND status = 'pending'
			), 0) AS pending_payouts
	`
	var totals model.PayoutTotals
	err := sqlx.GetContext(ctx, q, &totals, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payout totals: %w", err)
	}
	return &totals, nil
}
