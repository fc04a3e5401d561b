package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
)

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, vendor_id, type, name, location, email, commission_rate, active,
			   created_at, updated_at
		FROM businesses
		WHERE id = $1 AND deleted_at IS NULL
	`
	var business model.Business
	err := r.db.GetContext(ctx, &business, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, vendor_id, type, name, location, email, commission_rate, active,
			   created_at, updated_at
		FROM businesses
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`
	var business model.Business
	err := tx.GetContext(ctx, &business, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock business: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.Business, error) {
	query := `
		SELECT id, vendor_id, type, name, location, email, commission_rate, active,
			   created_at, updated_at
		FROM businesses
		WHERE vendor_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	var businesses []*model.Business
	err := r.db.SelectContext(ctx, &businesses, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}
