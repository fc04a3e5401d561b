package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
)

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (
			id, business_id, name, phone, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.BusinessID,
		staff.Name,
		staff.Phone,
		staff.IsActive,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, business_id, name, phone, is_active, created_at, updated_at
		FROM staff
		WHERE id = $1
	`
	var staff model.Staff
	err := r.db.GetContext(ctx, &staff, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

// ListActive preserves insertion order; the resolver's default selection
// strategy depends on it being stable.
func (r *staffRepository) ListActive(ctx context.Context, businessID uuid.UUID) ([]*model.Staff, error) {
	query := `
		SELECT id, business_id, name, phone, is_active, created_at, updated_at
		FROM staff
		WHERE business_id = $1 AND is_active = true
		ORDER BY created_at ASC
	`
	var staff []*model.Staff
	err := r.db.SelectContext(ctx, &staff, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE staff
		SET is_active = false, updated_at = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("staff not found")
	}
	return nil
}
