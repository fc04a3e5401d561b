package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
)

func (r *scheduleRepository) GetForDay(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*model.Schedule, error) {
	query := `
		SELECT id, business_id, day_of_week, is_working, start_time, end_time,
			   breaks, created_at, updated_at
		FROM schedules
		WHERE business_id = $1 AND day_of_week = $2
	`
	var schedule model.Schedule
	err := r.db.GetContext(ctx, &schedule, query, businessID, dayOfWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.Schedule, error) {
	query := `
		SELECT id, business_id, day_of_week, is_working, start_time, end_time,
			   breaks, created_at, updated_at
		FROM schedules
		WHERE business_id = $1
		ORDER BY day_of_week ASC
	`
	var schedules []*model.Schedule
	err := r.db.SelectContext(ctx, &schedules, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// Upsert relies on the (business_id, day_of_week) uniqueness constraint to
// keep at most one schedule per weekday.
func (r *scheduleRepository) Upsert(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (
			id, business_id, day_of_week, is_working, start_time, end_time,
			breaks, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (business_id, day_of_week) DO UPDATE SET
			is_working = EXCLUDED.is_working,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			breaks = EXCLUDED.breaks,
			updated_at = EXCLUDED.updated_at
	`
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now()
	}
	schedule.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.BusinessID,
		schedule.DayOfWeek,
		schedule.IsWorking,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Breaks,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return nil
}
