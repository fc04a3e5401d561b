package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
)

func (r *catalogRepository) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, business_id, name, price, duration, active,
			   created_at, updated_at
		FROM services
		WHERE id = $1 AND deleted_at IS NULL
	`
	var service model.Service
	err := r.db.GetContext(ctx, &service, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *catalogRepository) GetServices(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, business_id, name, price, duration, active,
			   created_at, updated_at
		FROM services
		WHERE id IN (?) AND deleted_at IS NULL
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build services query: %w", err)
	}

	var services []*model.Service
	err = r.db.SelectContext(ctx, &services, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}
	return services, nil
}

func (r *catalogRepository) ListServices(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	query := `
		SELECT id, business_id, name, price, duration, active,
			   created_at, updated_at
		FROM services
		WHERE business_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	var services []*model.Service
	err := r.db.SelectContext(ctx, &services, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *catalogRepository) GetPackage(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	query := `
		SELECT id, business_id, name, price, service_ids, active,
			   created_at, updated_at
		FROM packages
		WHERE id = $1 AND deleted_at IS NULL
	`
	var pkg model.Package
	err := r.db.GetContext(ctx, &pkg, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}
