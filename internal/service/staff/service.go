package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type Service struct {
	repo repository.StaffRepository
}

func NewService(repo repository.StaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req *model.CreateStaffRequest) (*model.Staff, error) {
	staff := &model.Staff{
		BusinessID: businessID,
		Name:       req.Name,
		Phone:      req.Phone,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return staff, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

// ListActive returns assignable staff in creation order.
func (s *Service) ListActive(ctx context.Context, businessID uuid.UUID) ([]*model.Staff, error) {
	staff, err := s.repo.ListActive(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

// Deactivate removes a member from future assignment. Bookings already
// holding the member keep them.
func (s *Service) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	staff, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if staff.BusinessID != businessID {
		return apperrors.Forbidden("staff does not belong to this business")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate staff: %w", err)
	}
	return nil
}
