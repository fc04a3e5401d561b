package business

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

// Service is the read surface for storefronts. Catalog browsing rides
// along because clients always fetch the two together.
type Service struct {
	businesses repository.BusinessRepository
	catalog    repository.CatalogRepository
}

func NewService(businesses repository.BusinessRepository, catalog repository.CatalogRepository) *Service {
	return &Service{businesses: businesses, catalog: catalog}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	business, err := s.businesses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return business, nil
}

func (s *Service) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.Business, error) {
	businesses, err := s.businesses.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

func (s *Service) ListServices(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	services, err := s.catalog.ListServices(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
