package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service/availability"
	"github.com/jwalitptl/salon-api/internal/service/event"
	"github.com/jwalitptl/salon-api/internal/service/geo"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

type Service struct {
	repo         repository.BookingRepository
	catalog      repository.CatalogRepository
	businesses   repository.BusinessRepository
	resolver     *availability.Resolver
	geoResolver  geo.Resolver
	events       *event.Service
	logger       *logger.Logger
	metrics      *metrics.Metrics
	fallbackMins int
}

func NewService(
	repo repository.BookingRepository,
	catalog repository.CatalogRepository,
	businesses repository.BusinessRepository,
	resolver *availability.Resolver,
	geoResolver geo.Resolver,
	events *event.Service,
	log *logger.Logger,
	m *metrics.Metrics,
	fallbackMins int,
) *Service {
	if fallbackMins <= 0 {
		fallbackMins = availability.DefaultFallbackDuration
	}
	return &Service{
		repo:         repo,
		catalog:      catalog,
		businesses:   businesses,
		resolver:     resolver,
		geoResolver:  geoResolver,
		events:       events,
		logger:       log,
		metrics:      m,
		fallbackMins: fallbackMins,
	}
}

// snapshot is what booking creation copies out of the catalog so later
// catalog edits cannot reprice the booking.
type snapshot struct {
	businessID uuid.UUID
	price      int64
	duration   int
	title      string
}

// Create resolves the catalog reference, checks availability, and persists
// the booking as one atomic unit. A failed availability check aborts the
// whole transaction; nothing is written.
func (s *Service) Create(ctx context.Context, principal model.Principal, req *model.CreateBookingRequest) (*model.Booking, error) {
	if (req.ServiceID == nil) == (req.PackageID == nil) {
		return nil, apperrors.Validation("exactly one of service_id or package_id is required", nil)
	}

	date, err := time.Parse(model.DateFormat, req.Date)
	if err != nil {
		return nil, apperrors.Validation("invalid date format, expected YYYY-MM-DD", err)
	}

	snap, err := s.resolveCatalogRef(ctx, req)
	if err != nil {
		return nil, err
	}

	business, err := s.businesses.Get(ctx, snap.businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	if !business.Active {
		return nil, apperrors.Conflict(apperrors.ReasonClosedDay, "business is not accepting bookings", nil)
	}

	booking := &model.Booking{
		CustomerID:    principal.ID,
		BusinessID:    snap.businessID,
		ServiceID:     req.ServiceID,
		PackageID:     req.PackageID,
		Date:          date,
		Time:          req.Time,
		Duration:      snap.duration,
		Price:         snap.price,
		Title:         snap.title,
		Address:       req.Address,
		Notes:         req.Notes,
		Status:        model.BookingStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
	s.enrichAddress(ctx, booking)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := s.resolver.Resolve(ctx, tx, availability.Request{
			BusinessID:       snap.businessID,
			Date:             date,
			Time:             req.Time,
			Duration:         snap.duration,
			PreferredStaffID: req.PreferredStaffID,
		})
		if err != nil {
			return err
		}

		booking.StaffID = &result.StaffID
		return s.repo.Create(ctx, tx, booking)
	})
	if err != nil {
		s.recordConflict(err)
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}

	if err := s.events.Emit(ctx, model.EventBookingCreated, booking); err != nil {
		s.logger.Error(err, "failed to emit booking_created event", "booking_id", booking.ID.String())
	}

	return booking, nil
}

func (s *Service) resolveCatalogRef(ctx context.Context, req *model.CreateBookingRequest) (*snapshot, error) {
	if req.ServiceID != nil {
		service, err := s.catalog.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFound("service", err)
			}
			return nil, fmt.Errorf("failed to load service: %w", err)
		}
		duration := service.Duration
		if duration <= 0 {
			duration = s.fallbackMins
		}
		return &snapshot{
			businessID: service.BusinessID,
			price:      service.Price,
			duration:   duration,
			title:      service.Name,
		}, nil
	}

	pkg, err := s.catalog.GetPackage(ctx, *req.PackageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("package", err)
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	duration := 0
	if len(pkg.ServiceIDs) > 0 {
		services, err := s.catalog.GetServices(ctx, pkg.ServiceIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load package services: %w", err)
		}
		for _, service := range services {
			duration += service.Duration
		}
	}
	if duration <= 0 {
		duration = s.fallbackMins
	}

	return &snapshot{
		businessID: pkg.BusinessID,
		price:      pkg.Price,
		duration:   duration,
		title:      pkg.Name,
	}, nil
}

// enrichAddress is best-effort: a geocoder failure degrades to text-only
// address storage.
func (s *Service) enrichAddress(ctx context.Context, booking *model.Booking) {
	if booking.Address == "" {
		return
	}
	coords, err := s.geoResolver.Resolve(ctx, booking.Address)
	if err != nil {
		s.logger.Debug("address enrichment skipped", "error", err.Error())
		return
	}
	booking.Latitude = &coords.Latitude
	booking.Longitude = &coords.Longitude
}

func (s *Service) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if err := s.authorize(ctx, principal, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// List returns bookings the caller is allowed to see. Customers are
// pinned to their own bookings, staff to their own assignments, vendors
// to a business they own. Only admins may list without a scope.
func (s *Service) List(ctx context.Context, principal model.Principal, filters *model.BookingFilters) ([]*model.Booking, error) {
	if err := s.scopeFilters(ctx, principal, filters); err != nil {
		return nil, err
	}

	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) scopeFilters(ctx context.Context, principal model.Principal, filters *model.BookingFilters) error {
	switch {
	case principal.IsAdmin():
		return nil
	case principal.IsCustomer():
		filters.CustomerID = principal.ID
		return nil
	case principal.IsStaff():
		filters.StaffID = principal.ID
		return nil
	case principal.IsVendor():
		if filters.BusinessID == uuid.Nil {
			return apperrors.Forbidden("business_id is required when listing as a vendor")
		}
		business, err := s.businesses.Get(ctx, filters.BusinessID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("business", err)
			}
			return fmt.Errorf("failed to load business: %w", err)
		}
		if business.VendorID != principal.ID {
			return apperrors.Forbidden("business does not belong to this account")
		}
		return nil
	default:
		return apperrors.Forbidden("listing is not permitted for this role")
	}
}

// Reschedule mutates date/time/address/notes, permitted only while the
// booking is upcoming and only by its owner. The new slot passes through
// the availability resolver again.
func (s *Service) Reschedule(ctx context.Context, principal model.Principal, id uuid.UUID, req *model.RescheduleBookingRequest) (*model.Booking, error) {
	booking, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != principal.ID {
		return nil, apperrors.Forbidden("only the booking owner may reschedule")
	}
	if booking.Status != model.BookingStatusUpcoming {
		return nil, apperrors.Conflict(apperrors.ReasonInvalidTransition,
			fmt.Sprintf("booking in status %q cannot be rescheduled", booking.Status), nil)
	}

	slotChanged := false
	if req.Date != nil {
		date, err := time.Parse(model.DateFormat, *req.Date)
		if err != nil {
			return nil, apperrors.Validation("invalid date format, expected YYYY-MM-DD", err)
		}
		booking.Date = date
		slotChanged = true
	}
	if req.Time != nil {
		booking.Time = *req.Time
		slotChanged = true
	}
	if req.Address != nil {
		booking.Address = *req.Address
		booking.Latitude = nil
		booking.Longitude = nil
		s.enrichAddress(ctx, booking)
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	if slotChanged {
		// Re-check and persist in one transaction, as Create does. The
		// resolver's pick also backfills bookings that predate automatic
		// staff assignment.
		err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
			result, err := s.resolver.Resolve(ctx, tx, availability.Request{
				BusinessID:       booking.BusinessID,
				Date:             booking.Date,
				Time:             booking.Time,
				Duration:         booking.Duration,
				PreferredStaffID: booking.StaffID,
				ExcludeBookingID: &booking.ID,
			})
			if err != nil {
				return err
			}

			booking.StaffID = &result.StaffID
			return s.repo.Update(ctx, tx, booking)
		})
		if err != nil {
			s.recordConflict(err)
			return nil, err
		}
	} else if err := s.repo.Update(ctx, nil, booking); err != nil {
		return nil, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	if err := s.events.Emit(ctx, model.EventBookingStatusChanged, booking); err != nil {
		s.logger.Error(err, "failed to emit booking event", "booking_id", booking.ID.String())
	}
	return booking, nil
}

// Cancel is available to the owning customer while the booking is pending
// or upcoming, and to the business's vendor at any non-terminal point.
func (s *Service) Cancel(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	switch {
	case booking.CustomerID == principal.ID:
		if !customerCancellable(booking.Status) {
			return nil, apperrors.Conflict(apperrors.ReasonInvalidTransition,
				fmt.Sprintf("booking in status %q cannot be cancelled", booking.Status), nil)
		}
	default:
		if err := s.authorizeVendor(ctx, principal, booking); err != nil {
			return nil, err
		}
		if !canTransition(booking.Status, model.BookingStatusCancelled) {
			return nil, apperrors.Conflict(apperrors.ReasonInvalidTransition,
				fmt.Sprintf("booking in status %q cannot be cancelled", booking.Status), nil)
		}
	}

	booking.Status = model.BookingStatusCancelled
	if err := s.repo.UpdateStatus(ctx, id, model.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	s.recordStatusChange(model.BookingStatusCancelled)

	if err := s.events.Emit(ctx, model.EventBookingStatusChanged, booking); err != nil {
		s.logger.Error(err, "failed to emit booking event", "booking_id", booking.ID.String())
	}
	return booking, nil
}

// UpdateStatus covers vendor actions: confirm, complete, missed.
func (s *Service) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	booking, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeVendor(ctx, principal, booking); err != nil {
		return nil, err
	}
	if !canTransition(booking.Status, status) {
		return nil, apperrors.Conflict(apperrors.ReasonInvalidTransition,
			fmt.Sprintf("cannot transition booking from %q to %q", booking.Status, status), nil)
	}

	booking.Status = status
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	s.recordStatusChange(status)

	if err := s.events.Emit(ctx, model.EventBookingStatusChanged, booking); err != nil {
		s.logger.Error(err, "failed to emit booking event", "booking_id", booking.ID.String())
	}
	return booking, nil
}

func (s *Service) recordConflict(err error) {
	if s.metrics == nil {
		return
	}
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrConflict {
		s.metrics.AvailabilityConflicts.WithLabelValues(string(appErr.Reason)).Inc()
	}
}

func (s *Service) recordStatusChange(status model.BookingStatus) {
	if s.metrics == nil {
		return
	}
	s.metrics.BookingStatusChanges.WithLabelValues(string(status)).Inc()
}

func (s *Service) authorize(ctx context.Context, principal model.Principal, booking *model.Booking) error {
	if principal.IsAdmin() || booking.CustomerID == principal.ID {
		return nil
	}
	return s.authorizeVendor(ctx, principal, booking)
}

func (s *Service) authorizeVendor(ctx context.Context, principal model.Principal, booking *model.Booking) error {
	if principal.IsAdmin() {
		return nil
	}
	business, err := s.businesses.Get(ctx, booking.BusinessID)
	if err != nil {
		return fmt.Errorf("failed to load business: %w", err)
	}
	if business.VendorID != principal.ID {
		return apperrors.Forbidden("booking does not belong to this account")
	}
	return nil
}
