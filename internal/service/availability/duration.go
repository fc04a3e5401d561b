package availability

import (
	"context"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

// DefaultFallbackDuration is applied when nothing else resolves. Historical
// bookings can predate duration tracking entirely.
const DefaultFallbackDuration = 30

// DurationResolver resolves a booking's effective duration through an
// ordered fallback chain: explicit duration, then the linked service, then
// the sum of a linked package's services, then a fixed default.
type DurationResolver struct {
	catalog  repository.CatalogRepository
	fallback int
}

func NewDurationResolver(catalog repository.CatalogRepository, fallbackMinutes int) *DurationResolver {
	if fallbackMinutes <= 0 {
		fallbackMinutes = DefaultFallbackDuration
	}
	return &DurationResolver{catalog: catalog, fallback: fallbackMinutes}
}

// Resolve never fails: a missing or deleted catalog entry falls through to
// the next source rather than blocking the occupancy check.
func (d *DurationResolver) Resolve(ctx context.Context, booking *model.Booking) int {
	if booking.Duration > 0 {
		return booking.Duration
	}

	if booking.ServiceID != nil {
		if service, err := d.catalog.GetService(ctx, *booking.ServiceID); err == nil && service.Duration > 0 {
			return service.Duration
		}
	}

	if booking.PackageID != nil {
		if total := d.packageDuration(ctx, booking); total > 0 {
			return total
		}
	}

	return d.fallback
}

func (d *DurationResolver) packageDuration(ctx context.Context, booking *model.Booking) int {
	pkg, err := d.catalog.GetPackage(ctx, *booking.PackageID)
	if err != nil || len(pkg.ServiceIDs) == 0 {
		return 0
	}

	services, err := d.catalog.GetServices(ctx, pkg.ServiceIDs)
	if err != nil {
		return 0
	}

	total := 0
	for _, service := range services {
		total += service.Duration
	}
	return total
}
