package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/timeutil"
)

// Request asks whether one slot is bookable for one business.
// ExcludeBookingID drops one booking from the occupancy check so a
// reschedule does not collide with its own old slot.
type Request struct {
	BusinessID       uuid.UUID
	Date             time.Time
	Time             string
	Duration         int
	PreferredStaffID *uuid.UUID
	ExcludeBookingID *uuid.UUID
}

// Result carries the deterministically assigned staff member.
type Result struct {
	StaffID uuid.UUID
}

type Resolver struct {
	schedules repository.ScheduleRepository
	staff     repository.StaffRepository
	bookings  repository.BookingRepository
	durations *DurationResolver
	selector  Selector
}

func NewResolver(
	schedules repository.ScheduleRepository,
	staff repository.StaffRepository,
	bookings repository.BookingRepository,
	durations *DurationResolver,
	selector Selector,
) *Resolver {
	if selector == nil {
		selector = NewFirstAvailableSelector()
	}
	return &Resolver{
		schedules: schedules,
		staff:     staff,
		bookings:  bookings,
		durations: durations,
		selector:  selector,
	}
}

// Resolve checks a slot against the weekly schedule, breaks, and staff
// occupancy, failing with the first violated condition in priority order:
// closed day, outside hours, break overlap, no staff configured, no staff
// free at the time. Booking reads go through tx when supplied so the check
// shares the creating transaction's snapshot.
func (r *Resolver) Resolve(ctx context.Context, tx *sqlx.Tx, req Request) (*Result, error) {
	if req.Duration <= 0 {
		return nil, apperrors.Validation("duration must be positive", nil)
	}

	reqStart, err := timeutil.ParseClock(req.Time)
	if err != nil {
		return nil, apperrors.Validation("invalid time format", err)
	}
	reqEnd := reqStart + req.Duration

	schedule, err := r.schedules.GetForDay(ctx, req.BusinessID, int(req.Date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if schedule == nil || !schedule.IsWorking {
		return nil, apperrors.Conflict(apperrors.ReasonClosedDay,
			"business is closed on this day", nil)
	}

	schedStart, err := timeutil.ParseClock(schedule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("malformed schedule start %q: %w", schedule.StartTime, err)
	}
	schedEnd, err := timeutil.ParseClock(schedule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("malformed schedule end %q: %w", schedule.EndTime, err)
	}

	if reqStart < schedStart || reqEnd > schedEnd {
		return nil, apperrors.Conflict(apperrors.ReasonOutsideHours,
			"requested slot is outside working hours",
			&apperrors.Window{Start: schedule.StartTime, End: schedule.EndTime})
	}

	for _, brk := range schedule.Breaks {
		brkStart, err := timeutil.ParseClock(brk.StartTime)
		if err != nil {
			return nil, fmt.Errorf("malformed break start %q: %w", brk.StartTime, err)
		}
		brkEnd, err := timeutil.ParseClock(brk.EndTime)
		if err != nil {
			return nil, fmt.Errorf("malformed break end %q: %w", brk.EndTime, err)
		}
		if timeutil.Overlaps(reqStart, reqEnd, brkStart, brkEnd) {
			return nil, apperrors.Conflict(apperrors.ReasonBreakOverlap,
				"requested slot overlaps a break",
				&apperrors.Window{Start: brk.StartTime, End: brk.EndTime, Label: brk.Label})
		}
	}

	candidates, err := r.staff.ListActive(ctx, req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if req.PreferredStaffID != nil {
		filtered := candidates[:0:0]
		for _, s := range candidates {
			if s.ID == *req.PreferredStaffID {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) == 0 {
			return nil, apperrors.Conflict(apperrors.ReasonNoStaffConfigured,
				"requested staff member is inactive or does not belong to this business", nil)
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil, apperrors.Conflict(apperrors.ReasonNoStaffConfigured,
			"no staff configured for this business", nil)
	}

	existing, err := r.bookings.ListForDate(ctx, tx, req.BusinessID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	if req.ExcludeBookingID != nil {
		kept := existing[:0:0]
		for _, b := range existing {
			if b.ID != *req.ExcludeBookingID {
				kept = append(kept, b)
			}
		}
		existing = kept
	}
	bookingsByStaff := groupByStaff(existing)

	var available []*model.Staff
	for _, candidate := range candidates {
		if r.staffFree(ctx, bookingsByStaff[candidate.ID], reqStart, reqEnd) {
			available = append(available, candidate)
		}
	}
	if len(available) == 0 {
		return nil, apperrors.Conflict(apperrors.ReasonStaffUnavailable,
			"no staff available at the requested time", nil)
	}

	chosen := r.selector.Select(available, bookingsByStaff)
	return &Result{StaffID: chosen.ID}, nil
}

type occupiedInterval struct {
	start int
	end   int
}

func groupByStaff(bookings []*model.Booking) map[uuid.UUID][]*model.Booking {
	byStaff := make(map[uuid.UUID][]*model.Booking)
	for _, booking := range bookings {
		if booking.StaffID == nil {
			continue
		}
		byStaff[*booking.StaffID] = append(byStaff[*booking.StaffID], booking)
	}
	return byStaff
}

func (r *Resolver) staffFree(ctx context.Context, bookings []*model.Booking, reqStart, reqEnd int) bool {
	for _, booking := range bookings {
		interval, ok := r.occupied(ctx, booking)
		if !ok {
			continue
		}
		if timeutil.Overlaps(reqStart, reqEnd, interval.start, interval.end) {
			return false
		}
	}
	return true
}

func (r *Resolver) occupied(ctx context.Context, booking *model.Booking) (occupiedInterval, bool) {
	start, err := timeutil.ParseClock(booking.Time)
	if err != nil {
		// legacy rows can carry junk times; they cannot block a slot
		return occupiedInterval{}, false
	}
	duration := r.durations.Resolve(ctx, booking)
	return occupiedInterval{start: start, end: start + duration}, true
}
