package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/model"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

// 2026-09-07 is a Monday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type fixture struct {
	businessID uuid.UUID
	schedules  *fakeScheduleRepo
	staff      *fakeStaffRepo
	bookings   *fakeBookingRepo
	resolver   *Resolver
	anna       *model.Staff
	boris      *model.Staff
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	businessID := uuid.New()
	anna := &model.Staff{BusinessID: businessID, Name: "Anna", IsActive: true}
	anna.ID = uuid.New()
	boris := &model.Staff{BusinessID: businessID, Name: "Boris", IsActive: true}
	boris.ID = uuid.New()

	schedules := &fakeScheduleRepo{byDay: map[int]*model.Schedule{
		int(monday.Weekday()): {
			BusinessID: businessID,
			DayOfWeek:  int(monday.Weekday()),
			IsWorking:  true,
			StartTime:  "09:00",
			EndTime:    "20:00",
			Breaks: model.BreakList{
				{StartTime: "13:00", EndTime: "14:00", Label: "lunch"},
			},
		},
	}}
	staff := &fakeStaffRepo{staff: []*model.Staff{anna, boris}}
	bookings := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{}

	return &fixture{
		businessID: businessID,
		schedules:  schedules,
		staff:      staff,
		bookings:   bookings,
		resolver: NewResolver(schedules, staff, bookings,
			NewDurationResolver(catalog, 30), nil),
		anna:  anna,
		boris: boris,
	}
}

func (f *fixture) addBooking(staffID uuid.UUID, timeOfDay string, duration int) *model.Booking {
	booking := &model.Booking{
		BusinessID: f.businessID,
		StaffID:    &staffID,
		Date:       monday,
		Time:       timeOfDay,
		Duration:   duration,
		Status:     model.BookingStatusUpcoming,
	}
	booking.ID = uuid.New()
	f.bookings.bookings = append(f.bookings.bookings, booking)
	return booking
}

func requireConflict(t *testing.T, err error, reason apperrors.ConflictReason) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, apperrors.ErrConflict, appErr.Code)
	require.Equal(t, reason, appErr.Reason)
	return appErr
}

func TestResolveAssignsFirstFreeStaff(t *testing.T) {
	f := newFixture(t)

	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, f.anna.ID, result.StaffID, "ties go to the earliest created member")
}

func TestResolveSkipsBusyStaff(t *testing.T) {
	f := newFixture(t)
	f.addBooking(f.anna.ID, "10:00", 60)

	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:30", Duration: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, f.boris.ID, result.StaffID)
}

func TestResolveBackToBackSlots(t *testing.T) {
	f := newFixture(t)
	f.addBooking(f.anna.ID, "10:00", 30)
	f.addBooking(f.boris.ID, "10:00", 60)

	// Anna's booking ends exactly at 10:30; the intervals are half-open.
	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:30", Duration: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, f.anna.ID, result.StaffID)
}

func TestResolveClosedDay(t *testing.T) {
	f := newFixture(t)
	tuesday := monday.AddDate(0, 0, 1)

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: tuesday, Time: "10:00", Duration: 30,
	})
	requireConflict(t, err, apperrors.ReasonClosedDay)
}

func TestResolveNonWorkingDay(t *testing.T) {
	f := newFixture(t)
	f.schedules.byDay[int(monday.Weekday())].IsWorking = false

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
	})
	requireConflict(t, err, apperrors.ReasonClosedDay)
}

func TestResolveOutsideHours(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		time     string
		duration int
	}{
		{"before opening", "08:30", 30},
		{"ends after close", "19:45", 30},
		{"after close", "20:00", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.resolver.Resolve(context.Background(), nil, Request{
				BusinessID: f.businessID, Date: monday, Time: tt.time, Duration: tt.duration,
			})
			appErr := requireConflict(t, err, apperrors.ReasonOutsideHours)
			require.NotNil(t, appErr.Window)
			assert.Equal(t, "09:00", appErr.Window.Start)
			assert.Equal(t, "20:00", appErr.Window.End)
		})
	}
}

func TestResolveBreakOverlap(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "12:30", Duration: 60,
	})
	appErr := requireConflict(t, err, apperrors.ReasonBreakOverlap)
	require.NotNil(t, appErr.Window)
	assert.Equal(t, "13:00", appErr.Window.Start)
	assert.Equal(t, "lunch", appErr.Window.Label)
}

func TestResolveSlotEndingAtBreakStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "12:00", Duration: 60,
	})
	assert.NoError(t, err)
}

func TestResolveNoStaffConfigured(t *testing.T) {
	f := newFixture(t)
	f.staff.staff = nil

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
	})
	requireConflict(t, err, apperrors.ReasonNoStaffConfigured)
}

func TestResolveClosedDayBeatsNoStaff(t *testing.T) {
	f := newFixture(t)
	f.staff.staff = nil
	f.schedules.byDay[int(monday.Weekday())].IsWorking = false

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
	})
	requireConflict(t, err, apperrors.ReasonClosedDay)
}

func TestResolveAllStaffBusy(t *testing.T) {
	f := newFixture(t)
	f.addBooking(f.anna.ID, "10:00", 60)
	f.addBooking(f.boris.ID, "10:15", 60)

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:30", Duration: 30,
	})
	requireConflict(t, err, apperrors.ReasonStaffUnavailable)
}

func TestResolveCancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	booking := f.addBooking(f.anna.ID, "10:00", 60)
	booking.Status = model.BookingStatusCancelled
	f.addBooking(f.boris.ID, "10:00", 60)

	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, f.anna.ID, result.StaffID)
}

func TestResolvePreferredStaff(t *testing.T) {
	f := newFixture(t)

	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
		PreferredStaffID: &f.boris.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.boris.ID, result.StaffID)
}

func TestResolvePreferredStaffBusy(t *testing.T) {
	f := newFixture(t)
	f.addBooking(f.boris.ID, "10:00", 60)

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
		PreferredStaffID: &f.boris.ID,
	})
	requireConflict(t, err, apperrors.ReasonStaffUnavailable)
}

func TestResolvePreferredStaffUnknown(t *testing.T) {
	f := newFixture(t)
	unknown := uuid.New()

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
		PreferredStaffID: &unknown,
	})
	requireConflict(t, err, apperrors.ReasonNoStaffConfigured)
}

func TestResolveInactiveStaffIgnored(t *testing.T) {
	f := newFixture(t)
	f.anna.IsActive = false

	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, f.boris.ID, result.StaffID)
}

func TestResolveExcludesOwnBooking(t *testing.T) {
	f := newFixture(t)
	booking := f.addBooking(f.anna.ID, "10:00", 60)
	f.addBooking(f.boris.ID, "10:00", 60)

	// Rescheduling within the same hour must not collide with itself.
	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:15", Duration: 30,
		PreferredStaffID: &f.anna.ID,
		ExcludeBookingID: &booking.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.anna.ID, result.StaffID)
}

func TestResolveLegacyJunkTimesIgnored(t *testing.T) {
	f := newFixture(t)
	f.addBooking(f.anna.ID, "off", 60)

	result, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, f.anna.ID, result.StaffID)
}

func TestResolveRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "10:00", Duration: 0,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = f.resolver.Resolve(context.Background(), nil, Request{
		BusinessID: f.businessID, Date: monday, Time: "25:99", Duration: 30,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}
