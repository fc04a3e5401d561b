package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/model"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type fakeScheduleRepo struct {
	byDay    map[int]*model.Schedule
	listHits int
}

func (f *fakeScheduleRepo) GetForDay(_ context.Context, _ uuid.UUID, dayOfWeek int) (*model.Schedule, error) {
	return f.byDay[dayOfWeek], nil
}

func (f *fakeScheduleRepo) ListForBusiness(_ context.Context, _ uuid.UUID) ([]*model.Schedule, error) {
	f.listHits++
	var all []*model.Schedule
	for _, s := range f.byDay {
		all = append(all, s)
	}
	return all, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, schedule *model.Schedule) error {
	if f.byDay == nil {
		f.byDay = make(map[int]*model.Schedule)
	}
	f.byDay[schedule.DayOfWeek] = schedule
	return nil
}

func TestGetWeekFillsMissingDays(t *testing.T) {
	businessID := uuid.New()
	repo := &fakeScheduleRepo{byDay: map[int]*model.Schedule{
		1: {BusinessID: businessID, DayOfWeek: 1, IsWorking: true, StartTime: "10:00", EndTime: "18:00"},
		3: {BusinessID: businessID, DayOfWeek: 3, IsWorking: false, StartTime: "09:00", EndTime: "20:00"},
	}}
	service := NewService(repo)

	week, err := service.GetWeek(context.Background(), businessID)
	require.NoError(t, err)
	require.Len(t, week, 7)

	for day, schedule := range week {
		assert.Equal(t, day, schedule.DayOfWeek)
	}

	assert.Equal(t, "10:00", week[1].StartTime, "configured day keeps its own window")
	assert.False(t, week[3].IsWorking, "an explicit closed day stays closed")

	// Never-configured days get the default open window.
	assert.True(t, week[0].IsWorking)
	assert.Equal(t, model.DefaultScheduleStart, week[0].StartTime)
	assert.Equal(t, model.DefaultScheduleEnd, week[0].EndTime)
}

func TestGetWeekCachesResult(t *testing.T) {
	businessID := uuid.New()
	repo := &fakeScheduleRepo{}
	service := NewService(repo)

	_, err := service.GetWeek(context.Background(), businessID)
	require.NoError(t, err)
	_, err = service.GetWeek(context.Background(), businessID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listHits)
}

func TestUpsertInvalidatesCache(t *testing.T) {
	businessID := uuid.New()
	repo := &fakeScheduleRepo{}
	service := NewService(repo)

	week, err := service.GetWeek(context.Background(), businessID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScheduleStart, week[2].StartTime)

	_, err = service.Upsert(context.Background(), businessID, 2, &model.UpsertScheduleRequest{
		IsWorking: true,
		StartTime: "11:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	week, err = service.GetWeek(context.Background(), businessID)
	require.NoError(t, err)
	assert.Equal(t, "11:00", week[2].StartTime)
	assert.Equal(t, 2, repo.listHits)
}

func TestUpsertValidation(t *testing.T) {
	service := NewService(&fakeScheduleRepo{})
	businessID := uuid.New()

	tests := []struct {
		name string
		day  int
		req  *model.UpsertScheduleRequest
	}{
		{"day too large", 7, &model.UpsertScheduleRequest{IsWorking: true, StartTime: "09:00", EndTime: "17:00"}},
		{"day negative", -1, &model.UpsertScheduleRequest{IsWorking: true, StartTime: "09:00", EndTime: "17:00"}},
		{"bad start", 1, &model.UpsertScheduleRequest{IsWorking: true, StartTime: "9am", EndTime: "17:00"}},
		{"bad end", 1, &model.UpsertScheduleRequest{IsWorking: true, StartTime: "09:00", EndTime: "25:61"}},
		{"inverted window", 1, &model.UpsertScheduleRequest{IsWorking: true, StartTime: "17:00", EndTime: "09:00"}},
		{"inverted break", 1, &model.UpsertScheduleRequest{
			IsWorking: true, StartTime: "09:00", EndTime: "17:00",
			Breaks: []model.Break{{StartTime: "14:00", EndTime: "13:00"}},
		}},
		{"break outside window", 1, &model.UpsertScheduleRequest{
			IsWorking: true, StartTime: "09:00", EndTime: "17:00",
			Breaks: []model.Break{{StartTime: "08:00", EndTime: "09:30"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Upsert(context.Background(), businessID, tt.day, tt.req)
			assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestUpsertClosedDayAllowsInvertedWindow(t *testing.T) {
	service := NewService(&fakeScheduleRepo{})

	// A non-working day only needs parseable times.
	schedule, err := service.Upsert(context.Background(), uuid.New(), 0, &model.UpsertScheduleRequest{
		IsWorking: false,
		StartTime: "00:00",
		EndTime:   "00:00",
	})
	require.NoError(t, err)
	assert.False(t, schedule.IsWorking)
}
