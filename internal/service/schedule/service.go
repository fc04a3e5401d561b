package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/timeutil"
)

const (
	cacheDuration   = 5 * time.Minute
	cleanupInterval = 30 * time.Minute
)

// Service reads and writes weekly schedules. Week reads are cached;
// any write for a business drops its cached week.
type Service struct {
	repo  repository.ScheduleRepository
	cache *cache.Cache
}

func NewService(repo repository.ScheduleRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheDuration, cleanupInterval),
	}
}

// GetWeek returns all seven days for a business. Days the vendor never
// configured are filled in with the default open window, so callers
// always see a complete week. The filled-in days are not persisted;
// only an explicit upsert creates a row.
func (s *Service) GetWeek(ctx context.Context, businessID uuid.UUID) ([]*model.Schedule, error) {
	key := weekKey(businessID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Schedule), nil
	}

	rows, err := s.repo.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	byDay := make(map[int]*model.Schedule, len(rows))
	for _, row := range rows {
		byDay[row.DayOfWeek] = row
	}

	week := make([]*model.Schedule, 0, 7)
	for day := 0; day < 7; day++ {
		if row, ok := byDay[day]; ok {
			week = append(week, row)
			continue
		}
		week = append(week, model.DefaultSchedule(businessID, day))
	}

	s.cache.Set(key, week, cache.DefaultExpiration)
	return week, nil
}

// Upsert replaces the schedule for one weekday.
func (s *Service) Upsert(ctx context.Context, businessID uuid.UUID, dayOfWeek int, req *model.UpsertScheduleRequest) (*model.Schedule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, apperrors.Validation("day_of_week must be between 0 and 6", nil)
	}
	if err := validateWindow(req); err != nil {
		return nil, err
	}

	schedule := &model.Schedule{
		BusinessID: businessID,
		DayOfWeek:  dayOfWeek,
		IsWorking:  req.IsWorking,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Breaks:     req.Breaks,
	}
	if err := s.repo.Upsert(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	s.cache.Delete(weekKey(businessID))
	return schedule, nil
}

func validateWindow(req *model.UpsertScheduleRequest) error {
	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return apperrors.Validation("start_time must be HH:MM", nil)
	}
	end, err := timeutil.ParseClock(req.EndTime)
	if err != nil {
		return apperrors.Validation("end_time must be HH:MM", nil)
	}
	if req.IsWorking && start >= end {
		return apperrors.Validation("start_time must be before end_time", nil)
	}
	for _, brk := range req.Breaks {
		bs, err := timeutil.ParseClock(brk.StartTime)
		if err != nil {
			return apperrors.Validation("break start_time must be HH:MM", nil)
		}
		be, err := timeutil.ParseClock(brk.EndTime)
		if err != nil {
			return apperrors.Validation("break end_time must be HH:MM", nil)
		}
		if bs >= be {
			return apperrors.Validation("break start_time must be before its end_time", nil)
		}
		if bs < start || be > end {
			return apperrors.Validation("breaks must fall inside the working window", nil)
		}
	}
	return nil
}

func weekKey(businessID uuid.UUID) string {
	return "week:" + businessID.String()
}
