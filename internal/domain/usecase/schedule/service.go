package schedule

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/usecase"
)

// Service orchestrates location resolution, the prayer time lookup and the
// night partition. Each call is independent; the service holds no mutable state.
type Service struct {
	resolver     usecase.LocationResolver
	source       usecase.PrayerTimeSource
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new schedule use case instance
func NewService(
	resolver usecase.LocationResolver,
	source usecase.PrayerTimeSource,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.ScheduleUseCase {
	return &Service{
		resolver:     resolver,
		source:       source,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetSchedule computes the schedule of the night opening on req.Date.
// No partial report is returned: any failure after location resolution aborts the request.
func (s *Service) GetSchedule(ctx context.Context, req usecase.ScheduleRequest) (*entity.ScheduleReport, error) {
	start := s.timeProvider.Now()

	override, err := overrideFrom(req)
	if err != nil {
		return nil, err
	}

	location := s.resolver.Resolve(ctx, override, req.ClientIP)
	date := s.dateFor(req, location)

	window, err := s.fetch(ctx, location, date)
	if err != nil {
		return nil, err
	}

	// Explicit coordinates carry no timezone, so "today" came from the process
	// clock. Re-anchor it on the timezone the prayer time source reported.
	if req.Date == nil && location.Timezone == "" {
		local := midnight(s.timeProvider.Now().In(window.Isha.Location()))
		if local.Format(entity.DateLayout) != date.Format(entity.DateLayout) {
			s.logger.Debug("Re-anchoring today on the location's timezone", map[string]any{
				"process_date": date.Format(entity.DateLayout),
				"local_date":   local.Format(entity.DateLayout),
				"timezone":     local.Location().String(),
			})
			date = local
			if window, err = s.fetch(ctx, location, date); err != nil {
				return nil, err
			}
		}
	}
	day := date.Format(entity.DateLayout)

	schedule, err := entity.ComputeSchedule(window.Isha, window.Fajr)
	if err != nil {
		fields := errs.LogFields(err)
		fields["date"] = day
		s.logger.Error("Prayer time source returned an unusable night", fields)
		return nil, err
	}

	report := &entity.ScheduleReport{
		Location: *location,
		Date:     day,
		Timezone: window.Isha.Location().String(),
		Schedule: schedule,
	}

	s.logger.Info("Schedule computed", map[string]any{
		"date":           day,
		"latitude":       location.Latitude,
		"longitude":      location.Longitude,
		"resolved_via":   string(location.Via),
		"night_duration": schedule.Duration.String(),
		"tahajjud_start": schedule.TahajjudStart.Format(time.RFC3339),
		"latency_ms":     s.timeProvider.Since(start).Milliseconds(),
	})

	return report, nil
}

// ComputeSchedule partitions a night window supplied by the caller
func (s *Service) ComputeSchedule(ctx context.Context, isha, fajr time.Time) (*entity.Schedule, error) {
	schedule, err := entity.ComputeSchedule(isha, fajr)
	if err != nil {
		s.logger.Warn("Rejected night window", errs.LogFields(err))
		return nil, err
	}
	return schedule, nil
}

func (s *Service) fetch(ctx context.Context, location *entity.ResolvedLocation, date time.Time) (*entity.NightWindow, error) {
	window, err := s.source.Fetch(ctx, location.Coordinates, date)
	if err != nil {
		fields := errs.LogFields(err)
		fields["date"] = date.Format(entity.DateLayout)
		fields["resolved_via"] = string(location.Via)
		s.logger.Error("Failed to fetch prayer times", fields)
		return nil, err
	}
	return window, nil
}

// overrideFrom returns explicit coordinates only when both values are present
func overrideFrom(req usecase.ScheduleRequest) (*entity.Coordinates, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, nil
	}

	coords, err := entity.NewCoordinates(*req.Latitude, *req.Longitude)
	if err != nil {
		return nil, err
	}
	return &coords, nil
}

// dateFor picks the requested day, or today in the location's timezone when it is known
func (s *Service) dateFor(req usecase.ScheduleRequest, location *entity.ResolvedLocation) time.Time {
	if req.Date != nil {
		return midnight(*req.Date)
	}

	now := s.timeProvider.Now()
	if location.Timezone != "" {
		if loc, err := time.LoadLocation(location.Timezone); err == nil {
			now = now.In(loc)
		}
	}

	return midnight(now)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
