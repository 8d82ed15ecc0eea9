package prayertime

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/usecase"
)

// Source implements usecase.PrayerTimeSource: Isha comes from the requested
// day and Fajr from the day after
type Source struct {
	provider     gateway.TimingsProvider
	timeout      time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSource creates a night window source. timeout bounds both upstream lookups together.
func NewSource(
	provider gateway.TimingsProvider,
	timeout time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.PrayerTimeSource {
	return &Source{
		provider:     provider,
		timeout:      timeout,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Fetch returns the night window opening on date at coords
func (s *Source) Fetch(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.NightWindow, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = s.timeProvider.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	day := date.Format(entity.DateLayout)

	evening, err := s.provider.GetDailyTimings(ctx, coords, date)
	if err != nil {
		return nil, s.unavailable(coords, day, "fetching isha", err)
	}

	dawn, err := s.provider.GetDailyTimings(ctx, coords, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, s.unavailable(coords, day, "fetching next day fajr", err)
	}

	if evening.Isha.IsZero() || dawn.Fajr.IsZero() {
		return nil, s.unavailable(coords, day, "response is missing isha or fajr", nil)
	}

	window := entity.NewNightWindow(evening, dawn)

	s.logger.Debug("Night window fetched", map[string]any{
		"date": day,
		"isha": window.Isha.Format(time.RFC3339),
		"fajr": window.Fajr.Format(time.RFC3339),
	})

	return &window, nil
}

func (s *Source) unavailable(coords entity.Coordinates, day, reason string, err error) error {
	var sourceErr *errs.SourceUnavailableError
	if errors.As(err, &sourceErr) {
		return err
	}
	return errs.NewSourceUnavailableError(coords.Latitude, coords.Longitude, day, reason, err)
}
