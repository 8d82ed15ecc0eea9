package location

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/usecase"
)

// Resolver implements usecase.LocationResolver on top of a LocationDetector
type Resolver struct {
	detector     gateway.LocationDetector
	fallback     entity.Location
	timeout      time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewResolver creates a resolver. fallback is returned whenever detection fails;
// a nil detector always falls back.
func NewResolver(
	detector gateway.LocationDetector,
	fallback entity.Location,
	timeout time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.LocationResolver {
	return &Resolver{
		detector:     detector,
		fallback:     fallback,
		timeout:      timeout,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Resolve never fails: explicit coordinates win, then detection of clientIP, then the fallback
func (r *Resolver) Resolve(ctx context.Context, override *entity.Coordinates, clientIP string) *entity.ResolvedLocation {
	if override != nil {
		return &entity.ResolvedLocation{
			Location: entity.Location{Coordinates: *override},
			Via:      entity.ResolvedExplicit,
		}
	}

	detected, err := r.detect(ctx, clientIP)
	if err == nil {
		r.logger.Debug("Location detected", map[string]any{
			"city":      detected.City,
			"country":   detected.Country,
			"latitude":  detected.Latitude,
			"longitude": detected.Longitude,
		})
		return &entity.ResolvedLocation{Location: *detected, Via: entity.ResolvedDetected}
	}

	r.logger.Warn("Location detection failed, using default coordinates", map[string]any{
		"error":     err.Error(),
		"client_ip": clientIP,
		"latitude":  r.fallback.Latitude,
		"longitude": r.fallback.Longitude,
	})

	return &entity.ResolvedLocation{Location: r.fallback, Via: entity.ResolvedDefault}
}

func (r *Resolver) detect(ctx context.Context, clientIP string) (*entity.Location, error) {
	if r.detector == nil {
		return nil, errs.ErrLocationUnavailable
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = r.timeProvider.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	detected, err := r.detector.Detect(ctx, clientIP)
	if err != nil {
		return nil, err
	}
	if detected == nil {
		return nil, errs.ErrLocationUnavailable
	}
	if err := detected.Validate(); err != nil {
		return nil, err
	}

	return detected, nil
}
