package monitoring

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/gateway"
)

// DefaultSlowThreshold is used when no threshold is configured
const DefaultSlowThreshold = time.Second

// CallMetrics holds metrics about one upstream call
type CallMetrics struct {
	Operation string
	Duration  time.Duration
	Failed    bool
}

// MeasuredTimingsProvider times every upstream lookup and warns about slow ones
type MeasuredTimingsProvider struct {
	provider     gateway.TimingsProvider
	threshold    time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ gateway.TimingsProvider = (*MeasuredTimingsProvider)(nil)

// NewMeasuredTimingsProvider wraps provider
func NewMeasuredTimingsProvider(
	provider gateway.TimingsProvider,
	threshold time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *MeasuredTimingsProvider {
	if threshold <= 0 {
		threshold = DefaultSlowThreshold
	}
	return &MeasuredTimingsProvider{
		provider:     provider,
		threshold:    threshold,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetDailyTimings implements gateway.TimingsProvider
func (p *MeasuredTimingsProvider) GetDailyTimings(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.DailyTimings, error) {
	start := p.timeProvider.Now()

	timings, err := p.provider.GetDailyTimings(ctx, coords, date)

	p.observe(CallMetrics{
		Operation: "daily_timings " + date.Format(entity.DateLayout),
		Duration:  p.timeProvider.Since(start),
		Failed:    err != nil,
	})

	return timings, err
}

func (p *MeasuredTimingsProvider) observe(m CallMetrics) {
	if m.Duration <= p.threshold {
		return
	}
	p.logger.Warn("Slow prayer time lookup detected", map[string]any{
		"operation":    m.Operation,
		"duration_ms":  m.Duration.Milliseconds(),
		"threshold_ms": p.threshold.Milliseconds(),
		"failed":       m.Failed,
	})
}
