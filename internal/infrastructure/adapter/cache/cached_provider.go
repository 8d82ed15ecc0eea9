package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	cacheport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/gateway"
)

// CachedTimingsProvider serves daily timings from a cache and falls back to
// the wrapped provider. The cache is best effort: its errors never fail a lookup.
type CachedTimingsProvider struct {
	provider gateway.TimingsProvider
	cache    cacheport.TimingsCache
	method   int
	ttl      time.Duration
	logger   coreport.Logger
}

var _ gateway.TimingsProvider = (*CachedTimingsProvider)(nil)

// NewCachedTimingsProvider wraps provider; method becomes part of every key
func NewCachedTimingsProvider(
	provider gateway.TimingsProvider,
	cache cacheport.TimingsCache,
	method int,
	ttl time.Duration,
	logger coreport.Logger,
) *CachedTimingsProvider {
	return &CachedTimingsProvider{
		provider: provider,
		cache:    cache,
		method:   method,
		ttl:      ttl,
		logger:   logger,
	}
}

// GetDailyTimings implements gateway.TimingsProvider
func (p *CachedTimingsProvider) GetDailyTimings(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.DailyTimings, error) {
	key := TimingsKey(p.method, coords, date)

	cached, found, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		p.logger.Warn("Timings cache read failed, bypassing cache", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	case found:
		p.logger.Debug("Timings cache hit", map[string]any{"key": key})
		return cached, nil
	}

	timings, err := p.provider.GetDailyTimings(ctx, coords, date)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, timings, p.ttl); err != nil {
		p.logger.Warn("Timings cache write failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}

	return timings, nil
}

// TimingsKey builds the cache key of one day at one place.
// Coordinates are rounded to 4 decimals, about 11 m.
func TimingsKey(method int, coords entity.Coordinates, date time.Time) string {
	return fmt.Sprintf("timings:%d:%.4f:%.4f:%s", method, coords.Latitude, coords.Longitude, date.Format(entity.DateLayout))
}
