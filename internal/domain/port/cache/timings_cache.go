package cache

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// TimingsCache stores upstream daily timings
type TimingsCache interface {
	// Get returns the cached timings and whether the key was present
	Get(ctx context.Context, key string) (*entity.DailyTimings, bool, error)
	// Set stores timings under key for ttl
	Set(ctx context.Context, key string, timings *entity.DailyTimings, ttl time.Duration) error
}
