package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// MockTimingsCache is a mock implementation of cache.TimingsCache
type MockTimingsCache struct {
	mock.Mock
}

func (m *MockTimingsCache) Get(ctx context.Context, key string) (*entity.DailyTimings, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.DailyTimings), args.Bool(1), args.Error(2)
}

func (m *MockTimingsCache) Set(ctx context.Context, key string, timings *entity.DailyTimings, ttl time.Duration) error {
	args := m.Called(ctx, key, timings, ttl)
	return args.Error(0)
}
