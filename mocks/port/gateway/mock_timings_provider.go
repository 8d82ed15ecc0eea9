package gateway

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// MockTimingsProvider is a mock implementation of gateway.TimingsProvider
type MockTimingsProvider struct {
	mock.Mock
}

func (m *MockTimingsProvider) GetDailyTimings(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.DailyTimings, error) {
	args := m.Called(ctx, coords, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailyTimings), args.Error(1)
}
