package gateway

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// MockLocationDetector is a mock implementation of gateway.LocationDetector
type MockLocationDetector struct {
	mock.Mock
}

func (m *MockLocationDetector) Detect(ctx context.Context, ip string) (*entity.Location, error) {
	args := m.Called(ctx, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Location), args.Error(1)
}
