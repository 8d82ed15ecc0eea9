package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	portusecase "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/usecase"
)

// MockScheduleUseCase is a mock implementation of usecase.ScheduleUseCase
type MockScheduleUseCase struct {
	mock.Mock
}

func (m *MockScheduleUseCase) GetSchedule(ctx context.Context, req portusecase.ScheduleRequest) (*entity.ScheduleReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ScheduleReport), args.Error(1)
}

func (m *MockScheduleUseCase) ComputeSchedule(ctx context.Context, isha, fajr time.Time) (*entity.Schedule, error) {
	args := m.Called(ctx, isha, fajr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Schedule), args.Error(1)
}

// MockLocationResolver is a mock implementation of usecase.LocationResolver
type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) Resolve(ctx context.Context, override *entity.Coordinates, clientIP string) *entity.ResolvedLocation {
	args := m.Called(ctx, override, clientIP)
	return args.Get(0).(*entity.ResolvedLocation)
}

// MockPrayerTimeSource is a mock implementation of usecase.PrayerTimeSource
type MockPrayerTimeSource struct {
	mock.Mock
}

func (m *MockPrayerTimeSource) Fetch(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.NightWindow, error) {
	args := m.Called(ctx, coords, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NightWindow), args.Error(1)
}
