package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	mockcore "github.com/amirhossein-jamali/tahajjud-scheduler/mocks/port/core"
	mockgateway "github.com/amirhossein-jamali/tahajjud-scheduler/mocks/port/gateway"
)

func TestMeasuredTimingsProvider(t *testing.T) {
	ctx := context.Background()
	coords := entity.Coordinates{Latitude: 21.4225, Longitude: 39.8262}
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("fast call is not reported", func(t *testing.T) {
		// Arrange
		provider := new(mockgateway.MockTimingsProvider)
		tp := new(mockcore.MockTimeProvider)
		logger := new(mockcore.MockLogger)
		timings := &entity.DailyTimings{Date: "2025-01-10"}
		provider.On("GetDailyTimings", ctx, coords, date).Return(timings, nil)
		tp.On("Now").Return(start)
		tp.On("Since", start).Return(200 * time.Millisecond)

		sut := NewMeasuredTimingsProvider(provider, time.Second, tp, logger)

		// Act
		got, err := sut.GetDailyTimings(ctx, coords, date)

		// Assert
		assert.NoError(t, err)
		assert.Same(t, timings, got)
		logger.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything)
	})

	t.Run("slow failing call is reported", func(t *testing.T) {
		// Arrange
		provider := new(mockgateway.MockTimingsProvider)
		tp := new(mockcore.MockTimeProvider)
		logger := new(mockcore.MockLogger)
		upstreamErr := errors.New("timeout")
		provider.On("GetDailyTimings", ctx, coords, date).Return(nil, upstreamErr)
		tp.On("Now").Return(start)
		tp.On("Since", start).Return(3 * time.Second)
		logger.On("Warn", "Slow prayer time lookup detected", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["duration_ms"] == int64(3000) && fields["failed"] == true &&
				fields["operation"] == "daily_timings 2025-01-10"
		})).Once()

		sut := NewMeasuredTimingsProvider(provider, 0, tp, logger)

		// Act
		_, err := sut.GetDailyTimings(ctx, coords, date)

		// Assert
		assert.ErrorIs(t, err, upstreamErr)
		logger.AssertExpectations(t)
	})
}
