package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	"github.com/amirhossein-jamali/tahajjud-scheduler/mocks/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/mocks/port/gateway"
)

var fallback = entity.Location{
	Coordinates: entity.Coordinates{Latitude: 21.4225, Longitude: 39.8262},
	City:        "Mecca",
	Country:     "Saudi Arabia",
	Timezone:    "Asia/Riyadh",
}

func TestResolver_Resolve(t *testing.T) {
	timeout := 3 * time.Second

	t.Run("should use explicit coordinates unchanged", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		mockDetector := new(gateway.MockLocationDetector)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		resolver := NewResolver(mockDetector, fallback, timeout, mockTimeProvider, mockLogger)
		override := &entity.Coordinates{Latitude: 51.5072, Longitude: -0.1276}

		// Act
		resolved := resolver.Resolve(ctx, override, "41.33.12.7")

		// Assert
		require.NotNil(t, resolved)
		assert.Equal(t, entity.ResolvedExplicit, resolved.Via)
		assert.Equal(t, *override, resolved.Coordinates)
		mockDetector.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
	})

	t.Run("should detect the location of the client ip", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		clientIP := "41.33.12.7"
		mockDetector := new(gateway.MockLocationDetector)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		detected := &entity.Location{
			Coordinates: entity.Coordinates{Latitude: 30.0444, Longitude: 31.2357},
			City:        "Cairo",
			Country:     "Egypt",
			Timezone:    "Africa/Cairo",
		}

		mockTimeProvider.On("WithTimeout", ctx, timeout).Return()
		mockDetector.On("Detect", mock.Anything, clientIP).Return(detected, nil)
		mockLogger.On("Debug", "Location detected", mock.Anything).Return()

		resolver := NewResolver(mockDetector, fallback, timeout, mockTimeProvider, mockLogger)

		// Act
		resolved := resolver.Resolve(ctx, nil, clientIP)

		// Assert
		assert.Equal(t, entity.ResolvedDetected, resolved.Via)
		assert.Equal(t, "Cairo", resolved.City)
		assert.Equal(t, "Egypt", resolved.Country)
		assert.False(t, resolved.IsApproximate())

		mockDetector.AssertExpectations(t)
		mockTimeProvider.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should fall back to default when detection fails", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		mockDetector := new(gateway.MockLocationDetector)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("WithTimeout", ctx, timeout).Return()
		mockDetector.On("Detect", mock.Anything, "").
			Return(nil, errors.New("dial tcp: connection refused"))
		mockLogger.On("Warn", "Location detection failed, using default coordinates", mock.Anything).Return()

		resolver := NewResolver(mockDetector, fallback, timeout, mockTimeProvider, mockLogger)

		// Act
		resolved := resolver.Resolve(ctx, nil, "")

		// Assert
		assert.Equal(t, entity.ResolvedDefault, resolved.Via)
		assert.Equal(t, fallback, resolved.Location)
		assert.True(t, resolved.IsApproximate())

		mockDetector.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should fall back when detected coordinates are malformed", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		mockDetector := new(gateway.MockLocationDetector)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("WithTimeout", ctx, timeout).Return()
		mockDetector.On("Detect", mock.Anything, "").Return(&entity.Location{
			Coordinates: entity.Coordinates{Latitude: 123, Longitude: 456},
		}, nil)
		mockLogger.On("Warn", "Location detection failed, using default coordinates", mock.Anything).Return()

		resolver := NewResolver(mockDetector, fallback, timeout, mockTimeProvider, mockLogger)

		// Act
		resolved := resolver.Resolve(ctx, nil, "")

		// Assert
		assert.Equal(t, entity.ResolvedDefault, resolved.Via)
		assert.Equal(t, fallback.Coordinates, resolved.Coordinates)
	})

	t.Run("should fall back when detection times out", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		shortTimeout := 20 * time.Millisecond
		mockDetector := new(gateway.MockLocationDetector)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("WithTimeout", ctx, shortTimeout).Return()
		mockDetector.On("Detect", mock.Anything, "").
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.DeadlineExceeded)
		mockLogger.On("Warn", "Location detection failed, using default coordinates", mock.Anything).Return()

		resolver := NewResolver(mockDetector, fallback, shortTimeout, mockTimeProvider, mockLogger)

		// Act
		resolved := resolver.Resolve(ctx, nil, "")

		// Assert
		assert.Equal(t, entity.ResolvedDefault, resolved.Via)
		mockDetector.AssertExpectations(t)
	})

	t.Run("should fall back when no detector is configured", func(t *testing.T) {
		// Arrange
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockLogger.On("Warn", "Location detection failed, using default coordinates", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["error"] == errs.ErrLocationUnavailable.Error()
		})).Return()

		resolver := NewResolver(nil, fallback, timeout, mockTimeProvider, mockLogger)

		// Act
		resolved := resolver.Resolve(context.Background(), nil, "")

		// Assert
		assert.Equal(t, entity.ResolvedDefault, resolved.Via)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should honour an overridden default", func(t *testing.T) {
		// Arrange
		custom := entity.Location{Coordinates: entity.Coordinates{Latitude: -6.2088, Longitude: 106.8456}, City: "Jakarta"}
		mockLogger := new(core.MockLogger).AllowAll()

		resolver := NewResolver(nil, custom, 0, new(core.MockTimeProvider), mockLogger)

		// Act
		resolved := resolver.Resolve(context.Background(), nil, "")

		// Assert
		assert.Equal(t, custom, resolved.Location)
		assert.Equal(t, entity.ResolvedDefault, resolved.Via)
	})
}
