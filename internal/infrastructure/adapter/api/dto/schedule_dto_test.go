package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
)

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		duration time.Duration
		expected string
	}{
		{10 * time.Hour, "10h 0m"},
		{time.Hour + 40*time.Minute, "1h 40m"},
		{3*time.Hour + 19*time.Minute + 59*time.Second, "3h 19m"},
		{45 * time.Second, "0h 0m"},
		{0, "0h 0m"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatDuration(tc.duration))
	}
}

func TestNewScheduleReportResponse(t *testing.T) {
	isha := time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)
	schedule, err := entity.ComputeSchedule(isha, time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	report := &entity.ScheduleReport{
		Location: entity.ResolvedLocation{
			Location: entity.Location{
				Coordinates: entity.Coordinates{Latitude: 21.4225, Longitude: 39.8262},
				City:        "Mecca",
				Country:     "Saudi Arabia",
			},
			Via: entity.ResolvedDefault,
		},
		Date:     "2025-01-10",
		Timezone: "UTC",
		Schedule: schedule,
	}

	resp := NewScheduleReportResponse(report)

	assert.Equal(t, "default", resp.Location.ResolvedVia)
	assert.True(t, resp.Location.Approximate)
	assert.Equal(t, "Mecca", resp.Location.City)
	assert.Equal(t, "2025-01-10", resp.Date)
	assert.Equal(t, "10h 0m", resp.Schedule.NightDuration)
	assert.Equal(t, int64(36000), resp.Schedule.NightDurationSeconds)
	assert.Equal(t, "2025-01-10T05:00:00Z", resp.Schedule.Fajr)
	assert.Equal(t, "2025-01-11T00:00:00Z", resp.Schedule.TahajjudStart)
	assert.Equal(t, "2025-01-11T01:40:00Z", resp.Schedule.SecondSleepStart)
	assert.Equal(t, "2025-01-11T05:00:00Z", resp.Schedule.FajrTime)

	require.Len(t, resp.Schedule.Periods, 3)
	assert.Equal(t, "first_sleep", resp.Schedule.Periods[0].Name)
	assert.Equal(t, "5h 0m", resp.Schedule.Periods[0].Duration)
	assert.Equal(t, "1h 40m", resp.Schedule.Periods[1].Duration)
	assert.Equal(t, "3h 20m", resp.Schedule.Periods[2].Duration)
	assert.Equal(t, int64(12000), resp.Schedule.Periods[2].DurationSeconds)
}

func TestNewErrorResponse(t *testing.T) {
	isha := time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid coordinates", domainerr.ErrInvalidCoordinates, 4001},
		{"invalid date", domainerr.ErrInvalidDate, 4002},
		{"malformed request", domainerr.ErrInvalidRequest, 4003},
		{"unusable night", domainerr.NewInvalidWindowError(isha, isha, 0, "isha and fajr coincide"), 4220},
		{"source unavailable", domainerr.NewSourceUnavailableError(0, 0, "2025-01-10", "fetching isha", nil), 5020},
		{"anything else", assert.AnError, 5000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			response := NewErrorResponse(tc.err, "message", "req-1")

			assert.Equal(t, tc.code, response.Code)
			assert.Equal(t, "message", response.Message)
			assert.Equal(t, "req-1", response.RequestID)
		})
	}
}
