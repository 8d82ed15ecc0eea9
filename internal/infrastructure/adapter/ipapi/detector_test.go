package ipapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/logger"
)

const cairoBody = `{"status":"success","country":"Egypt","city":"Cairo","lat":30.0444,"lon":31.2357,"timezone":"Africa/Cairo"}`

func newTestDetector(t *testing.T, status int, body string) *Detector {
	t.Helper()
	return newTestDetectorForPath(t, "/json/", status, body)
}

func newTestDetectorForPath(t *testing.T, path string, status int, body string) *Detector {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, fields, r.URL.Query().Get("fields"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewDetector(Config{BaseURL: server.URL, Timeout: time.Second, RequestsPerMinute: 6000}, logger.NewNoopLogger())
}

func TestDetector_Detect(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Arrange
		detector := newTestDetector(t, http.StatusOK, cairoBody)

		// Act
		location, err := detector.Detect(context.Background(), "")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 30.0444, location.Latitude)
		assert.Equal(t, 31.2357, location.Longitude)
		assert.Equal(t, "Cairo", location.City)
		assert.Equal(t, "Egypt", location.Country)
		assert.Equal(t, "Africa/Cairo", location.Timezone)
	})

	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"lookup failure", http.StatusOK, `{"status":"fail","message":"private range"}`},
		{"server error", http.StatusInternalServerError, ``},
		{"malformed body", http.StatusOK, `{"status":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			detector := newTestDetector(t, tc.status, tc.body)

			location, err := detector.Detect(context.Background(), "")

			assert.Nil(t, location)
			assert.ErrorIs(t, err, errs.ErrLocationUnavailable)
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		detector := newTestDetector(t, http.StatusOK, `{"status":"success"}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := detector.Detect(ctx, "")

		assert.ErrorIs(t, err, errs.ErrLocationUnavailable)
	})
}

func TestDetector_Detect_ClientIP(t *testing.T) {
	testCases := []struct {
		name string
		ip   string
		path string
	}{
		{"public ipv4 is looked up", "41.33.12.7", "/json/41.33.12.7"},
		{"public ipv6 is looked up", "2c0f:fc88::1", "/json/2c0f:fc88::1"},
		{"loopback uses own address", "127.0.0.1", "/json/"},
		{"private range uses own address", "192.168.1.20", "/json/"},
		{"unparseable uses own address", "not-an-ip", "/json/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			detector := newTestDetectorForPath(t, tc.path, http.StatusOK, cairoBody)

			// Act
			location, err := detector.Detect(context.Background(), tc.ip)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "Cairo", location.City)
		})
	}
}

func TestNewDetector_Defaults(t *testing.T) {
	detector := NewDetector(Config{}, logger.NewNoopLogger())

	assert.Equal(t, DefaultBaseURL, detector.baseURL)
	assert.InDelta(t, float64(DefaultRequestsPerMinute)/60, float64(detector.limiter.Limit()), 0.001)
}
