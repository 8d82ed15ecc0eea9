package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerr "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
)

func TestParseFlags(t *testing.T) {
	t.Run("no arguments resolves everything automatically", func(t *testing.T) {
		opts, err := parseFlags(nil, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Nil(t, opts.request.Latitude)
		assert.Nil(t, opts.request.Longitude)
		assert.Nil(t, opts.request.Date)
		assert.Equal(t, "text", opts.format)
		assert.False(t, opts.quiet)
	})

	t.Run("explicit coordinates and date", func(t *testing.T) {
		opts, err := parseFlags([]string{"--lat", "30.0444", "--lon=31.2357", "--date", "2025-03-29", "-f", "json", "-q"}, &bytes.Buffer{})

		require.NoError(t, err)
		require.NotNil(t, opts.request.Latitude)
		assert.Equal(t, 30.0444, *opts.request.Latitude)
		assert.Equal(t, 31.2357, *opts.request.Longitude)
		assert.Equal(t, time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC), *opts.request.Date)
		assert.Equal(t, "json", opts.format)
		assert.True(t, opts.quiet)
	})

	t.Run("zero coordinates are explicit", func(t *testing.T) {
		opts, err := parseFlags([]string{"--lat=0", "--lon=0"}, &bytes.Buffer{})

		require.NoError(t, err)
		require.NotNil(t, opts.request.Latitude)
		assert.Zero(t, *opts.request.Latitude)
	})

	testCases := []struct {
		name string
		args []string
		is   error
	}{
		{"latitude only", []string{"--lat", "10"}, nil},
		{"latitude out of range", []string{"--lat", "91", "--lon", "0"}, domainerr.ErrInvalidCoordinates},
		{"bad date", []string{"--date", "29/03/2025"}, domainerr.ErrInvalidDate},
		{"positional argument", []string{"mecca"}, nil},
		{"unknown flag", []string{"--city", "Cairo"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFlags(tc.args, &bytes.Buffer{})

			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitUsage, run([]string{"--format", "yaml"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unsupported format yaml")
	assert.Empty(t, stdout.String())

	stderr.Reset()
	assert.Equal(t, exitOK, run([]string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: tahajjud")
}

func TestDescribe(t *testing.T) {
	source := domainerr.NewSourceUnavailableError(1, 2, "2025-01-01", "fetching isha", errors.New("timeout"))
	window := domainerr.NewInvalidWindowError(time.Time{}, time.Time{}, 0, "isha and fajr coincide")

	assert.Contains(t, describe(source), "prayer times could not be fetched")
	assert.Contains(t, describe(window), "do not form a usable night")
	assert.Equal(t, "boom", describe(errors.New("boom")))
}
