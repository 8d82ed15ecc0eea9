package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	stats := NewStats()
	for i := 1; i <= 10; i++ {
		stats.Add(Result{Scenario: "winter night", Success: true, ResponseTime: time.Duration(i) * time.Millisecond})
	}
	stats.Add(Result{Scenario: "degenerate", ResponseTime: 20 * time.Millisecond, Err: errors.New("HTTP status 500, expected 422")})

	assert.Equal(t, 11, stats.Total())
	assert.Equal(t, 10, stats.Successful)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 6*time.Millisecond, stats.Percentile(50))
	assert.Equal(t, 20*time.Millisecond, stats.Percentile(100))

	var out bytes.Buffer
	stats.Print(&out, time.Second)
	assert.Contains(t, out.String(), "Total Requests:      11")
	assert.Contains(t, out.String(), "HTTP status 500, expected 422")
}

func TestSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("isha") == r.URL.Query().Get("fajr") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	for _, s := range computeScenarios {
		r := send(context.Background(), server.Client(), server.URL, s)
		assert.True(t, r.Success, s.Name)
	}

	wrong := computeScenarios[0]
	wrong.ExpectedStatus = http.StatusTeapot
	r := send(context.Background(), server.Client(), server.URL, wrong)
	assert.False(t, r.Success)
	assert.EqualError(t, r.Err, "HTTP status 200, expected 418")
}
