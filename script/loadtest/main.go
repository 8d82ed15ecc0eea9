package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/time/rate"
)

// Scenario is one request shape with the status the API should answer
type Scenario struct {
	Name           string
	Path           string
	Query          url.Values
	ExpectedStatus int
}

// Result contains metrics for a single request
type Result struct {
	Scenario     string
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Err          error
}

func computeScenario(name, isha, fajr string, status int) Scenario {
	return Scenario{
		Name:           name,
		Path:           "/api/v1/schedule/compute",
		Query:          url.Values{"isha": {isha}, "fajr": {fajr}},
		ExpectedStatus: status,
	}
}

func scheduleScenario(name string, lat, lon float64, date string) Scenario {
	return Scenario{
		Name: name,
		Path: "/api/v1/schedule",
		Query: url.Values{
			"latitude":  {fmt.Sprint(lat)},
			"longitude": {fmt.Sprint(lon)},
			"date":      {date},
		},
		ExpectedStatus: http.StatusOK,
	}
}

// computeScenarios never reach the prayer time service
var computeScenarios = []Scenario{
	computeScenario("winter night", "2025-01-10T19:00:00+03:00", "2025-01-11T05:00:00+03:00", http.StatusOK),
	computeScenario("summer night", "2025-06-21T23:12:00+01:00", "2025-06-22T02:48:00+01:00", http.StatusOK),
	computeScenario("same date fajr", "2025-03-01T18:30:00Z", "2025-03-01T04:30:00Z", http.StatusOK),
	computeScenario("dst change", "2025-03-29T20:00:00Z", "2025-03-30T04:30:00+01:00", http.StatusOK),
	computeScenario("degenerate", "2025-03-01T18:30:00Z", "2025-03-01T18:30:00Z", http.StatusUnprocessableEntity),
}

// scheduleScenarios exercise the full lookup and should run with the cache enabled
var scheduleScenarios = []Scenario{
	scheduleScenario("mecca", 21.4225, 39.8262, "2025-03-01"),
	scheduleScenario("cairo", 30.0444, 31.2357, "2025-03-01"),
	scheduleScenario("london", 51.5074, -0.1278, "2025-06-21"),
	scheduleScenario("jakarta", -6.2088, 106.8456, "2025-12-31"),
}

func main() {
	concurrency := pflag.IntP("concurrency", "c", 5, "number of concurrent workers")
	totalRequests := pflag.IntP("requests", "n", 200, "total number of requests to make")
	baseURL := pflag.String("url", "http://localhost:8080", "base URL of the API")
	mode := pflag.String("mode", "compute", "compute (calculator only) or schedule (full lookup)")
	rps := pflag.Float64("rps", 50, "maximum requests per second across all workers, 0 for unlimited")
	pflag.Parse()

	scenarios := computeScenarios
	if *mode == "schedule" {
		scenarios = scheduleScenarios
	}

	limit := rate.Inf
	if *rps > 0 {
		limit = rate.Limit(*rps)
	}
	limiter := rate.NewLimiter(limit, *concurrency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Load testing %s in %s mode\n", *baseURL, *mode)
	fmt.Printf("Scenarios: %d, concurrency: %d, requests: %d, rate: %.0f/s\n", len(scenarios), *concurrency, *totalRequests, *rps)

	jobs := make(chan Scenario, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- scenarios[rand.Intn(len(scenarios))]
	}
	close(jobs)

	results := make(chan Result, *totalRequests)
	client := &http.Client{Timeout: 10 * time.Second}

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for scenario := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				results <- send(ctx, client, *baseURL, scenario)
			}
		}()
	}
	wg.Wait()
	close(results)

	stats := NewStats()
	for r := range results {
		stats.Add(r)
	}
	stats.Print(os.Stdout, time.Since(start))
}

func send(ctx context.Context, client *http.Client, baseURL string, s Scenario) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+s.Path+"?"+s.Query.Encode(), nil)
	if err != nil {
		return Result{Scenario: s.Name, Err: err}
	}

	started := time.Now()
	resp, err := client.Do(req)
	result := Result{Scenario: s.Name, ResponseTime: time.Since(started)}
	if err != nil {
		result.Err = err
		return result
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode == s.ExpectedStatus
	if !result.Success {
		result.Err = fmt.Errorf("HTTP status %d, expected %d", resp.StatusCode, s.ExpectedStatus)
	}
	return result
}
