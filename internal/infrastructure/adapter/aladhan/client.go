package aladhan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/httpclient"
)

const (
	// DefaultBaseURL is the public Aladhan API
	DefaultBaseURL = "https://api.aladhan.com"

	// DefaultMethod is the Egyptian General Authority of Survey calculation method
	DefaultMethod = 5

	requestDateLayout = "02-01-2006"
)

// Config configures the Aladhan client
type Config struct {
	BaseURL string
	Method  int
	Timeout time.Duration
	Retry   httpclient.RetryConfig
}

// Client implements gateway.TimingsProvider against the Aladhan timings API
type Client struct {
	baseURL    string
	method     int
	httpClient *http.Client
	retry      httpclient.RetryConfig
	logger     coreport.Logger
}

var _ gateway.TimingsProvider = (*Client)(nil)

// NewClient creates a new Aladhan client
func NewClient(cfg Config, logger coreport.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	method := cfg.Method
	if method <= 0 {
		method = DefaultMethod
	}

	return &Client{
		baseURL:    baseURL,
		method:     method,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retry:      cfg.Retry,
		logger:     logger,
	}
}

// Method returns the calculation method sent with every request
func (c *Client) Method() int {
	return c.method
}

// GetDailyTimings fetches the timings of date's calendar day at coords
func (c *Client) GetDailyTimings(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.DailyTimings, error) {
	endpoint := c.timingsURL(coords, date)

	var body timingsResponse
	err := httpclient.RetryOnTransientError(ctx, c.retry, func(ctx context.Context) error {
		return c.get(ctx, endpoint, &body)
	}, c.logger)
	if err != nil {
		return nil, err
	}

	timings, err := toDailyTimings(&body, date)
	if err != nil {
		return nil, fmt.Errorf("aladhan: %w", err)
	}

	c.logger.Debug("Prayer timings fetched", map[string]any{
		"date":     timings.Date,
		"timezone": timings.Timezone,
		"fajr":     body.Data.Timings.Fajr,
		"isha":     body.Data.Timings.Isha,
	})

	return timings, nil
}

func (c *Client) timingsURL(coords entity.Coordinates, date time.Time) string {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	query.Set("method", strconv.Itoa(c.method))

	return fmt.Sprintf("%s/v1/timings/%s?%s", c.baseURL, date.Format(requestDateLayout), query.Encode())
}

func (c *Client) get(ctx context.Context, endpoint string, out *timingsResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("aladhan: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("aladhan: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &httpclient.StatusError{StatusCode: resp.StatusCode, URL: c.baseURL}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("aladhan: decode response: %w", err)
	}
	if out.Code != http.StatusOK {
		return fmt.Errorf("aladhan: api returned code %d (%s)", out.Code, out.Status)
	}

	return nil
}

// toDailyTimings anchors the HH:MM strings on date in the response timezone
func toDailyTimings(body *timingsResponse, date time.Time) (*entity.DailyTimings, error) {
	loc := time.UTC
	if tz := body.Data.Meta.Timezone; tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
		}
	}

	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	fajr, err := parseClock(day, body.Data.Timings.Fajr)
	if err != nil {
		return nil, fmt.Errorf("fajr: %w", err)
	}
	isha, err := parseClock(day, body.Data.Timings.Isha)
	if err != nil {
		return nil, fmt.Errorf("isha: %w", err)
	}

	// Sunrise and Maghrib are informational only
	sunrise, _ := parseClock(day, body.Data.Timings.Sunrise)
	maghrib, _ := parseClock(day, body.Data.Timings.Maghrib)

	return &entity.DailyTimings{
		Date:     day.Format(entity.DateLayout),
		Timezone: loc.String(),
		Fajr:     fajr,
		Sunrise:  sunrise,
		Maghrib:  maghrib,
		Isha:     isha,
	}, nil
}

// parseClock reads "HH:MM" or "HH:MM (TZ)" as a wall clock time on day
func parseClock(day time.Time, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if i := strings.IndexByte(value, ' '); i >= 0 {
		value = value[:i]
	}

	clock, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", value, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}
