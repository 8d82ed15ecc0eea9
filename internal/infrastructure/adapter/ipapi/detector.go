package ipapi

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/gateway"
)

const (
	// DefaultBaseURL is the free ip-api endpoint, which is HTTP only
	DefaultBaseURL = "http://ip-api.com"

	// DefaultRequestsPerMinute is the free tier limit
	DefaultRequestsPerMinute = 45

	fields = "status,message,country,city,lat,lon,timezone"
)

// Config configures the detector
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

type response struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Country  string  `json:"country"`
	City     string  `json:"city"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}

// Detector implements gateway.LocationDetector using the caller's public IP
type Detector struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     coreport.Logger
}

var _ gateway.LocationDetector = (*Detector)(nil)

// NewDetector creates a new ip-api detector
func NewDetector(cfg Config, logger coreport.Logger) *Detector {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = DefaultRequestsPerMinute
	}

	return &Detector{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		logger:     logger,
	}
}

// Detect looks up the location of ip. An empty, loopback or private ip is
// resolved as the machine's own public address, since ip-api cannot place it.
// Every failure wraps ErrLocationUnavailable.
func (d *Detector) Detect(ctx context.Context, ip string) (*entity.Location, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limited: %w", errs.ErrLocationUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.lookupURL(ip), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrLocationUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", errs.ErrLocationUnavailable, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", errs.ErrLocationUnavailable, err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("%w: lookup %s: %s", errs.ErrLocationUnavailable, body.Status, body.Message)
	}

	d.logger.Debug("IP geolocated", map[string]any{
		"ip":       ip,
		"city":     body.City,
		"country":  body.Country,
		"timezone": body.Timezone,
	})

	return &entity.Location{
		Coordinates: entity.Coordinates{Latitude: body.Lat, Longitude: body.Lon},
		City:        body.City,
		Country:     body.Country,
		Timezone:    body.Timezone,
	}, nil
}

func (d *Detector) lookupURL(ip string) string {
	path := "/json/"
	if addr, err := netip.ParseAddr(ip); err == nil && isPublic(addr) {
		path += url.PathEscape(addr.String())
	}
	return d.baseURL + path + "?fields=" + fields
}

func isPublic(addr netip.Addr) bool {
	return !addr.IsLoopback() &&
		!addr.IsPrivate() &&
		!addr.IsLinkLocalUnicast() &&
		!addr.IsUnspecified()
}
