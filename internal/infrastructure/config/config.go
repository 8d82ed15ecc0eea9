package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Location    LocationConfig    `mapstructure:"location"`
	PrayerTimes PrayerTimesConfig `mapstructure:"prayerTimes"`
	Cache       CacheConfig       `mapstructure:"cache"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`

	// TrustedProxies may set X-Forwarded-For; empty means the peer address is the client
	TrustedProxies []string `mapstructure:"trustedProxies"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json or console
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// LocationConfig contains IP geolocation settings and the fallback location
type LocationConfig struct {
	BaseURL           string                `mapstructure:"baseURL"`
	Timeout           time.Duration         `mapstructure:"timeout"`
	RequestsPerMinute int                   `mapstructure:"requestsPerMinute"`
	Default           DefaultLocationConfig `mapstructure:"default"`
}

// DefaultLocationConfig is used whenever detection fails
type DefaultLocationConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	City      string  `mapstructure:"city"`
	Country   string  `mapstructure:"country"`
	Timezone  string  `mapstructure:"timezone"`
}

// PrayerTimesConfig contains prayer time service settings
type PrayerTimesConfig struct {
	BaseURL          string        `mapstructure:"baseURL"`
	Method           int           `mapstructure:"method"`
	Timeout          time.Duration `mapstructure:"timeout"`      // per HTTP call
	FetchTimeout     time.Duration `mapstructure:"fetchTimeout"` // whole night window lookup
	RetryAttempts    int           `mapstructure:"retryAttempts"`
	RetryInterval    time.Duration `mapstructure:"retryInterval"`
	MaxRetryInterval time.Duration `mapstructure:"maxRetryInterval"`
	SlowThreshold    time.Duration `mapstructure:"slowThreshold"`
}

// CacheConfig contains Redis settings for caching upstream timings
type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	TTL         time.Duration `mapstructure:"ttl"`
	DialTimeout time.Duration `mapstructure:"dialTimeout"`
}

// DefaultLocation returns the fallback location as a domain value
func (c LocationConfig) DefaultLocation() entity.Location {
	return entity.Location{
		Coordinates: entity.Coordinates{
			Latitude:  c.Default.Latitude,
			Longitude: c.Default.Longitude,
		},
		City:     c.Default.City,
		Country:  c.Default.Country,
		Timezone: c.Default.Timezone,
	}
}

// Validate ensures all required configuration values are present and consistent
func (c *Config) Validate() error {
	var missing []string

	switch c.Environment {
	case "":
		missing = append(missing, "environment")
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			c.Environment, Development, Production, Test)
	}

	if c.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if c.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}
	if c.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}
	if c.PrayerTimes.BaseURL == "" {
		missing = append(missing, "prayerTimes.baseURL")
	}
	if c.PrayerTimes.Timeout == 0 {
		missing = append(missing, "prayerTimes.timeout")
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		missing = append(missing, "cache.addr")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	var errs []error
	if err := c.Location.DefaultLocation().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("location.default: %w", err))
	}
	if c.Location.Default.Timezone != "" {
		if _, err := time.LoadLocation(c.Location.Default.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("location.default.timezone: %w", err))
		}
	}
	if c.PrayerTimes.Method < 0 {
		errs = append(errs, fmt.Errorf("prayerTimes.method must not be negative, got %d", c.PrayerTimes.Method))
	}
	if c.PrayerTimes.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("prayerTimes.retryAttempts must be at least 1, got %d", c.PrayerTimes.RetryAttempts))
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive when the cache is enabled"))
	}

	return errors.Join(errs...)
}
