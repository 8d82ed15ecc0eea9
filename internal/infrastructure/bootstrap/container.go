package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/usecase/location"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/usecase/prayertime"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/usecase/schedule"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/aladhan"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/httpclient"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/ipapi"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/monitoring"
	timeProvider "github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/config"
)

// Container wires the adapters and use cases shared by the API server and the CLI
type Container struct {
	Config          *config.Config
	Logger          coreport.Logger
	TimeProvider    coreport.TimeProvider
	ScheduleService usecase.ScheduleUseCase

	redis *redis.Client
}

// NewLogger builds the application logger from configuration
func NewLogger(cfg config.LoggerConfig) coreport.Logger {
	return logger.NewZapLogger(logger.Options{
		Production: cfg.Format == "json",
		Level:      coreport.ParseLogLevel(cfg.Level),
		OutputPath: cfg.Output,
		CallerInfo: cfg.CallerInfo,
	})
}

// New builds the container. An unreachable cache is logged and skipped.
func New(ctx context.Context, cfg *config.Config, log coreport.Logger) *Container {
	tp := timeProvider.NewRealTimeProvider()
	c := &Container{
		Config:       cfg,
		Logger:       log,
		TimeProvider: tp,
	}

	detector := ipapi.NewDetector(ipapi.Config{
		BaseURL:           cfg.Location.BaseURL,
		Timeout:           cfg.Location.Timeout,
		RequestsPerMinute: cfg.Location.RequestsPerMinute,
	}, log)

	client := aladhan.NewClient(aladhan.Config{
		BaseURL: cfg.PrayerTimes.BaseURL,
		Method:  cfg.PrayerTimes.Method,
		Timeout: cfg.PrayerTimes.Timeout,
		Retry: httpclient.RetryConfig{
			MaxAttempts:   cfg.PrayerTimes.RetryAttempts,
			RetryInterval: cfg.PrayerTimes.RetryInterval,
			MaxInterval:   cfg.PrayerTimes.MaxRetryInterval,
			JitterFactor:  httpclient.DefaultRetryConfig().JitterFactor,
		},
	}, log)

	var provider gateway.TimingsProvider = monitoring.NewMeasuredTimingsProvider(client, cfg.PrayerTimes.SlowThreshold, tp, log)
	if cfg.Cache.Enabled {
		provider = c.withCache(ctx, provider, client.Method(), log)
	}

	resolver := location.NewResolver(detector, cfg.Location.DefaultLocation(), cfg.Location.Timeout, tp, log)
	source := prayertime.NewSource(provider, cfg.PrayerTimes.FetchTimeout, tp, log)
	c.ScheduleService = schedule.NewService(resolver, source, tp, log)

	return c
}

func (c *Container) withCache(ctx context.Context, upstream gateway.TimingsProvider, method int, log coreport.Logger) gateway.TimingsProvider {
	cfg := c.Config.Cache

	rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		log.Warn("Timings cache unavailable, continuing without it", map[string]any{
			"addr":  cfg.Addr,
			"error": err.Error(),
		})
		return upstream
	}

	c.redis = rdb
	log.Info("Timings cache connected", map[string]any{
		"addr": cfg.Addr,
		"db":   cfg.DB,
		"ttl":  cfg.TTL.String(),
	})

	return cache.NewCachedTimingsProvider(upstream, cache.NewRedisTimingsCache(rdb), method, cfg.TTL, log)
}

// CacheEnabled reports whether a cache connection is in use
func (c *Container) CacheEnabled() bool {
	return c.redis != nil
}

// Close releases the cache connection and flushes the logger
func (c *Container) Close() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}
	return c.Logger.Flush()
}
