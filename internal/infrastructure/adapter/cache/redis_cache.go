package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	cacheport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/cache"
)

// RedisConfig holds the connection settings of the cache
type RedisConfig struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisClient connects to Redis and verifies the connection with a PING
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// RedisTimingsCache stores daily timings as JSON strings
type RedisTimingsCache struct {
	client redis.UniversalClient
}

var _ cacheport.TimingsCache = (*RedisTimingsCache)(nil)

// NewRedisTimingsCache creates a cache on top of an existing client
func NewRedisTimingsCache(client redis.UniversalClient) *RedisTimingsCache {
	return &RedisTimingsCache{client: client}
}

// Get returns the timings stored under key; a missing key is not an error
func (c *RedisTimingsCache) Get(ctx context.Context, key string) (*entity.DailyTimings, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var timings entity.DailyTimings
	if err := json.Unmarshal(data, &timings); err != nil {
		return nil, false, fmt.Errorf("decode cached timings %s: %w", key, err)
	}
	if err := timings.InLocation(); err != nil {
		return nil, false, fmt.Errorf("cached timings %s: %w", key, err)
	}

	return &timings, true, nil
}

// Set stores timings under key for ttl
func (c *RedisTimingsCache) Set(ctx context.Context, key string, timings *entity.DailyTimings, ttl time.Duration) error {
	data, err := json.Marshal(timings)
	if err != nil {
		return fmt.Errorf("encode timings %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
