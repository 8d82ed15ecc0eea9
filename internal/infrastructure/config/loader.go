package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. TJ_SERVER_PORT
const EnvPrefix = "TJ"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../.env",
	"../../.env",
}

// LoadConfig loads configuration for the environment named by TJ_ENV.
// A missing config file is not an error: defaults and environment variables still apply.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		return nil, err
	}

	return load(getEnvironment(), ConfigPaths)
}

func load(env string, paths []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	return &config, nil
}

// loadDotEnvFile loads the first .env file found; having none is fine
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// setDefaults sets a default for every key so the binary runs without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "30s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("server.trustedProxies", []string{})

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.callerInfo", false)

	v.SetDefault("location.baseURL", "http://ip-api.com")
	v.SetDefault("location.timeout", "3s")
	v.SetDefault("location.requestsPerMinute", 45)
	v.SetDefault("location.default.latitude", 21.4225)
	v.SetDefault("location.default.longitude", 39.8262)
	v.SetDefault("location.default.city", "Mecca")
	v.SetDefault("location.default.country", "Saudi Arabia")
	v.SetDefault("location.default.timezone", "Asia/Riyadh")

	v.SetDefault("prayerTimes.baseURL", "https://api.aladhan.com")
	v.SetDefault("prayerTimes.method", 5)
	v.SetDefault("prayerTimes.timeout", "5s")
	v.SetDefault("prayerTimes.fetchTimeout", "15s")
	v.SetDefault("prayerTimes.retryAttempts", 2)
	v.SetDefault("prayerTimes.retryInterval", "200ms")
	v.SetDefault("prayerTimes.maxRetryInterval", "2s")
	v.SetDefault("prayerTimes.slowThreshold", "1s")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.username", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.dialTimeout", "500ms")
}

// getEnvironment determines the environment to use based on TJ_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides accepts the conventional names of shared infrastructure
// settings in addition to the prefixed keys
func processEnvOverrides(v *viper.Viper) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" && os.Getenv(EnvPrefix+"_CACHE_ADDR") == "" {
		v.Set("cache.addr", addr)
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" && os.Getenv(EnvPrefix+"_CACHE_PASSWORD") == "" {
		v.Set("cache.password", password)
	}
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"_SERVER_PORT") == "" {
		v.Set("server.port", port)
	}
}
