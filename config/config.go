package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Scan      ScanConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds remote product API configuration
type CatalogConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	FetchLimit  int           `mapstructure:"fetch_limit"`
	PageSize    int           `mapstructure:"page_size"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP   int `mapstructure:"per_ip"`
	Catalog int `mapstructure:"catalog"` // upstream requests per hour
}

// ScanConfig holds barcode scan handling configuration
type ScanConfig struct {
	Cooldown time.Duration `mapstructure:"cooldown"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/seefood/")

	v.SetEnvPrefix("SEEFOOD")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Catalog: all items are pulled in one shot and paged client-side
	v.SetDefault("catalog.fetch_limit", 100)
	v.SetDefault("catalog.page_size", 10)
	v.SetDefault("catalog.snapshot_ttl", "5m")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.catalog", 1000)

	v.SetDefault("scan.cooldown", "3s")

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set SEEFOOD_CATALOG_BASE_URL)")
	}

	if config.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog page size must be positive, got: %d", config.Catalog.PageSize)
	}

	if config.Catalog.FetchLimit <= 0 {
		return fmt.Errorf("catalog fetch limit must be positive, got: %d", config.Catalog.FetchLimit)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Scan.Cooldown < 0 {
		return fmt.Errorf("scan cooldown must not be negative, got: %s", config.Scan.Cooldown)
	}

	return nil
}
