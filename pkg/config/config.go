// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, detection, sessions and logging

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains title cache configuration
	Cache CacheConfig

	// Detection contains title detection configuration
	Detection DetectionConfig

	// Session contains editing session configuration
	Session SessionConfig

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig

	// Log contains logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// TTL is how long detected titles are cached, in seconds
	TTL int

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// DetectionConfig holds title detection configuration
type DetectionConfig struct {
	// Timeout bounds each title fetch, in seconds
	Timeout int

	// DetectAllIntervalMS spaces out detect-all enqueues, in milliseconds
	DetectAllIntervalMS int

	// RemoteResolverURL delegates resolution to another instance when set
	RemoteResolverURL string
}

// SessionConfig holds editing session configuration
type SessionConfig struct {
	// TTL is the idle lifetime of a session, in seconds
	TTL int
}

// RateLimitConfig holds per-client rate limits
type RateLimitConfig struct {
	// Requests is the number of requests allowed per window
	Requests int

	// Window is the window length in seconds
	Window int
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is the minimum level (debug/info/warn/error)
	Level string

	// Format is text or json
	Format string

	// File is an optional rotating log file path
	File string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			TTL:  getEnvAsIntOrDefault("TITLE_CACHE_TTL", 3600),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "titles.db"),
			},
		},
		Detection: DetectionConfig{
			Timeout:             getEnvAsIntOrDefault("DETECT_TIMEOUT", 15),
			DetectAllIntervalMS: getEnvAsIntOrDefault("DETECT_ALL_INTERVAL_MS", 100),
			RemoteResolverURL:   getEnvOrDefault("REMOTE_RESOLVER_URL", ""),
		},
		Session: SessionConfig{
			TTL: getEnvAsIntOrDefault("SESSION_TTL", 7200),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT", 100),
			Window:   getEnvAsIntOrDefault("RATE_WINDOW", 60),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Cache.TTL < 0 {
		return errors.New("title cache TTL cannot be negative")
	}

	if c.Detection.Timeout < 1 {
		return errors.New("detect timeout must be at least 1 second")
	}

	if c.Detection.DetectAllIntervalMS < 0 {
		return errors.New("detect-all interval cannot be negative")
	}

	if c.Session.TTL < 1 {
		return errors.New("session TTL must be at least 1 second")
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window < 1 {
		return errors.New("rate limit and window must be positive")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}

// TitleCacheTTL returns the title cache TTL as a duration
func (c *Config) TitleCacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}

// DetectTimeout returns the per-fetch timeout as a duration
func (c *Config) DetectTimeout() time.Duration {
	return time.Duration(c.Detection.Timeout) * time.Second
}

// DetectAllInterval returns the detect-all pacing interval as a duration
func (c *Config) DetectAllInterval() time.Duration {
	return time.Duration(c.Detection.DetectAllIntervalMS) * time.Millisecond
}

// SessionTTL returns the session idle lifetime as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTL) * time.Second
}

// RateWindow returns the rate limit window as a duration
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimit.Window) * time.Second
}
