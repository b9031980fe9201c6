// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as title caching, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory title cache backed by patrickmn/go-cache
// - cache/redis: Redis-based title cache shared across instances
// - cache/sqlite: SQLite title cache that survives restarts
// - http/standard: Standard library HTTP client, single attempt with redirects
// - logger/standard: Structured logger on top of logrus
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "title:https://example.com/rss", payload, 1*time.Hour)
//	value, err := cache.Get(ctx, "title:https://example.com/rss")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	})
//
// SQLite Cache Example:
//
//	cache, err := sqlite.NewSQLiteCache("titles.db")
//	defer cache.Close()
//
// # HTTP Client
//
// The HTTP client makes exactly one attempt per request and follows redirects.
// Callers set their own headers and deadlines:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.GetWithHeaders(ctx, "https://example.com/rss", headers)
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := standard.NewLogger(standard.Options{Level: "debug", Format: "json"})
//	logger.Info("Title detected", map[string]interface{}{
//	    "url":    "https://example.com/rss",
//	    "source": "feed",
//	})
package infrastructure
