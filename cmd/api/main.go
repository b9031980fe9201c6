// ABOUTME: Main entry point for the Feedlist API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedlist-api/api"
	"feedlist-api/api/handlers"
	"feedlist-api/api/middleware"
	"feedlist-api/core/feedlist"
	"feedlist-api/core/interfaces"
	"feedlist-api/core/session"
	"feedlist-api/core/title"
	"feedlist-api/infrastructure/cache/memory"
	"feedlist-api/infrastructure/cache/redis"
	"feedlist-api/infrastructure/cache/sqlite"
	stdhttp "feedlist-api/infrastructure/http/standard"
	stdlogger "feedlist-api/infrastructure/logger/standard"
	"feedlist-api/pkg/client"
	"feedlist-api/pkg/config"
	"feedlist-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := stdlogger.NewLogger(stdlogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	flags := featureflags.NewEnvManager("FEATURE_")
	ctx := featureflags.WithManager(context.Background(), flags)

	logger.Info("Starting Feedlist API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"flags":      flags.GetAllFlags(),
	})

	cache, closeCache := newTitleCache(ctx, cfg, logger)
	defer closeCache()

	resolver, err := newResolver(ctx, cfg, cache, logger)
	if err != nil {
		log.Fatalf("Failed to create title resolver: %v", err)
	}

	sessions := session.NewManager(resolver, logger, session.Config{
		TTL:      cfg.SessionTTL(),
		Feedlist: feedlist.Config{DetectAllInterval: cfg.DetectAllInterval()},
	})
	defer sessions.Close()

	apiConfig := api.APIConfig{Logger: logger}
	if featureflags.IsEnabled(ctx, featureflags.RateLimit) {
		apiConfig.RateLimit = cfg.RateLimit.Requests
		apiConfig.RateWindow = cfg.RateWindow()
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewTitleHandler(resolver).RegisterRoutes(humaAPI)
	handlers.NewSessionHandler(sessions).RegisterRoutes(humaAPI)
	handlers.NewFeedsHandler(sessions).RegisterRoutes(humaAPI)
	handlers.NewTransferHandler(sessions).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.DetectTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newTitleCache selects the title cache backend. Redis and SQLite failures fall back
// to memory; a disabled title_cache flag yields no cache at all.
func newTitleCache(ctx context.Context, cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	noop := func() {}
	if !featureflags.IsEnabled(ctx, featureflags.TitleCache) {
		logger.Info("Title cache disabled", nil)
		return nil, noop
	}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err == nil {
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
			return redisCache, closer(redisCache, logger)
		}
		logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err == nil {
			logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.Cache.SQLite.Path,
			})
			return sqliteCache, closer(sqliteCache, logger)
		}
		logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(), noop
}

func closer(c io.Closer, logger interfaces.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to close title cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// newResolver builds the local resolver, or a remote one when REMOTE_RESOLVER_URL is set
func newResolver(ctx context.Context, cfg *config.Config, cache interfaces.Cache, logger interfaces.Logger) (interfaces.TitleResolver, error) {
	transport := middleware.NewLoggingRoundTripper(nil, logger)
	httpClient := stdhttp.NewStandardHTTPClientWithTransport(cfg.DetectTimeout(), transport)

	if cfg.Detection.RemoteResolverURL != "" {
		logger.Info("Delegating title detection", map[string]interface{}{
			"endpoint": cfg.Detection.RemoteResolverURL,
		})
		remote, err := client.NewRemoteResolver(cfg.Detection.RemoteResolverURL,
			client.WithHTTPClient(httpClient),
			client.WithLogger(logger),
			client.WithTimeout(cfg.DetectTimeout()),
		)
		if err != nil {
			return nil, err
		}
		return remote, nil
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}
	extractor := title.NewExtractor(
		title.WithLogger(logger),
		title.WithJSONFeedTitles(featureflags.IsEnabled(ctx, featureflags.JSONFeedTitles)),
	)
	return title.NewResolver(deps, extractor, title.ResolverConfig{
		Timeout:  cfg.DetectTimeout(),
		CacheTTL: cfg.TitleCacheTTL(),
	}), nil
}
