// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"time"

	"feedlist-api/api/middleware"
	"feedlist-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	apiTitle       = "Feedlist API"
	apiVersion     = "1.0.0"
	apiDescription = "Build RSS/Atom subscription lists, detect feed titles and export them as OPML or CSV"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured. Logging and rate
// limiting are skipped when their settings are zero.
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run first so preflight requests are never rate limited
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID", "X-RateLimit-Limit", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = apiDescription

	// OpenAPI is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	return api, router
}
