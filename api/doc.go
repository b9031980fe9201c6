// Package api provides the HTTP API layer for the feed list builder.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
// GET /detect-title resolves a single URL without any session state. Everything
// else lives under /sessions/{sessionID}: each session owns a feed list and a
// detection queue that fills in titles in the background. Clients poll
// GET /sessions/{sessionID} to pick up detected titles and loading flags.
//
// # Middleware
//
// - CORS handling
// - Request logging with unique request IDs
// - Rate limiting per client IP
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//
//	handlers.NewTitleHandler(resolver).RegisterRoutes(humaAPI)
//	handlers.NewSessionHandler(sessions).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 415,
//	    "title": "Unsupported Media Type",
//	    "detail": "unsupported file format, please use CSV, Excel or OPML"
//	}
//
// Domain errors are mapped to HTTP status codes in handlers/errors.go. Title
// detection failures are never errors; they degrade to a domain-name title.
package api
