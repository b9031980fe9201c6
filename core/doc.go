// Package core contains the business logic for the feed list builder.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Feed entries, import records and title detection results
// - title: Title extraction cascade and the HTTP title resolver
// - detection: Single-flight detection queue with a stale-write guard
// - feedlist: Entry store, list reducers and the per-session service
// - importer: CSV, Excel and OPML parsing into import records
// - exporter: OPML and CSV generation
// - session: TTL registry of editing sessions
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// - All external dependencies are injected via interfaces
// - Every list mutation is a reducer over an immutable snapshot
// - Title detection never fails; it degrades to the domain name
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	resolver := title.NewResolver(deps, nil, title.ResolverConfig{})
//	list := feedlist.NewService(resolver, myLogger, feedlist.Config{})
//	defer list.Close()
//
//	entry := list.AddFeed()
//	list.UpdateFeed(entry.ID, feedlist.Edit{URL: &feedURL})
//	list.RequestDetection(entry.ID, "")
package core
