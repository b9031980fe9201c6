// ABOUTME: Remote title resolver that delegates detection to another feedlist-api instance
// ABOUTME: Speaks the GET /detect-title contract and degrades to the domain name on failure

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"feedlist-api/api/dto/mappers"
	"feedlist-api/api/dto/responses"
	"feedlist-api/core/domain"
	coreerrors "feedlist-api/core/errors"
	"feedlist-api/core/interfaces"
	"feedlist-api/core/title"
	"feedlist-api/infrastructure/http/standard"
)

// DefaultTimeout bounds each call to the remote instance
const DefaultTimeout = 20 * time.Second

// maxResponseBytes bounds the decoded detect-title payload
const maxResponseBytes = 64 << 10

// Config holds the configuration for the remote resolver
type Config struct {
	// BaseURL is the root of the remote instance, e.g. https://titles.example.com
	BaseURL string

	// HTTPClient performs the calls; a standard client is created when nil
	HTTPClient interfaces.HTTPClient

	// Logger receives warnings about failed calls
	Logger interfaces.Logger

	// Timeout bounds each call
	Timeout time.Duration
}

// Option is a functional option for configuring the resolver
type Option func(*Config) error

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithTimeout sets the per-call timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return &coreerrors.ValidationError{Field: "timeout", Message: "must be positive"}
		}
		c.Timeout = timeout
		return nil
	}
}

// RemoteResolver implements interfaces.TitleResolver over HTTP
type RemoteResolver struct {
	endpoint string
	config   Config
}

// NewRemoteResolver creates a resolver calling baseURL/detect-title
func NewRemoteResolver(baseURL string, options ...Option) (*RemoteResolver, error) {
	cfg := Config{BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), Timeout: DefaultTimeout}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &coreerrors.ValidationError{Field: "base_url", Message: "must be an absolute http(s) URL"}
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = standard.NewStandardHTTPClient(cfg.Timeout)
	}

	return &RemoteResolver{endpoint: cfg.BaseURL + "/detect-title", config: cfg}, nil
}

// Resolve asks the remote instance for a title. Transport or protocol failures fall
// back to the domain name locally, so Resolve never fails.
func (r *RemoteResolver) Resolve(ctx context.Context, rawURL string) domain.TitleResult {
	result, err := r.fetch(ctx, rawURL)
	if err != nil {
		r.warn(rawURL, err)
		return domain.TitleResult{Title: title.DomainOrInput(rawURL), Source: domain.ResolvedFromDomain}
	}
	return result
}

func (r *RemoteResolver) fetch(ctx context.Context, rawURL string) (domain.TitleResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	target := r.endpoint + "?" + url.Values{"url": {strings.TrimSpace(rawURL)}}.Encode()
	resp, err := r.config.HTTPClient.GetWithHeaders(ctx, target, map[string]string{"Accept": "application/json"})
	if err != nil {
		return domain.TitleResult{}, coreerrors.WrapError(err, "remote detect-title request failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return domain.TitleResult{}, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    resp.Status(),
			API:        "detect-title",
		}
	}

	var payload responses.TitleResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body(), maxResponseBytes)).Decode(&payload); err != nil {
		return domain.TitleResult{}, coreerrors.WrapError(err, "decode detect-title response")
	}

	if payload.Error == "" && payload.Title == "" {
		return domain.TitleResult{}, fmt.Errorf("detect-title response carried neither title nor error")
	}

	return mappers.FromTitleResponse(payload), nil
}

func (r *RemoteResolver) warn(rawURL string, err error) {
	if r.config.Logger == nil {
		return
	}
	r.config.Logger.Warn("Remote title detection failed", map[string]interface{}{
		"url":      rawURL,
		"endpoint": r.endpoint,
		"error":    err.Error(),
	})
}
