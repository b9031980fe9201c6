// ABOUTME: Standard HTTP client implementation with timeout and redirect support
// ABOUTME: Performs a single attempt per request; callers decide how to degrade

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"feedlist-api/core/interfaces"
)

const (
	maxRedirects = 10
	userAgent    = "FeedlistAPI/1.0"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return NewStandardHTTPClientWithTransport(timeout, nil)
}

// NewStandardHTTPClientWithTransport uses transport for outgoing requests;
// nil selects http.DefaultTransport
func NewStandardHTTPClientWithTransport(timeout time.Duration, transport http.RoundTripper) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs an HTTP GET request with extra headers
func (c *StandardHTTPClient) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		status:     resp.Status,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	status     string
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Status returns the status line, e.g. "404 Not Found"
func (r *httpResponse) Status() string {
	return r.status
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
