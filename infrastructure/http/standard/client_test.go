package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewStandardHTTPClient(t *testing.T) {
	timeout := 10 * time.Second
	client := NewStandardHTTPClient(timeout)
	
	if client == nil {
		t.Error("NewStandardHTTPClient returned nil")
	}
	
	if client.client.Timeout != timeout {
		t.Errorf("Client timeout = %v, want %v", client.client.Timeout, timeout)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	// Create test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response"))
	}))
	defer server.Close()
	
	client := NewStandardHTTPClient(10 * time.Second)
	ctx := context.Background()
	
	resp, err := client.Get(ctx, server.URL)
	
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if resp == nil {
		t.Fatal("Get returned nil response")
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusOK)
	}
	
	// Read body
	body, err := io.ReadAll(resp.Body())
	resp.Body().Close()
	if err != nil {
		t.Errorf("Failed to read body: %v", err)
	}
	if string(body) != "test response" {
		t.Errorf("Body = %s, want 'test response'", string(body))
	}
}

func TestStandardHTTPClient_Get_UserAgent(t *testing.T) {
	var capturedUserAgent string
	
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	
	client := NewStandardHTTPClient(10 * time.Second)
	ctx := context.Background()
	
	resp, err := client.Get(ctx, server.URL)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	resp.Body().Close()
	
	if capturedUserAgent == "" {
		t.Error("User-Agent header not set")
	}
	if !strings.Contains(capturedUserAgent, "FeedlistAPI") {
		t.Errorf("User-Agent = %s, should contain 'FeedlistAPI'", capturedUserAgent)
	}
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	// Create slow server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	
	client := NewStandardHTTPClient(10 * time.Second)
	
	// Create context with short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	
	resp, err := client.Get(ctx, server.URL)
	
	if err == nil {
		resp.Body().Close()
		t.Error("Get should return error for context timeout")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("Error should mention context deadline, got: %v", err)
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)
	ctx := context.Background()
	
	resp, err := client.Get(ctx, "not a valid url")
	
	if err == nil {
		resp.Body().Close()
		t.Error("Get should return error for invalid URL")
	}
}

func TestHTTPResponse_StatusCode(t *testing.T) {
	resp := &httpResponse{
		statusCode: 201,
		status:     "201 Created",
	}
	
	if resp.StatusCode() != 201 {
		t.Errorf("StatusCode() = %d, want 201", resp.StatusCode())
	}
	if resp.Status() != "201 Created" {
		t.Errorf("Status() = %s, want '201 Created'", resp.Status())
	}
}

func TestHTTPResponse_Body(t *testing.T) {
	bodyContent := "test body content"
	resp := &httpResponse{
		body: io.NopCloser(strings.NewReader(bodyContent)),
	}
	
	body := resp.Body()
	content, err := io.ReadAll(body)
	body.Close()
	
	if err != nil {
		t.Errorf("Failed to read body: %v", err)
	}
	if string(content) != bodyContent {
		t.Errorf("Body content = %s, want %s", string(content), bodyContent)
	}
}

func TestHTTPResponse_Header(t *testing.T) {
	resp := &httpResponse{
		headers: http.Header{
			"Content-Type": []string{"application/json"},
			"X-Custom":     []string{"value1", "value2"},
		},
	}
	
	// Test existing header
	if resp.Header("Content-Type") != "application/json" {
		t.Errorf("Header(Content-Type) = %s, want application/json", resp.Header("Content-Type"))
	}
	
	// Test case-insensitive
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Header(content-type) = %s, want application/json", resp.Header("content-type"))
	}
	
	// Test non-existent header
	if resp.Header("Non-Existent") != "" {
		t.Errorf("Header(Non-Existent) = %s, want empty string", resp.Header("Non-Existent"))
	}
}

func TestStandardHTTPClient_GetWithHeaders(t *testing.T) {
	var captured http.Header
	
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	
	client := NewStandardHTTPClient(10 * time.Second)
	
	resp, err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{
		"User-Agent":      "Mozilla/5.0 Test",
		"Accept-Language": "en-US,en;q=0.5",
	})
	if err != nil {
		t.Fatalf("GetWithHeaders returned error: %v", err)
	}
	resp.Body().Close()
	
	if captured.Get("User-Agent") != "Mozilla/5.0 Test" {
		t.Errorf("User-Agent = %s, want override", captured.Get("User-Agent"))
	}
	if captured.Get("Accept-Language") != "en-US,en;q=0.5" {
		t.Errorf("Accept-Language = %s, want en-US,en;q=0.5", captured.Get("Accept-Language"))
	}
}

func TestStandardHTTPClient_Get_NoRetryOn5xx(t *testing.T) {
	attempts := 0
	
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	
	client := NewStandardHTTPClient(10 * time.Second)
	
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()
	
	if attempts != 1 {
		t.Errorf("Attempts = %d, want 1 (single attempt)", attempts)
	}
	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusServiceUnavailable)
	}
	if resp.Status() != "503 Service Unavailable" {
		t.Errorf("Status = %s, want '503 Service Unavailable'", resp.Status())
	}
}

func TestStandardHTTPClient_Get_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/feed", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss/>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	
	client := NewStandardHTTPClient(10 * time.Second)
	
	resp, err := client.Get(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()
	
	body, _ := io.ReadAll(resp.Body())
	if resp.StatusCode() != http.StatusOK || string(body) != "<rss/>" {
		t.Errorf("redirect not followed: status %d body %q", resp.StatusCode(), string(body))
	}
}

func TestStandardHTTPClient_Get_RedirectLoop(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()
	
	client := NewStandardHTTPClient(10 * time.Second)
	
	resp, err := client.Get(context.Background(), server.URL+"/a")
	if err == nil {
		resp.Body().Close()
		t.Fatal("Get should fail on an endless redirect chain")
	}
	if !strings.Contains(err.Error(), "redirects") {
		t.Errorf("Error should mention redirects, got: %v", err)
	}
}

type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return http.DefaultTransport.RoundTrip(r)
}

func TestStandardHTTPClient_CustomTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := &countingTransport{}
	client := NewStandardHTTPClientWithTransport(time.Second, transport)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if transport.calls != 1 {
		t.Errorf("transport calls = %d, want 1", transport.calls)
	}
}
