package title

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"feedlist-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error)
	calls   int
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.GetWithHeaders(ctx, url, nil)
}

func (m *mockHTTPClient) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	m.calls++
	if m.getFunc != nil {
		return m.getFunc(ctx, url, headers)
	}
	return nil, errors.New("no response configured")
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	status     string
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Status() string {
	return m.status
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mapCache is a minimal in-memory Cache for tests
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recordingLogger captures log calls
type recordingLogger struct {
	mu   sync.Mutex
	logs []logEntry
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record("DEBUG", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record("INFO", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record("WARN", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record("ERROR", msg, fields) }

func (l *recordingLogger) entries(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.logs {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}
