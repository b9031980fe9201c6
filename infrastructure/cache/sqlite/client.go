// ABOUTME: SQLite-based title cache for persistent caching
// ABOUTME: Detected titles survive restarts and expire by TTL

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	cleanupInterval = 5 * time.Minute
	maxKeyLength    = 4096
	maxValueLength  = 1024 * 1024
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("key not found or expired")

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSQLiteCache creates a new SQLite cache client
func NewSQLiteCache(filePath string) (*Client, error) {
	if filePath == "" {
		filePath = "titles.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
		stop:     make(chan struct{}),
	}

	if err := client.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	go client.cleanupRoutine()

	return client, nil
}

// initSchema creates the cache table if it doesn't exist. An expiry of 0 never expires.
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS title_cache (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_title_cache_expiry ON title_cache(expiry);
	`

	_, err := c.db.Exec(query)
	return err
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: %d bytes (max %d)", len(key), maxKeyLength)
	}
	return nil
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	query := "SELECT value FROM title_cache WHERE key = ? AND (expiry = 0 OR expiry > ?)"
	err := c.db.QueryRowContext(ctx, query, key, time.Now().UnixNano()).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores a value in the cache with TTL. A zero TTL never expires.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: %d bytes (max %d)", len(value), maxValueLength)
	}

	var expiry int64
	if ttl > 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}

	query := "INSERT OR REPLACE INTO title_cache (key, value, expiry) VALUES (?, ?, ?)"
	if _, err := c.db.ExecContext(ctx, query, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, "DELETE FROM title_cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// cleanupRoutine periodically removes expired entries until Close
func (c *Client) cleanupRoutine() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes expired entries and returns how many were dropped
func (c *Client) cleanup() int64 {
	res, err := c.db.Exec("DELETE FROM title_cache WHERE expiry <> 0 AND expiry <= ?", time.Now().UnixNano())
	if err != nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}

// Close stops the cleanup routine and closes the database connection
func (c *Client) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return c.db.Close()
}

// Stats returns cache statistics
func (c *Client) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM title_cache").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_entries"] = count

	var expired int
	err := c.db.QueryRow("SELECT COUNT(*) FROM title_cache WHERE expiry <> 0 AND expiry <= ?", time.Now().UnixNano()).Scan(&expired)
	if err != nil {
		return nil, err
	}
	stats["expired_entries"] = expired
	stats["file_path"] = c.filePath

	return stats, nil
}
