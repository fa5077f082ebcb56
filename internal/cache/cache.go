// Package cache persists the most recent résumé snapshot with a freshness window.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/github-resume/internal/types"
)

// DefaultKey is the single storage slot the snapshot lives under.
const DefaultKey = "resumeData"

// DefaultTTL is the freshness window of a cached snapshot.
const DefaultTTL = 10 * time.Minute

// Entry is the persisted record: the snapshot plus its capture time in
// milliseconds since the Unix epoch.
type Entry struct {
	Data      *types.ResumeData `json:"data"`
	Timestamp int64             `json:"timestamp"`
}

// Cache is a single-slot, best-effort snapshot cache over a Storage.
type Cache struct {
	storage Storage
	key     string
	ttl     time.Duration
	now     func() time.Time
	logger  *log.Logger
}

// Config holds configuration for the cache.
type Config struct {
	Key    string
	TTL    time.Duration
	Now    func() time.Time // Wall clock; overridden in tests
	Logger *log.Logger
}

// DefaultConfig returns the standard slot and freshness window.
func DefaultConfig() *Config {
	return &Config{
		Key: DefaultKey,
		TTL: DefaultTTL,
		Now: time.Now,
	}
}

// New creates a cache over storage. A nil config uses DefaultConfig.
func New(storage Storage, config *Config) *Cache {
	if config == nil {
		config = DefaultConfig()
	}
	c := &Cache{
		storage: storage,
		key:     config.Key,
		ttl:     config.TTL,
		now:     config.Now,
		logger:  config.Logger,
	}
	if c.key == "" {
		c.key = DefaultKey
	}
	if c.ttl == 0 {
		c.ttl = DefaultTTL
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Save overwrites the slot with a timestamped copy of data.
// Failures are logged and swallowed.
func (c *Cache) Save(ctx context.Context, data *types.ResumeData) {
	if err := c.save(ctx, data); err != nil {
		c.logger.Printf("[CACHE] Error saving to cache: %v", err)
	}
}

func (c *Cache) save(ctx context.Context, data *types.ResumeData) error {
	if c.storage == nil {
		return fmt.Errorf("storage unavailable")
	}
	if data == nil {
		return fmt.Errorf("nil resume data")
	}

	entry := Entry{
		Data:      data.Clone(),
		Timestamp: c.now().UnixMilli(),
	}
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := c.storage.Set(ctx, c.key, string(jsonBytes)); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Load returns the cached snapshot when it is still fresh.
// Expired entries are removed on read. Returns nil on absence or any failure.
func (c *Cache) Load(ctx context.Context) *types.ResumeData {
	data, err := c.load(ctx)
	if err != nil {
		c.logger.Printf("[CACHE] Error reading from cache: %v", err)
		return nil
	}
	return data
}

func (c *Cache) load(ctx context.Context) (*types.ResumeData, error) {
	if c.storage == nil {
		return nil, fmt.Errorf("storage unavailable")
	}

	raw, found, err := c.storage.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("failed to parse cache entry: %w", err)
	}

	elapsed := c.now().UnixMilli() - entry.Timestamp
	if elapsed > c.ttl.Milliseconds() {
		if err := c.storage.Remove(ctx, c.key); err != nil {
			return nil, fmt.Errorf("failed to remove expired cache entry: %w", err)
		}
		return nil, nil
	}

	return entry.Data, nil
}

// Clear removes the cached snapshot, if any.
func (c *Cache) Clear(ctx context.Context) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Remove(ctx, c.key); err != nil {
		c.logger.Printf("[CACHE] Error clearing cache: %v", err)
	}
}
