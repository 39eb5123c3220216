package cache

import (
	"context"
	"sync"
	"time"

	domainRepo "github.com/storepulse/storepulse-api/internal/domain/repository"
)

// entry represents a stored report payload with expiration
type entry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryReportCache implements ReportCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type MemoryReportCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryReportCache creates a new in-memory report cache.
// It starts a background goroutine to clean up expired entries.
func NewMemoryReportCache() *MemoryReportCache {
	c := &MemoryReportCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached payload for key, or found=false if the entry is
// absent or past its expiration instant
func (c *MemoryReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		return nil, false, nil // Expired, treat as absent
	}

	return e.payload, true, nil
}

// Set stores the payload, overwriting any existing entry and resetting
// its TTL
func (c *MemoryReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload:   stored,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// InvalidateAll removes every entry and returns the number removed
func (c *MemoryReportCache) InvalidateAll(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := int64(len(c.entries))
	c.entries = make(map[string]entry)
	return removed, nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *MemoryReportCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *MemoryReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cleanupLoop periodically removes expired entries
func (c *MemoryReportCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *MemoryReportCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Ensure MemoryReportCache implements ReportCache
var _ domainRepo.ReportCache = (*MemoryReportCache)(nil)
