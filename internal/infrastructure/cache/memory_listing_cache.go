package cache

import (
	"context"
	"sync"
	"time"

	"github.com/gasdepot/backend/internal/domain/shared"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryListingCache implements shared.ListingCache in process memory.
// It is the default backend for development and single-instance deployments;
// anything multi-instance should use the Redis backend so invalidations are
// seen by every replica.
type MemoryListingCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]memoryEntry // entity -> fingerprint -> entry
}

// NewMemoryListingCache creates a new MemoryListingCache
func NewMemoryListingCache() *MemoryListingCache {
	return &MemoryListingCache{
		entries: make(map[string]map[string]memoryEntry),
	}
}

// Get returns the cached payload for the key, or false when absent or expired
func (c *MemoryListingCache) Get(ctx context.Context, entity, fingerprint string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[entity][fingerprint]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.payload, true
}

// Set stores a payload under the key for the given TTL
func (c *MemoryListingCache) Set(ctx context.Context, entity, fingerprint string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[entity] == nil {
		c.entries[entity] = make(map[string]memoryEntry)
	}
	c.entries[entity][fingerprint] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate drops every cached page of the entity kind
func (c *MemoryListingCache) Invalidate(ctx context.Context, entity string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, entity)
	return nil
}

// Ensure MemoryListingCache implements ListingCache
var _ shared.ListingCache = (*MemoryListingCache)(nil)
