package shared

import (
	"context"
	"time"
)

// ListingCache caches serialized listing pages. Entries are keyed by entity
// kind plus a fingerprint of the listing filter, and every mutation of an
// entity kind invalidates all of its cached pages at once.
type ListingCache interface {
	// Get returns the cached payload for the key, or false when absent
	Get(ctx context.Context, entity, fingerprint string) ([]byte, bool)

	// Set stores a payload under the key for the given TTL
	Set(ctx context.Context, entity, fingerprint string, payload []byte, ttl time.Duration) error

	// Invalidate drops every cached page of the entity kind
	Invalidate(ctx context.Context, entity string) error
}
