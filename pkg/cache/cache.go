// Package cache provides a content-addressed store for generated artifacts.
//
// The generate pipeline keys cached output on a hash of its exact inputs
// (catalog documents plus the graph document), so any edit to either
// invalidates the entry naturally and entries never go stale.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves byte blobs by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
