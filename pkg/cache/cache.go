// Package cache stores rendered fragment images between report runs.
//
// Encoding hundreds of anatomical slices dominates report generation time, so
// rendered PNGs are cached keyed by a hash of the plane data and render
// options. Backends: a file cache under the scratch directory (default), a
// Redis cache for shared setups, and a null cache that disables caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 = no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// FragmentKey builds the cache key for one rendered fragment image: a hash of
// the payload content plus the presentation options that shaped it.
func FragmentKey(contentHash string, opts ...any) string {
	data, _ := json.Marshal(opts)
	h := sha256.Sum256(data)
	return fmt.Sprintf("frag:%s:%s", contentHash, hex.EncodeToString(h[:8]))
}
