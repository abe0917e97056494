// Package cache provides caching for level content and computed timings.
//
// # Architecture
//
// The package separates three concerns:
//
//   - Cache: a byte-oriented store with TTL support. Implementations exist
//     for local files (FileCache), Redis (RedisCache), and a no-op
//     (NullCache).
//   - Keyer: turns domain values (a level source, a content hash) into
//     cache keys. ScopedKeyer prefixes another Keyer for namespace
//     isolation, e.g. per API deployment.
//   - Retry: RetryWithBackoff for transient failures when filling the
//     cache from the network.
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//
//	key := k.TimingsKey(cache.Hash(content))
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // decode data
//	}
//	_ = c.Set(ctx, key, data, cache.TTLTimings)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data stored under key and whether it was present.
	// A missing or expired entry is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// TTLs for the two cached artifact kinds.
const (
	// TTLFetch bounds reuse of level files fetched over HTTP. Remote levels
	// can be re-uploaded under the same URL, so this stays short.
	TTLFetch = 24 * time.Hour

	// TTLTimings bounds cached computation results. Result keys are content
	// hashes, so entries never go stale; the TTL only caps growth.
	TTLTimings = 30 * 24 * time.Hour
)

// Keyer generates cache keys from domain values.
// Implementations must be deterministic: equal inputs yield equal keys.
type Keyer interface {
	// FetchKey is the key for raw level content fetched from a URL.
	FetchKey(url string) string

	// TimingsKey is the key for a computed result, addressed by the content
	// hash of the level text it was computed from.
	TimingsKey(contentHash string) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FetchKey generates a key for HTTP level content.
func (k *DefaultKeyer) FetchKey(url string) string {
	return hashKey("fetch", url)
}

// TimingsKey generates a key for a computed result.
func (k *DefaultKeyer) TimingsKey(contentHash string) string {
	return hashKey("timings", contentHash)
}
