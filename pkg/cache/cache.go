// Package cache stores computed boards so repeated requests with unchanged
// inputs skip curation and packing.
//
// A [Cache] is a byte store with per-entry TTL. Backends:
//   - [FileCache]: one file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are produced by a [Keyer] from content hashes of the inputs, never
// from user-supplied strings, so any change to the catalog, the preferences
// or the options yields a new key.
package cache

import (
	"context"
	"time"
)

// TTLBoard is how long a computed board stays cached. Boards depend on the
// calendar day, which is part of the key, so the TTL only bounds staleness of
// entries nobody asks for again.
const TTLBoard = time.Hour

// Cache is a key/value byte store with expiration.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero or less stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
