// Package cache stores rendered artifacts behind a small key/value interface.
//
// Four backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: Redis via go-redis, for a shared preview server
//   - [MongoCache]: a MongoDB collection, for deployments that already run one
//   - [NullCache]: never stores anything (caching disabled)
//
// Keys are built by a [Keyer] so every backend sees the same layout:
//
//	artifact:<sha256 of request, kind and format options>
//	blob:<artifact id>
//
// A [ScopedKeyer] prefixes every key, which lets several servers share one
// Redis or Mongo database.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	// TTLArtifact bounds rendered artifacts keyed by request hash.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLBlob bounds artifacts published by the preview server.
	TTLBlob = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
