// Package cache provides artifact caching for learned networks.
//
// A structure search over a fixed dataset and configuration is fully
// deterministic, so its rendered outputs (DOT text, SVG/PNG bytes) can be
// cached keyed by the dataset content hash plus the search configuration.
// The CLI uses a [FileCache] under the XDG cache directory; [NullCache]
// disables caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ResultKey builds the cache key for a search artifact: the dataset's
// content hash combined with everything that influences the result.
// Components typically include run count, seed, bounds, init policy,
// score type, and output format.
func ResultKey(datasetHash string, components ...any) string {
	return hashKey("result:"+datasetHash, components...)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
