package cache

import (
	"context"
	"time"
)

// NoExpiry stores an entry without a TTL.
const NoExpiry time.Duration = 0

// Store is a key/value store with per-entry expiry.
type Store interface {
	// Get returns the value for key; ok is false when the key is absent or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key. A ttl of NoExpiry keeps it forever.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
