package port

import (
	"context"
	"time"
)

// Cache is the key-value store contract the application depends on. Values
// are plain strings; serialization stays with the caller. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when the key does not
	// exist. Non-nil errors other than ErrMiss indicate transport failures.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. A zero or negative TTL means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and reports how many were actually removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// ErrMiss signals a cache miss so callers can tell it apart from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
