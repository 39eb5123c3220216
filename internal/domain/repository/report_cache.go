package repository

import (
	"context"
	"time"
)

// ReportCache stores marshaled report payloads keyed by endpoint and
// parameters. Payloads are kept as raw JSON so repeated hits return
// byte-identical responses. Implementations scope InvalidateAll to their
// own namespace and leave unrelated cached data untouched.
type ReportCache interface {
	// Get returns the cached payload for key, or found=false if the entry
	// is absent or past its expiration instant
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)

	// Set stores the payload, overwriting any existing entry and resetting
	// its TTL
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// InvalidateAll removes every report entry and returns the number of
	// entries removed
	InvalidateAll(ctx context.Context) (int64, error)

	// Close releases any resources held by the cache
	Close() error
}
