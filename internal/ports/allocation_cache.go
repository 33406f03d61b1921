package ports

import (
	"context"

	"trip-allocation-service/internal/domain"
)

// Counters reported by a cache on the health endpoint.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// Port: storage for finished allocation results keyed by a digest of the input.
type AllocationCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (res *domain.AllocationResult, ok bool, err error)
	Put(ctx context.Context, key string, res *domain.AllocationResult) error
	Stats() CacheStats
}
