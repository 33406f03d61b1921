package cache

import (
	"go.uber.org/atomic"

	"trip-allocation-service/internal/ports"
)

type counters struct {
	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

func (c *counters) snapshot() ports.CacheStats {
	return ports.CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}
