package ports

import (
	"context"
	"time"

	"trip-allocation-service/internal/domain"
)

// Filter for fetching recent orders.
type OrderQuery struct {
	// Only orders created at or after Since. Zero means no lower bound.
	Since time.Time
	// Maximum number of rows. Zero or negative means no limit.
	Limit int
}

// Port: a boundary for retrieving raw order records from a data source.
//
// Records are returned as stored, newest first; nullable columns surface as
// absent fields so the allocation engine can report them as malformed.
type OrderRepository interface {
	ListOrders(ctx context.Context, q OrderQuery) ([]domain.OrderRecord, error)
}
