package services

import (
	"context"
	"errors"
	"fmt"

	"trip-allocation-service/internal/allocation"
)

var ErrDuplicateBatch = errors.New("duplicate batch name")

// AllocateBatches runs independent batches concurrently, at most limit at a
// time. An empty batch list is ErrNoOrders.
func AllocateBatches(
	ctx context.Context,
	batches []allocation.Batch,
	limit int,
	opts ...allocation.Option,
) ([]allocation.BatchResult, error) {
	if len(batches) == 0 {
		return nil, fmt.Errorf("allocate batches: %w", ErrNoOrders)
	}

	seen := make(map[string]struct{}, len(batches))
	for i, b := range batches {
		if b.Name == "" {
			return nil, fmt.Errorf("allocate batches: batch #%d: name is required", i)
		}
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("allocate batches: %w: %q", ErrDuplicateBatch, b.Name)
		}
		seen[b.Name] = struct{}{}
	}

	results, err := allocation.RunBatches(ctx, batches, limit, opts...)
	if err != nil {
		return nil, fmt.Errorf("allocate batches: %w", err)
	}
	return results, nil
}
