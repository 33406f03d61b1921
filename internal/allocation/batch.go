package allocation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"trip-allocation-service/internal/domain"
)

// Batch is one independent allocation problem, e.g. one vehicle class or one
// geographic partition.
type Batch struct {
	Name              string
	VehicleCapacityKg float64
	Orders            []domain.OrderRecord
}

type BatchResult struct {
	Name   string
	Result *domain.AllocationResult
}

// RunBatches allocates batches concurrently, at most limit at a time
// (limit <= 0 means no limit). Each batch gets its own Engine, so runs share
// no mutable state. Results keep the order of batches.
//
// The first failing batch stops batches that have not started yet. A batch
// already running is never interrupted; ctx only gates starting new ones.
func RunBatches(ctx context.Context, batches []Batch, limit int, opts ...Option) ([]BatchResult, error) {
	results := make([]BatchResult, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, b := range batches {
		i, b := i, b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("batch %q: not started: %w", b.Name, err)
			}

			e, err := NewEngine(b.VehicleCapacityKg, opts...)
			if err != nil {
				return fmt.Errorf("batch %q: %w", b.Name, err)
			}

			res, err := e.Run(gctx, b.Orders)
			if err != nil {
				return fmt.Errorf("batch %q: %w", b.Name, err)
			}

			results[i] = BatchResult{Name: b.Name, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run batches: %w", err)
	}

	return results, nil
}
