// Package allocation groups weighted, geolocated orders into capacity-bound
// delivery trips with a greedy capacitated spatial clustering pass.
//
// A run has three stages: preprocessing (validation and routing of orders
// that can never fit), clustering (density-seeded trips grown toward their
// centroid), and metrics. Each run is single-threaded, performs no I/O and
// keeps no state between calls; independent runs may execute concurrently
// on separate engines (see RunBatches).
package allocation

import (
	"context"
	"fmt"
	"time"

	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/platform/obs"
)

// Engine runs allocations for one vehicle capacity. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	capacityKg float64
	policy     Policy
	now        func() time.Time
}

// NewEngine returns an engine for vehicles carrying at most capacityKg.
func NewEngine(capacityKg float64, opts ...Option) (*Engine, error) {
	if !validCapacity(capacityKg) {
		return nil, fmt.Errorf("new engine: capacity=%v: %w", capacityKg, domain.ErrInvalidCapacity)
	}

	e := &Engine{
		capacityKg: capacityKg,
		policy:     DefaultPolicy(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.policy.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	return e, nil
}

func (e *Engine) CapacityKg() float64 { return e.capacityKg }

func (e *Engine) Policy() Policy { return e.policy }

// Run allocates one batch of records.
//
// ctx is used for log correlation only: a run never blocks and is not
// cancelled midway. Malformed records fail the run with an error wrapping
// *domain.InputError; every other outcome is expressed in the result.
func (e *Engine) Run(ctx context.Context, records []domain.OrderRecord) (_ *domain.AllocationResult, err error) {
	defer obs.Time(ctx, "allocation.Run")(&err)

	start := e.now()

	valid, rejected, err := Preprocess(records, e.capacityKg)
	if err != nil {
		return nil, fmt.Errorf("allocation run: %w", err)
	}

	trips := cluster(valid, e.capacityKg, e.policy)
	for _, t := range trips {
		t.RouteDistanceKm = RouteDistanceKm(t.Orders)
	}

	metrics := computeMetrics(trips, e.capacityKg)
	metrics.RuntimeSeconds = secondsSince(start, e.now())

	unallocatable := make([]int64, len(rejected))
	for i, r := range rejected {
		unallocatable[i] = r.OrderID
	}

	obs.Infof(
		"req_id=%s op=allocation.Run capacity_kg=%.2f orders=%d trips=%d unallocatable=%d utilization=%.2f%% distance_km=%.2f",
		obs.RequestID(ctx), e.capacityKg, len(records), metrics.TripCount, len(unallocatable),
		metrics.AverageUtilizationPercent, metrics.TotalDistanceKm,
	)

	return &domain.AllocationResult{
		VehicleCapacityKg:     e.capacityKg,
		Trips:                 trips,
		UnallocatableOrderIDs: unallocatable,
		Rejections:            rejected,
		Metrics:               metrics,
	}, nil
}

// Run allocates records for a single capacity with the default policy.
func Run(ctx context.Context, records []domain.OrderRecord, capacityKg float64) (*domain.AllocationResult, error) {
	e, err := NewEngine(capacityKg)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, records)
}
