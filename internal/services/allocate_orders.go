package services

import (
	"context"
	"errors"
	"fmt"

	"trip-allocation-service/internal/allocation"
	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/platform/obs"
	"trip-allocation-service/internal/ports"
)

// ErrNoOrders is returned when there is nothing to allocate.
var ErrNoOrders = errors.New("no orders to allocate")

type Source string

const (
	SourceInline Source = "inline"
	SourceStore  Source = "db"
)

type AllocateOrdersRequest struct {
	VehicleCapacityKg float64
	// Orders are allocated as given when FromStore is false.
	Orders    []domain.OrderRecord
	FromStore bool
	Query     ports.OrderQuery
}

type Allocation struct {
	Result *domain.AllocationResult
	Source Source
	Cached bool
}

// AllocateOrders loads the orders (from the repository or the request), then
// returns a cached result when one exists or runs the engine and caches it.
// cache may be nil. Cache failures are logged and never fail the request.
func AllocateOrders(
	ctx context.Context,
	req AllocateOrdersRequest,
	repo ports.OrderRepository,
	cache ports.AllocationCache,
	opts ...allocation.Option,
) (*Allocation, error) {
	engine, err := allocation.NewEngine(req.VehicleCapacityKg, opts...)
	if err != nil {
		return nil, fmt.Errorf("allocate orders: %w", err)
	}

	records, source := req.Orders, SourceInline
	if req.FromStore {
		if repo == nil {
			return nil, errors.New("allocate orders: no order repository configured")
		}
		records, err = repo.ListOrders(ctx, req.Query)
		if err != nil {
			return nil, fmt.Errorf("allocate orders: list orders: %w", err)
		}
		source = SourceStore
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("allocate orders: source=%s: %w", source, ErrNoOrders)
	}

	var key string
	if cache != nil {
		key = AllocationKey(engine.Policy(), engine.CapacityKg(), records)

		res, ok, err := cache.Get(ctx, key)
		switch {
		case err != nil:
			obs.Warnf("req_id=%s op=allocate.cache key=%s err=%q", obs.RequestID(ctx), key, err)
		case ok:
			obs.Infof("req_id=%s op=allocate.cache key=%s hit=true", obs.RequestID(ctx), key)
			return &Allocation{Result: res, Source: source, Cached: true}, nil
		}
	}

	res, err := engine.Run(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("allocate orders: %w", err)
	}

	if cache != nil {
		if err := cache.Put(ctx, key, res); err != nil {
			obs.Warnf("req_id=%s op=allocate.cache key=%s err=%q", obs.RequestID(ctx), key, err)
		}
	}

	return &Allocation{Result: res, Source: source}, nil
}
