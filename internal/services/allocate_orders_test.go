package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-allocation-service/internal/allocation"
	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/ports"
)

type fakeRepo struct {
	records []domain.OrderRecord
	err     error
	got     ports.OrderQuery
}

func (f *fakeRepo) ListOrders(_ context.Context, q ports.OrderQuery) ([]domain.OrderRecord, error) {
	f.got = q
	return f.records, f.err
}

type memCache struct {
	mu     sync.Mutex
	m      map[string]*domain.AllocationResult
	getErr error
	putErr error
	puts   int
}

func newMemCache() *memCache { return &memCache{m: map[string]*domain.AllocationResult{}} }

func (c *memCache) Get(_ context.Context, key string) (*domain.AllocationResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memCache) Put(_ context.Context, key string, res *domain.AllocationResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.m[key] = res
	return nil
}

func (c *memCache) Stats() ports.CacheStats { return ports.CacheStats{} }

func sampleRecords() []domain.OrderRecord {
	return []domain.OrderRecord{
		domain.NewOrderRecord(1, 17.400, 78.400, "500001", 40),
		domain.NewOrderRecord(2, 17.401, 78.401, "500001", 40),
		domain.NewOrderRecord(3, 17.402, 78.402, "500001", 40),
		domain.NewOrderRecord(4, 17.500, 78.500, "500002", 150),
	}
}

func TestAllocateOrdersInline(t *testing.T) {
	out, err := AllocateOrders(context.Background(), AllocateOrdersRequest{
		VehicleCapacityKg: 100,
		Orders:            sampleRecords(),
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, SourceInline, out.Source)
	assert.False(t, out.Cached)
	assert.Len(t, out.Result.Trips, 2)
	assert.Equal(t, []int64{4}, out.Result.UnallocatableOrderIDs)
}

func TestAllocateOrdersFromStore(t *testing.T) {
	repo := &fakeRepo{records: sampleRecords()}
	q := ports.OrderQuery{Limit: 25}

	out, err := AllocateOrders(context.Background(), AllocateOrdersRequest{
		VehicleCapacityKg: 200,
		FromStore:         true,
		Query:             q,
	}, repo, nil)
	require.NoError(t, err)

	assert.Equal(t, q, repo.got)
	assert.Equal(t, SourceStore, out.Source)
	require.Len(t, out.Result.Trips, 2)
	assert.Equal(t, []int64{1, 2, 3}, out.Result.Trips[0].OrderIDs())
	assert.Equal(t, []int64{4}, out.Result.Trips[1].OrderIDs())
}

func TestAllocateOrdersEmptySources(t *testing.T) {
	_, err := AllocateOrders(context.Background(), AllocateOrdersRequest{VehicleCapacityKg: 100}, nil, nil)
	assert.ErrorIs(t, err, ErrNoOrders)

	_, err = AllocateOrders(context.Background(), AllocateOrdersRequest{VehicleCapacityKg: 100, FromStore: true}, &fakeRepo{}, nil)
	assert.ErrorIs(t, err, ErrNoOrders)
	assert.Contains(t, err.Error(), "source=db")
}

func TestAllocateOrdersErrors(t *testing.T) {
	_, err := AllocateOrders(context.Background(), AllocateOrdersRequest{VehicleCapacityKg: 0, Orders: sampleRecords()}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	boom := errors.New("connection reset")
	_, err = AllocateOrders(context.Background(), AllocateOrdersRequest{VehicleCapacityKg: 100, FromStore: true}, &fakeRepo{err: boom}, nil)
	assert.ErrorIs(t, err, boom)

	bad := sampleRecords()
	bad[1].Latitude = nil
	_, err = AllocateOrders(context.Background(), AllocateOrdersRequest{VehicleCapacityKg: 100, Orders: bad}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedOrder)
}

func TestAllocateOrdersUsesCache(t *testing.T) {
	cache := newMemCache()
	req := AllocateOrdersRequest{VehicleCapacityKg: 100, Orders: sampleRecords()}

	first, err := AllocateOrders(context.Background(), req, nil, cache)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, cache.puts)

	second, err := AllocateOrders(context.Background(), req, nil, cache)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Same(t, first.Result, second.Result)
	assert.Equal(t, 1, cache.puts)
}

func TestAllocateOrdersIgnoresCacheFailures(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	cache.putErr = errors.New("redis down")

	out, err := AllocateOrders(context.Background(), AllocateOrdersRequest{VehicleCapacityKg: 100, Orders: sampleRecords()}, nil, cache)
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Len(t, out.Result.Trips, 2)
}

func TestAllocationKey(t *testing.T) {
	p := allocation.DefaultPolicy()
	recs := sampleRecords()
	k := AllocationKey(p, 100, recs)

	assert.Equal(t, k, AllocationKey(p, 100, sampleRecords()))
	assert.Contains(t, k, cacheKeyPrefix)
	assert.NotEqual(t, k, AllocationKey(p, 120, recs), "capacity is part of the key")
	assert.NotEqual(t, k, AllocationKey(p, 100, []domain.OrderRecord{recs[1], recs[0], recs[2], recs[3]}), "record order is part of the key")

	p2 := p
	p2.DensityRadiusKm = 3
	assert.NotEqual(t, k, AllocationKey(p2, 100, recs), "policy is part of the key")

	missing := domain.NewOrderRecord(1, 17.4, 78.4, "500001", 10)
	missing.Pincode = nil
	assert.NotEqual(t,
		AllocationKey(p, 100, []domain.OrderRecord{domain.NewOrderRecord(1, 17.4, 78.4, "", 10)}),
		AllocationKey(p, 100, []domain.OrderRecord{missing}),
		"absent and empty pincode differ",
	)
}

func TestAllocateBatches(t *testing.T) {
	batches := []allocation.Batch{
		{Name: "van", VehicleCapacityKg: 50, Orders: sampleRecords()},
		{Name: "truck", VehicleCapacityKg: 500, Orders: sampleRecords()},
	}

	res, err := AllocateBatches(context.Background(), batches, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Len(t, res[0].Result.Trips, 3)
	assert.Len(t, res[1].Result.Trips, 1)

	_, err = AllocateBatches(context.Background(), nil, 2)
	assert.ErrorIs(t, err, ErrNoOrders)

	_, err = AllocateBatches(context.Background(), []allocation.Batch{batches[0], batches[0]}, 2)
	assert.ErrorIs(t, err, ErrDuplicateBatch)
}
