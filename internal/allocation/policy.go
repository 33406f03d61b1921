package allocation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Policy bounds the cost of seed and nearest-neighbor searches.
//
// Searches are exhaustive while the unassigned pool holds at most
// ExactPoolLimit orders. Above that, they only look at a prefix of the pool
// in input order:
//   - nearest search examines the first NearestSample unassigned orders;
//   - seed search examines the first SeedSample unassigned orders as
//     candidates;
//   - each density count compares a candidate against the first
//     NeighborSample unassigned orders once the pool is larger than that.
//
// The prefix is deterministic, so runs are reproducible, but for large pools
// the chosen seed and "nearest" order are approximations of the true densest
// and nearest orders.
type Policy struct {
	ExactPoolLimit  int
	NearestSample   int
	SeedSample      int
	NeighborSample  int
	DensityRadiusKm float64
}

// DefaultPolicy returns the thresholds the allocation service has always used.
func DefaultPolicy() Policy {
	return Policy{
		ExactPoolLimit:  50,
		NearestSample:   100,
		SeedSample:      50,
		NeighborSample:  100,
		DensityRadiusKm: 5.0,
	}
}

func (p Policy) Validate() error {
	var errs []error
	if p.ExactPoolLimit < 1 {
		errs = append(errs, fmt.Errorf("exact pool limit must be >= 1, got %d", p.ExactPoolLimit))
	}
	if p.NearestSample < 1 {
		errs = append(errs, fmt.Errorf("nearest sample must be >= 1, got %d", p.NearestSample))
	}
	if p.SeedSample < 1 {
		errs = append(errs, fmt.Errorf("seed sample must be >= 1, got %d", p.SeedSample))
	}
	if p.NeighborSample < 1 {
		errs = append(errs, fmt.Errorf("neighbor sample must be >= 1, got %d", p.NeighborSample))
	}
	if !(p.DensityRadiusKm > 0) || math.IsInf(p.DensityRadiusKm, 0) {
		errs = append(errs, fmt.Errorf("density radius must be a finite number > 0, got %v", p.DensityRadiusKm))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid allocation policy: %w", errors.Join(errs...))
	}
	return nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy replaces the default search policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithClock replaces time.Now for runtime measurement.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}
