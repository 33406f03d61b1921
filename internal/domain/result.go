package domain

import "math"

// UnallocatableReason explains why an order can never join a trip.
type UnallocatableReason string

const (
	ReasonInvalidWeight UnallocatableReason = "invalid_weight"
	ReasonOverCapacity  UnallocatableReason = "over_capacity"
)

// Rejection pairs an unallocatable order id with its reason.
type Rejection struct {
	OrderID int64
	Reason  UnallocatableReason
}

// Metrics summarizes one allocation run. Values are full precision;
// use Rounded for presentation.
type Metrics struct {
	TripCount                 int
	AverageUtilizationPercent float64
	TotalDistanceKm           float64
	RuntimeSeconds            float64
}

// Rounded returns a copy with percentages and distances at 2 decimals and
// runtime at 4 decimals.
func (m Metrics) Rounded() Metrics {
	return Metrics{
		TripCount:                 m.TripCount,
		AverageUtilizationPercent: Round(m.AverageUtilizationPercent, 2),
		TotalDistanceKm:           Round(m.TotalDistanceKm, 2),
		RuntimeSeconds:            Round(m.RuntimeSeconds, 4),
	}
}

// AllocationResult is everything one run produces. It is built fresh per run
// and owned by the caller.
type AllocationResult struct {
	VehicleCapacityKg     float64
	Trips                 []*Trip
	UnallocatableOrderIDs []int64
	Rejections            []Rejection
	Metrics               Metrics
}

// Round x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
