package allocation

import (
	"math"

	"trip-allocation-service/internal/domain"
)

// RouteDistanceKm estimates the driving length of a trip with a greedy
// nearest-neighbor walk.
//
// The walk starts at the first order and repeatedly hops to the closest
// unvisited order, summing hop distances. Equal hops go to the order stored
// first. It is a reporting metric only and never reorders the trip.
func RouteDistanceKm(orders []domain.Order) float64 {
	if len(orders) <= 1 {
		return 0
	}

	visited := make([]bool, len(orders))
	visited[0] = true
	current := orders[0].Coords()
	total := 0.0

	for step := 1; step < len(orders); step++ {
		best, bestDist := none, math.Inf(1)

		// Select next stop by minimum hop distance (greedy step).
		for i, o := range orders {
			if visited[i] {
				continue
			}
			if d := domain.HaversineKm(current, o.Coords()); d < bestDist {
				best, bestDist = i, d
			}
		}

		if best == none {
			break
		}

		total += bestDist
		visited[best] = true
		current = orders[best].Coords()
	}

	return total
}
