package allocation

import (
	"math"

	"trip-allocation-service/internal/domain"
)

// nearestTo returns the unassigned order closest to target. Above
// ExactPoolLimit only the first NearestSample orders of the pool are
// examined. Equal distances keep the earlier order. ok is false when no
// candidate was examined.
func nearestTo(p *pool, target domain.Coordinates, policy Policy) (idx int, ok bool) {
	limit := 0
	if p.Len() > policy.ExactPoolLimit {
		limit = policy.NearestSample
	}

	best, bestDist := none, math.Inf(1)
	p.scan(limit, func(i int) {
		if d := domain.HaversineKm(target, p.order(i).Coords()); d < bestDist {
			best, bestDist = i, d
		}
	})

	return best, best != none
}

// buildTrip grows one trip from a fresh seed.
//
// The trip absorbs the order nearest to its running centroid for as long as
// that order fits. The first nearest order that does not fit closes the trip;
// other candidates are not tried.
func buildTrip(id int, p *pool, capacityKg float64, policy Policy) *domain.Trip {
	seed := selectSeed(p, policy)
	p.remove(seed)
	trip := domain.NewTrip(id, p.order(seed))

	for p.Len() > 0 {
		i, ok := nearestTo(p, trip.Centroid(), policy)
		if !ok {
			break
		}
		if err := trip.Load(p.order(i), capacityKg); err != nil {
			break
		}
		p.remove(i)
	}

	return trip
}

// cluster partitions orders into trips numbered from 1 until every order is
// placed. Every order must individually fit capacityKg.
func cluster(orders []domain.Order, capacityKg float64, policy Policy) []*domain.Trip {
	p := newPool(orders)
	trips := make([]*domain.Trip, 0)
	for id := 1; p.Len() > 0; id++ {
		trips = append(trips, buildTrip(id, p, capacityKg, policy))
	}
	return trips
}
