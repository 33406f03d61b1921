package allocation

import "trip-allocation-service/internal/domain"

// selectSeed picks the order that anchors the next trip: the candidate with
// the most other unassigned orders within DensityRadiusKm. Ties go to the
// candidate that comes first in input order. The pool must not be empty.
func selectSeed(p *pool, policy Policy) int {
	candidateLimit := 0
	if p.Len() > policy.ExactPoolLimit {
		candidateLimit = policy.SeedSample
	}

	best, bestCount := none, -1
	p.scan(candidateLimit, func(i int) {
		if n := countNeighbors(p, i, policy); n > bestCount {
			best, bestCount = i, n
		}
	})

	return best
}

// countNeighbors counts unassigned orders other than i within the density
// radius. Once the pool exceeds NeighborSample, only that many orders from
// the front of the pool are compared.
func countNeighbors(p *pool, i int, policy Policy) int {
	sampleLimit := 0
	if p.Len() > policy.NeighborSample {
		sampleLimit = policy.NeighborSample
	}

	origin := p.order(i)
	count := 0
	p.scan(sampleLimit, func(j int) {
		if j == i {
			return
		}
		if domain.HaversineKm(origin.Coords(), p.order(j).Coords()) <= policy.DensityRadiusKm {
			count++
		}
	})
	return count
}
