package allocation

import (
	"time"

	"trip-allocation-service/internal/domain"
)

// computeMetrics reduces finished trips into run-level statistics.
// Runtime is filled in by the caller once the whole run has finished.
func computeMetrics(trips []*domain.Trip, capacityKg float64) domain.Metrics {
	if len(trips) == 0 {
		return domain.Metrics{}
	}

	var totalDistance, totalWeight float64
	for _, t := range trips {
		totalDistance += t.RouteDistanceKm
		totalWeight += t.TotalWeightKg
	}

	return domain.Metrics{
		TripCount:                 len(trips),
		AverageUtilizationPercent: totalWeight / (float64(len(trips)) * capacityKg) * 100,
		TotalDistanceKm:           totalDistance,
	}
}

func secondsSince(start, end time.Time) float64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d.Seconds()
}
