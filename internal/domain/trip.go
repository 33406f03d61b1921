package domain

import "fmt"

// Trip is one vehicle load: a group of orders that fits within capacity.
// Orders are kept in assembly order (seed first, then each accepted
// candidate), not in driving order.
type Trip struct {
	TripID          int
	Orders          []Order
	TotalWeightKg   float64
	RouteDistanceKm float64
}

// NewTrip opens a trip anchored on seed.
func NewTrip(id int, seed Order) *Trip {
	return &Trip{
		TripID:        id,
		Orders:        []Order{seed},
		TotalWeightKg: seed.TotalWeightKg,
	}
}

// Fits reports whether o can join the trip without exceeding capacityKg.
func (t *Trip) Fits(o Order, capacityKg float64) bool {
	return t.TotalWeightKg+o.TotalWeightKg <= capacityKg
}

// Load a single order onto the trip. The trip is left untouched when the
// order would exceed capacityKg.
func (t *Trip) Load(o Order, capacityKg float64) error {
	if !t.Fits(o, capacityKg) {
		return fmt.Errorf(
			"load trip %d: order %d (%.2fkg) over %.2f/%.2fkg: %w",
			t.TripID, o.OrderID, o.TotalWeightKg, t.TotalWeightKg, capacityKg, ErrCapacityExceeded,
		)
	}
	t.Orders = append(t.Orders, o)
	t.TotalWeightKg += o.TotalWeightKg
	return nil
}

// Centroid of the orders currently on the trip.
func (t *Trip) Centroid() Coordinates {
	points := make([]Coordinates, len(t.Orders))
	for i, o := range t.Orders {
		points[i] = o.Coords()
	}
	return Centroid(points)
}

func (t *Trip) OrderIDs() []int64 {
	ids := make([]int64, len(t.Orders))
	for i, o := range t.Orders {
		ids[i] = o.OrderID
	}
	return ids
}

// UtilizationPercent is the share of capacityKg used by the trip.
func (t *Trip) UtilizationPercent(capacityKg float64) float64 {
	if capacityKg <= 0 {
		return 0
	}
	return t.TotalWeightKg / capacityKg * 100
}
