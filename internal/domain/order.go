package domain

import "math"

// Represents a validated delivery order.
// Identity is OrderID: two orders with the same id are the same order.
// Orders are value records and are never mutated once built.
type Order struct {
	OrderID       int64
	Latitude      float64
	Longitude     float64
	Pincode       string
	TotalWeightKg float64
}

func (o Order) Coords() Coordinates { return Coordinates{Lat: o.Latitude, Lon: o.Longitude} }

// SameAs reports whether o and other denote the same order.
func (o Order) SameAs(other Order) bool { return o.OrderID == other.OrderID }

// OrderRecord is a raw input record as received from an order source.
// Pointer fields distinguish an absent value from a zero value so that
// missing geometry or weight can be reported instead of defaulted.
type OrderRecord struct {
	OrderID       *int64   `json:"order_id"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Pincode       *string  `json:"pincode"`
	TotalWeightKg *float64 `json:"total_weight_kg"`
}

// NewOrderRecord builds a fully populated record.
func NewOrderRecord(id int64, lat, lon float64, pincode string, weightKg float64) OrderRecord {
	return OrderRecord{
		OrderID:       &id,
		Latitude:      &lat,
		Longitude:     &lon,
		Pincode:       &pincode,
		TotalWeightKg: &weightKg,
	}
}

// Check returns every structural problem with the record at position index.
// Weight sign and capacity are routing decisions, not structural problems,
// so they are not checked here.
func (r OrderRecord) Check(index int) []FieldError {
	var errs []FieldError
	add := func(field, reason string) {
		fe := FieldError{Index: index, Field: field, Reason: reason}
		if r.OrderID != nil {
			id := *r.OrderID
			fe.OrderID = &id
		}
		errs = append(errs, fe)
	}

	if r.OrderID == nil {
		add("order_id", "missing")
	}
	if r.Latitude == nil {
		add("latitude", "missing")
	}
	if r.Longitude == nil {
		add("longitude", "missing")
	}
	if r.Latitude != nil && r.Longitude != nil {
		c := Coordinates{Lat: *r.Latitude, Lon: *r.Longitude}
		if !c.Valid() {
			add("coordinates", "not a finite point within latitude [-90,90] and longitude [-180,180]")
		}
	}
	if r.Pincode == nil {
		add("pincode", "missing")
	}
	if r.TotalWeightKg == nil {
		add("total_weight_kg", "missing")
	} else if math.IsNaN(*r.TotalWeightKg) || math.IsInf(*r.TotalWeightKg, 0) {
		add("total_weight_kg", "not a finite number")
	}

	return errs
}

// Order converts a checked record. Callers must run Check first.
func (r OrderRecord) Order() Order {
	return Order{
		OrderID:       *r.OrderID,
		Latitude:      *r.Latitude,
		Longitude:     *r.Longitude,
		Pincode:       *r.Pincode,
		TotalWeightKg: *r.TotalWeightKg,
	}
}
