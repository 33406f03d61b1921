package allocation

import (
	"fmt"
	"math"

	"trip-allocation-service/internal/domain"
)

// Preprocess validates raw records and splits them into orders that can join
// a trip and orders that never can.
//
// A record with missing fields, a non-finite or off-planet position, a
// non-finite weight, or an id already seen earlier in the batch fails the
// whole batch with a *domain.InputError. Otherwise a weight <= 0 or a weight
// above capacityKg routes the order to the rejections, in input order.
func Preprocess(records []domain.OrderRecord, capacityKg float64) ([]domain.Order, []domain.Rejection, error) {
	if !validCapacity(capacityKg) {
		return nil, nil, fmt.Errorf("preprocess: capacity=%v: %w", capacityKg, domain.ErrInvalidCapacity)
	}

	var fieldErrs []domain.FieldError
	seen := make(map[int64]int, len(records))
	for i, r := range records {
		fieldErrs = append(fieldErrs, r.Check(i)...)
		if r.OrderID == nil {
			continue
		}
		id := *r.OrderID
		if first, dup := seen[id]; dup {
			fieldErrs = append(fieldErrs, domain.FieldError{
				Index:   i,
				OrderID: &id,
				Field:   "order_id",
				Reason:  fmt.Sprintf("duplicates record #%d", first),
			})
			continue
		}
		seen[id] = i
	}
	if len(fieldErrs) > 0 {
		return nil, nil, fmt.Errorf("preprocess: %w", &domain.InputError{Fields: fieldErrs})
	}

	valid := make([]domain.Order, 0, len(records))
	var rejected []domain.Rejection
	for _, r := range records {
		o := r.Order()
		switch {
		case o.TotalWeightKg <= 0:
			rejected = append(rejected, domain.Rejection{OrderID: o.OrderID, Reason: domain.ReasonInvalidWeight})
		case o.TotalWeightKg > capacityKg:
			rejected = append(rejected, domain.Rejection{OrderID: o.OrderID, Reason: domain.ReasonOverCapacity})
		default:
			valid = append(valid, o)
		}
	}

	return valid, rejected, nil
}

func validCapacity(c float64) bool {
	return c > 0 && !math.IsInf(c, 0)
}
