package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCapacity  = errors.New("vehicle capacity must be a finite number greater than zero")
	ErrMalformedOrder   = errors.New("malformed order record")
	ErrCapacityExceeded = errors.New("trip capacity exceeded")
)

// FieldError describes one structural problem in one input record.
type FieldError struct {
	Index   int    `json:"index"`
	OrderID *int64 `json:"order_id,omitempty"`
	Field   string `json:"field"`
	Reason  string `json:"reason"`
}

func (f FieldError) String() string {
	if f.OrderID != nil {
		return fmt.Sprintf("record #%d (order_id=%d): %s %s", f.Index, *f.OrderID, f.Field, f.Reason)
	}
	return fmt.Sprintf("record #%d: %s %s", f.Index, f.Field, f.Reason)
}

// InputError is returned when one or more input records are malformed.
// It unwraps to ErrMalformedOrder.
type InputError struct {
	Fields []FieldError
}

func (e *InputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", ErrMalformedOrder, strings.Join(parts, "; "))
}

func (e *InputError) Unwrap() error { return ErrMalformedOrder }
