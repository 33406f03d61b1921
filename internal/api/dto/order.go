package dto

// Order fields are pointers so that absent values reach the engine as
// missing instead of zero.
type OrderInput struct {
	OrderID       *int64   `json:"order_id"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Pincode       *string  `json:"pincode"`
	TotalWeightKg *float64 `json:"total_weight_kg"`
}

type OrderResponse struct {
	OrderID       int64    `json:"order_id"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Pincode       *string  `json:"pincode"`
	TotalWeightKg *float64 `json:"total_weight_kg"`
}

type ListOrdersResponse struct {
	Days   int             `json:"days"`
	Count  int             `json:"count"`
	Orders []OrderResponse `json:"orders"`
}
