package dto

type AllocationRequest struct {
	Orders            []OrderInput `json:"orders" validate:"omitempty,max=20000"`
	VehicleCapacityKg *float64     `json:"vehicle_capacity_kg" validate:"omitempty,gt=0"`
	FetchFromDB       *bool        `json:"fetch_from_db"`
	Days              *int         `json:"days" validate:"omitempty,min=1,max=365"`
	Limit             *int         `json:"limit" validate:"omitempty,min=1,max=10000"`
}

type TripResponse struct {
	TripID             int     `json:"trip_id"`
	Orders             []int64 `json:"orders"`
	TotalWeight        float64 `json:"total_weight"`
	RouteDistanceKm    float64 `json:"route_distance_km"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

type RejectionResponse struct {
	OrderID int64  `json:"order_id"`
	Reason  string `json:"reason"`
}

type MetricsResponse struct {
	NumberOfTrips             int     `json:"number_of_trips"`
	AverageUtilizationPercent float64 `json:"average_utilization_percent"`
	TotalDistanceKm           float64 `json:"total_distance_km"`
	RuntimeSeconds            float64 `json:"runtime_seconds"`
}

type AllocationResponse struct {
	VehicleCapacityKg   float64             `json:"vehicle_capacity_kg"`
	Source              string              `json:"source"`
	Cached              bool                `json:"cached"`
	Trips               []TripResponse      `json:"trips"`
	UnallocatableOrders []int64             `json:"unallocatable_orders"`
	Rejections          []RejectionResponse `json:"rejections"`
	Metrics             MetricsResponse     `json:"metrics"`
}

type BatchInput struct {
	Name              string       `json:"name" validate:"required,max=64"`
	VehicleCapacityKg float64      `json:"vehicle_capacity_kg" validate:"required,gt=0"`
	Orders            []OrderInput `json:"orders" validate:"max=20000"`
}

type BatchRequest struct {
	Batches []BatchInput `json:"batches" validate:"required,min=1,max=32,dive"`
}

type BatchResponse struct {
	Name string `json:"name"`
	AllocationResponse
}

type ListBatchResponse struct {
	Batches []BatchResponse `json:"batches"`
}
