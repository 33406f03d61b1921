package handlers

import (
	"net/http"
	"time"

	"trip-allocation-service/internal/allocation"
	"trip-allocation-service/internal/api/dto"
	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/ports"
	"trip-allocation-service/internal/services"
)

type AllocationHandler struct {
	Repo               ports.OrderRepository
	Cache              ports.AllocationCache
	DefaultCapacityKg  float64
	DefaultDays        int
	DefaultLimit       int
	MaxParallelBatches int
	Now                func() time.Time
}

// Allocate groups orders into trips. Orders come from the request body when
// given, otherwise from the store over the lookback window.
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.AllocationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fromStore := req.Orders == nil
	if req.FetchFromDB != nil {
		fromStore = *req.FetchFromDB
	}
	if fromStore && req.Orders != nil {
		writeError(w, r, http.StatusBadRequest, "orders must be omitted when fetch_from_db is true")
		return
	}

	capacity := h.DefaultCapacityKg
	if req.VehicleCapacityKg != nil {
		capacity = *req.VehicleCapacityKg
	}
	days := h.DefaultDays
	if req.Days != nil {
		days = *req.Days
	}
	limit := h.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	svcReq := services.AllocateOrdersRequest{
		VehicleCapacityKg: capacity,
		Orders:            toRecords(req.Orders),
		FromStore:         fromStore,
		Query:             ports.OrderQuery{Since: since(h.Now, days), Limit: limit},
	}

	out, err := services.AllocateOrders(r.Context(), svcReq, h.Repo, h.Cache)
	if err != nil {
		noOrders := http.StatusBadRequest
		if fromStore {
			noOrders = http.StatusNotFound
		}
		writeServiceError(w, r, "allocations.Allocate", err, noOrders)
		return
	}

	res := newAllocationResponse(out.Result)
	res.Source = string(out.Source)
	res.Cached = out.Cached
	writeJSON(w, r, http.StatusOK, res)
}

// AllocateBatches runs several independent inline batches concurrently.
func (h *AllocationHandler) AllocateBatches(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	batches := make([]allocation.Batch, 0, len(req.Batches))
	for _, b := range req.Batches {
		batches = append(batches, allocation.Batch{
			Name:              b.Name,
			VehicleCapacityKg: b.VehicleCapacityKg,
			Orders:            toRecords(b.Orders),
		})
	}

	results, err := services.AllocateBatches(r.Context(), batches, h.MaxParallelBatches)
	if err != nil {
		writeServiceError(w, r, "allocations.AllocateBatches", err, http.StatusBadRequest)
		return
	}

	res := dto.ListBatchResponse{Batches: make([]dto.BatchResponse, 0, len(results))}
	for _, br := range results {
		ar := newAllocationResponse(br.Result)
		ar.Source = string(services.SourceInline)
		res.Batches = append(res.Batches, dto.BatchResponse{Name: br.Name, AllocationResponse: ar})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toRecords(in []dto.OrderInput) []domain.OrderRecord {
	if in == nil {
		return nil
	}
	out := make([]domain.OrderRecord, len(in))
	for i, o := range in {
		out[i] = domain.OrderRecord{
			OrderID:       o.OrderID,
			Latitude:      o.Latitude,
			Longitude:     o.Longitude,
			Pincode:       o.Pincode,
			TotalWeightKg: o.TotalWeightKg,
		}
	}
	return out
}

// newAllocationResponse rounds for presentation: 2 decimals for weights,
// distances and percentages, 4 for runtime.
func newAllocationResponse(res *domain.AllocationResult) dto.AllocationResponse {
	m := res.Metrics.Rounded()

	out := dto.AllocationResponse{
		VehicleCapacityKg:   res.VehicleCapacityKg,
		Trips:               make([]dto.TripResponse, 0, len(res.Trips)),
		UnallocatableOrders: append([]int64{}, res.UnallocatableOrderIDs...),
		Rejections:          make([]dto.RejectionResponse, 0, len(res.Rejections)),
		Metrics: dto.MetricsResponse{
			NumberOfTrips:             m.TripCount,
			AverageUtilizationPercent: m.AverageUtilizationPercent,
			TotalDistanceKm:           m.TotalDistanceKm,
			RuntimeSeconds:            m.RuntimeSeconds,
		},
	}

	for _, t := range res.Trips {
		out.Trips = append(out.Trips, dto.TripResponse{
			TripID:             t.TripID,
			Orders:             t.OrderIDs(),
			TotalWeight:        domain.Round(t.TotalWeightKg, 2),
			RouteDistanceKm:    domain.Round(t.RouteDistanceKm, 2),
			UtilizationPercent: domain.Round(t.UtilizationPercent(res.VehicleCapacityKg), 2),
		})
	}
	for _, rj := range res.Rejections {
		out.Rejections = append(out.Rejections, dto.RejectionResponse{OrderID: rj.OrderID, Reason: string(rj.Reason)})
	}

	return out
}
