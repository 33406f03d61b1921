package api

import (
	"net/http"
	"time"

	"trip-allocation-service/internal/api/handlers"
	"trip-allocation-service/internal/ports"
)

// Defaults applied when a request leaves a parameter out.
type Defaults struct {
	VehicleCapacityKg  float64
	LookbackDays       int
	FetchLimit         int
	MaxParallelBatches int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// cache may be nil.
func NewRouter(repo ports.OrderRepository, cache ports.AllocationCache, d Defaults) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Cache: cache}
	orderHandler := &handlers.OrderHandler{
		Repo:         repo,
		DefaultDays:  d.LookbackDays,
		DefaultLimit: d.FetchLimit,
		Now:          time.Now,
	}
	allocHandler := &handlers.AllocationHandler{
		Repo:               repo,
		Cache:              cache,
		DefaultCapacityKg:  d.VehicleCapacityKg,
		DefaultDays:        d.LookbackDays,
		DefaultLimit:       d.FetchLimit,
		MaxParallelBatches: d.MaxParallelBatches,
		Now:                time.Now,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/orders", orderHandler.List)
	mux.HandleFunc("/allocations", allocHandler.Allocate)
	mux.HandleFunc("/allocations/batches", allocHandler.AllocateBatches)

	// Request ids must be in the context before the access log reads them.
	return requestIDMiddleware(loggingMiddleware(mux))
}
