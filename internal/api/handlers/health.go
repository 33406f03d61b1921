package handlers

import (
	"net/http"

	"trip-allocation-service/internal/ports"
)

type healthResponse struct {
	Status string            `json:"status"`
	Cache  *ports.CacheStats `json:"cache,omitempty"`
}

// HealthHandler is a liveness check that also reports cache counters.
type HealthHandler struct {
	Cache ports.AllocationCache
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	res := healthResponse{Status: "ok"}
	if h.Cache != nil {
		stats := h.Cache.Stats()
		res.Cache = &stats
	}
	writeJSON(w, r, http.StatusOK, res)
}
