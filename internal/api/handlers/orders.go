package handlers

import (
	"net/http"
	"strconv"
	"time"

	"trip-allocation-service/internal/api/dto"
	"trip-allocation-service/internal/platform/obs"
	"trip-allocation-service/internal/ports"
)

// OrderHandler exposes read-only order retrieval.
type OrderHandler struct {
	Repo         ports.OrderRepository
	DefaultDays  int
	DefaultLimit int
	Now          func() time.Time
}

type listOrdersQuery struct {
	Days  int `json:"days" validate:"min=1,max=365"`
	Limit int `json:"limit" validate:"min=1,max=10000"`
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	q := listOrdersQuery{Days: h.DefaultDays, Limit: h.DefaultLimit}
	for name, dst := range map[string]*int{"days": &q.Days, "limit": &q.Limit} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, name+" must be an integer")
			return
		}
		*dst = v
	}
	if !validateStruct(w, r, &q) {
		return
	}

	records, err := h.Repo.ListOrders(r.Context(), ports.OrderQuery{
		Since: since(h.Now, q.Days),
		Limit: q.Limit,
	})
	if err != nil {
		obs.Errorf("req_id=%s op=orders.List err=%q", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrdersResponse{
		Days:   q.Days,
		Count:  len(records),
		Orders: make([]dto.OrderResponse, 0, len(records)),
	}
	for _, rec := range records {
		o := dto.OrderResponse{
			Latitude:      rec.Latitude,
			Longitude:     rec.Longitude,
			Pincode:       rec.Pincode,
			TotalWeightKg: rec.TotalWeightKg,
		}
		if rec.OrderID != nil {
			o.OrderID = *rec.OrderID
		}
		res.Orders = append(res.Orders, o)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func since(now func() time.Time, days int) time.Time {
	if now == nil {
		now = time.Now
	}
	return now().AddDate(0, 0, -days)
}
