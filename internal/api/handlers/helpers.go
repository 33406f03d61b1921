package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"trip-allocation-service/internal/api/dto"
	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/platform/obs"
	"trip-allocation-service/internal/services"
)

const maxBodyBytes = 8 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

func allowOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeBody reads exactly one JSON object into dst and validates it.
// It writes the error response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return validateStruct(w, r, dst)
}

func validateStruct(w http.ResponseWriter, r *http.Request, v any) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}

	res := dto.ErrorResponse{Error: "invalid request"}
	for _, fe := range verrs {
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		// Namespace is "<Type>.<json path>"; drop the type.
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		res.Fields = append(res.Fields, dto.FieldProblem{Field: field, Reason: reason})
	}
	writeJSON(w, r, http.StatusBadRequest, res)
	return false
}

// writeServiceError maps allocation errors to HTTP statuses. noOrders is the
// status used for services.ErrNoOrders, which depends on where orders came from.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error, noOrders int) {
	var ie *domain.InputError
	switch {
	case errors.As(err, &ie):
		res := dto.ErrorResponse{Error: domain.ErrMalformedOrder.Error()}
		for _, f := range ie.Fields {
			f := f
			res.Fields = append(res.Fields, dto.FieldProblem{
				Index:   &f.Index,
				OrderID: f.OrderID,
				Field:   f.Field,
				Reason:  f.Reason,
			})
		}
		writeJSON(w, r, http.StatusBadRequest, res)
	case errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, services.ErrDuplicateBatch):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNoOrders):
		writeError(w, r, noOrders, services.ErrNoOrders.Error())
	default:
		obs.Errorf("req_id=%s op=%s err=%q", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
