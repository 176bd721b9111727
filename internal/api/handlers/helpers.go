package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"ev-route-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("response encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// planStatus maps planning errors onto HTTP statuses. Client-side problems
// (bad input, no route, unreachable leg) keep their detail; everything else
// collapses to an opaque 5xx.
func planStatus(err error) (int, string) {
	var rangeErr *domain.RangeError
	var lookupErr *domain.LookupError

	switch {
	case errors.Is(err, domain.ErrNonPositiveRange):
		return http.StatusBadRequest, "vehicle_range must be positive"
	case errors.Is(err, domain.ErrNoRoute), errors.Is(err, domain.ErrEmptyRoute):
		return http.StatusNotFound, "no drivable route between the given points"
	case errors.As(err, &rangeErr):
		return http.StatusUnprocessableEntity, rangeErr.Error()
	case errors.As(err, &lookupErr):
		return http.StatusBadGateway, "no usable charging station near the route"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
