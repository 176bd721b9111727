package handlers

import (
	"net/http"
	"strings"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/ports"
)

// GeocodeHandler resolves place names to coordinates.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

// Lookup handles GET /v1/geocoding?name=.
func (h *GeocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	loc, err := h.Geocoder.Lookup(r.Context(), name)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "place not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Name:    loc.Name,
		Lat:     loc.Latitude,
		Lon:     loc.Longitude,
		Address: loc.Address,
	})
}
