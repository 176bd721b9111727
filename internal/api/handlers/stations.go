package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

const defaultSearchRadiusKm = 25.0

// StationHandler exposes read-only charging-station queries.
type StationHandler struct {
	Searcher ports.StationSearcher
}

// List handles GET /v1/charging-stations?lat=&lon=&radius=&connector=.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lon must be a number")
		return
	}

	radius := defaultSearchRadiusKm
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			writeError(w, r, http.StatusBadRequest, "radius must be a positive number")
			return
		}
	}

	center := domain.Location{Latitude: lat, Longitude: lon}
	if err := center.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	found, err := h.Searcher.SearchRadius(r.Context(), center, radius, q.Get("connector"))
	if err != nil {
		logrus.WithError(err).Error("station search failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStationsResponse{
		Stations: make([]dto.StationResponse, 0, len(found)),
	}
	for _, st := range found {
		connectors := make([]dto.ConnectorResponse, 0, len(st.Connectors))
		for _, c := range st.Connectors {
			connectors = append(connectors, dto.ConnectorResponse{
				ID:      c.ID,
				Name:    c.Name,
				PowerKW: c.PowerKW,
			})
		}

		res.Stations = append(res.Stations, dto.StationResponse{
			ID:         st.ID,
			Name:       st.Name,
			Lat:        st.Location.Latitude,
			Lon:        st.Location.Longitude,
			Operator:   st.Operator,
			Available:  st.Available,
			Connectors: connectors,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
