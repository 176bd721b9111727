package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
)

type mockSearcher struct {
	stations []domain.Station
	err      error

	radius    float64
	connector string
}

func (m *mockSearcher) SearchRadius(ctx context.Context, center domain.Location, radiusKm float64, connectorID string) ([]domain.Station, error) {
	m.radius = radiusKm
	m.connector = connectorID
	return m.stations, m.err
}

func TestStationList(t *testing.T) {
	searcher := &mockSearcher{stations: []domain.Station{{
		ID:        "berlin-1",
		Name:      "Berlin Mitte",
		Location:  domain.Location{Latitude: 52.52, Longitude: 13.40},
		Operator:  "Ionity",
		Available: true,
		Connectors: []domain.Connector{
			{ID: "ccs", Name: "CCS", PowerKW: 150},
		},
	}}}
	h := &StationHandler{Searcher: searcher}

	req := httptest.NewRequest(http.MethodGet, "/v1/charging-stations?lat=52.5&lon=13.4&radius=10&connector=ccs", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if searcher.radius != 10 || searcher.connector != "ccs" {
		t.Errorf("search called with radius=%v connector=%q", searcher.radius, searcher.connector)
	}

	var res dto.ListStationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Stations) != 1 || res.Stations[0].ID != "berlin-1" {
		t.Errorf("stations = %+v", res.Stations)
	}
	if len(res.Stations) == 1 && len(res.Stations[0].Connectors) != 1 {
		t.Errorf("connectors = %+v", res.Stations[0].Connectors)
	}
}

func TestStationListDefaultRadius(t *testing.T) {
	searcher := &mockSearcher{}
	h := &StationHandler{Searcher: searcher}

	req := httptest.NewRequest(http.MethodGet, "/v1/charging-stations?lat=52.5&lon=13.4", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if searcher.radius != defaultSearchRadiusKm {
		t.Errorf("radius = %v, want default %v", searcher.radius, defaultSearchRadiusKm)
	}
}

func TestStationListBadQuery(t *testing.T) {
	h := &StationHandler{Searcher: &mockSearcher{}}

	cases := map[string]string{
		"MissingLat":     "/v1/charging-stations?lon=13.4",
		"BadLon":         "/v1/charging-stations?lat=52.5&lon=abc",
		"NegativeRadius": "/v1/charging-stations?lat=52.5&lon=13.4&radius=-1",
		"OutOfRangeLat":  "/v1/charging-stations?lat=95&lon=13.4",
	}

	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()
			h.List(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
