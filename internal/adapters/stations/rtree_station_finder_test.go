package stations

import (
	"context"
	"errors"
	"testing"

	"ev-route-service/internal/domain"
)

func testCatalogue() []domain.Station {
	ccs := []domain.Connector{{ID: "ccs", Name: "CCS", PowerKW: 150}}
	type2 := []domain.Connector{{ID: "type2", Name: "Type 2", PowerKW: 22}}

	return []domain.Station{
		{ID: "berlin-1", Name: "Berlin Mitte", Location: domain.Location{Latitude: 52.52, Longitude: 13.40}, Connectors: ccs, Available: true},
		{ID: "berlin-2", Name: "Berlin Sued", Location: domain.Location{Latitude: 52.45, Longitude: 13.38}, Connectors: type2, Available: true},
		{ID: "leipzig-1", Name: "Leipzig", Location: domain.Location{Latitude: 51.34, Longitude: 12.37}, Connectors: ccs, Available: true},
		{ID: "munich-1", Name: "Munich", Location: domain.Location{Latitude: 48.14, Longitude: 11.58}, Connectors: ccs, Available: false},
		{ID: "munich-2", Name: "Munich Ost", Location: domain.Location{Latitude: 48.13, Longitude: 11.60}, Connectors: ccs, Available: true},
	}
}

func TestFindNearest(t *testing.T) {
	finder, err := NewRTreeStationFinder(testCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near := domain.Location{Latitude: 52.50, Longitude: 13.39}
	st, err := finder.FindNearest(context.Background(), near, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ID != "berlin-1" {
		t.Errorf("nearest station = %q, want berlin-1", st.ID)
	}
}

func TestFindNearestConnectorFilter(t *testing.T) {
	finder, err := NewRTreeStationFinder(testCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// From southern Berlin the type2 station is closer, but a CCS filter
	// must skip it.
	near := domain.Location{Latitude: 52.44, Longitude: 13.38}
	st, err := finder.FindNearest(context.Background(), near, "ccs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ID != "berlin-1" {
		t.Errorf("nearest ccs station = %q, want berlin-1", st.ID)
	}
}

func TestFindNearestSkipsUnavailable(t *testing.T) {
	finder, err := NewRTreeStationFinder(testCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// munich-1 is closest to the query but offline; munich-2 must win.
	near := domain.Location{Latitude: 48.14, Longitude: 11.57}
	st, err := finder.FindNearest(context.Background(), near, "ccs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ID != "munich-2" {
		t.Errorf("nearest available station = %q, want munich-2", st.ID)
	}
}

func TestFindNearestNoMatch(t *testing.T) {
	finder, err := NewRTreeStationFinder(testCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = finder.FindNearest(context.Background(), domain.Location{Latitude: 52.5, Longitude: 13.4}, "chademo")
	if err == nil {
		t.Fatal("expected lookup error, got nil")
	}

	var lookupErr *domain.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("error type = %T, want *domain.LookupError", err)
	}
	if lookupErr.Connector != "chademo" {
		t.Errorf("lookup error connector = %q, want chademo", lookupErr.Connector)
	}
}

func TestSearchRadius(t *testing.T) {
	finder, err := NewRTreeStationFinder(testCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center := domain.Location{Latitude: 52.50, Longitude: 13.40}
	got, err := finder.SearchRadius(context.Background(), center, 20, "")
	if err != nil {
		t.Fatalf("SearchRadius failed: %v", err)
	}

	// Both Berlin stations are within 20 km; Leipzig and Munich are not.
	if len(got) != 2 {
		t.Fatalf("expected 2 stations within 20km, got %d", len(got))
	}
	for _, st := range got {
		if st.ID != "berlin-1" && st.ID != "berlin-2" {
			t.Errorf("unexpected station in radius: %q", st.ID)
		}
	}
}

func TestSearchRadiusValidation(t *testing.T) {
	finder, err := NewRTreeStationFinder(testCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := finder.SearchRadius(context.Background(), domain.Location{Latitude: 52.5, Longitude: 13.4}, 0, ""); err == nil {
		t.Error("expected error for non-positive radius")
	}
	if _, err := finder.SearchRadius(context.Background(), domain.Location{Latitude: 99, Longitude: 13.4}, 10, ""); err == nil {
		t.Error("expected error for invalid center")
	}
}

func TestNewFinderRejectsInvalidStation(t *testing.T) {
	_, err := NewRTreeStationFinder([]domain.Station{
		{ID: "bad", Location: domain.Location{Latitude: 123, Longitude: 0}},
	})
	if err == nil {
		t.Fatal("expected error for out-of-range latitude")
	}
}
