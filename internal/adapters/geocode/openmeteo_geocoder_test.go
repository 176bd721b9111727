package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ev-route-service/internal/domain"
)

type memoryCache struct {
	entries map[string]domain.Location
	puts    int
}

func (m *memoryCache) Get(ctx context.Context, name string) (domain.Location, bool, error) {
	loc, ok := m.entries[name]
	return loc, ok, nil
}

func (m *memoryCache) Put(ctx context.Context, name string, loc domain.Location) error {
	if m.entries == nil {
		m.entries = map[string]domain.Location{}
	}
	m.entries[name] = loc
	m.puts++
	return nil
}

func TestLookup(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("name"); got != "Berlin" {
			t.Errorf("name query = %q, want Berlin", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"latitude":52.52437,"longitude":13.41053,"name":"Berlin","admin1":"Land Berlin","country":"Germany"}]}`))
	}))
	defer srv.Close()

	cache := &memoryCache{}
	g, err := NewOpenMeteoGeocoder(srv.URL, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, err := g.Lookup(context.Background(), "  Berlin ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loc.Latitude != 52.52437 || loc.Longitude != 13.41053 {
		t.Errorf("coordinates = (%v, %v)", loc.Latitude, loc.Longitude)
	}
	if loc.Name != "Berlin" {
		t.Errorf("name = %q, want Berlin", loc.Name)
	}
	if loc.Address != "Land Berlin, Germany" {
		t.Errorf("address = %q", loc.Address)
	}
	if cache.puts != 1 {
		t.Errorf("cache puts = %d, want 1", cache.puts)
	}

	// Second lookup must be served from the cache.
	if _, err := g.Lookup(context.Background(), "Berlin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("API calls = %d, want 1", calls)
	}
}

func TestLookupNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g, err := NewOpenMeteoGeocoder(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.Lookup(context.Background(), "Nowhereville"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestLookupEmptyName(t *testing.T) {
	g, err := NewOpenMeteoGeocoder("https://geocoding-api.open-meteo.com", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.Lookup(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}
