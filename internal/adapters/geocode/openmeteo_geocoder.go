// Package geocode resolves place names to coordinates using the open-meteo
// geocoding API, with a persistent cache in front of the external calls.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
)

// GeocodeCache is the persistence layered in front of the external API.
type GeocodeCache interface {
	Get(ctx context.Context, name string) (domain.Location, bool, error)
	Put(ctx context.Context, name string, loc domain.Location) error
}

// OpenMeteoGeocoder implements the Geocoder port against the open-meteo
// geocoding API. The API resolves city-level names, not precise addresses.
type OpenMeteoGeocoder struct {
	session *http.Client
	baseURL string
	cache   GeocodeCache
}

func NewOpenMeteoGeocoder(baseURL string, cache GeocodeCache) (*OpenMeteoGeocoder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("geocoder base URL is empty")
	}

	return &OpenMeteoGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		cache:   cache,
	}, nil
}

type searchResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
	} `json:"results"`
}

// Lookup resolves a place name to its best-matching location.
func (g *OpenMeteoGeocoder) Lookup(ctx context.Context, name string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "geocode.Lookup")(&err)

	// Collapse whitespace for consistent cache keys.
	norm := strings.Join(strings.Fields(name), " ")
	if norm == "" {
		return domain.Location{}, errors.New("geocode lookup: name must not be empty")
	}

	if g.cache != nil {
		loc, ok, cacheErr := g.cache.Get(ctx, norm)
		if cacheErr != nil {
			logrus.WithError(cacheErr).Warn("geocode cache read failed")
		} else if ok {
			return loc, nil
		}
	}

	query := url.Values{}
	query.Set("name", norm)
	query.Set("count", "1")
	endpoint := g.baseURL + "/v1/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode lookup: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode lookup: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Location{}, fmt.Errorf("geocode lookup: unexpected status: %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Location{}, fmt.Errorf("geocode lookup: decode response: %w", err)
	}

	if len(decoded.Results) == 0 {
		return domain.Location{}, fmt.Errorf("geocode lookup: no results for %q", norm)
	}

	best := decoded.Results[0]
	loc := domain.Location{
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Name:      best.Name,
		Address:   joinNonEmpty(best.Admin1, best.Country),
	}
	if err := loc.Validate(); err != nil {
		return domain.Location{}, fmt.Errorf("geocode lookup: %w", err)
	}

	if g.cache != nil {
		if cacheErr := g.cache.Put(ctx, norm, loc); cacheErr != nil {
			logrus.WithError(cacheErr).Warn("geocode cache write failed")
		}
	}

	return loc, nil
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
