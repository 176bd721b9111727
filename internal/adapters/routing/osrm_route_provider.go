package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/polyline"
)

// LegCache is the persistence the provider layers in front of the external
// API. Keys are coordinate keys (domain.Location.Key).
type LegCache interface {
	Get(ctx context.Context, origin, destination string) (cache.Leg, bool, error)
	Put(ctx context.Context, origin, destination string, leg cache.Leg) error
}

// OSRMRouteProvider implements RouteProvider against an OSRM routing server.
//
// It coordinates:
//   - Persistent per-leg caching keyed by endpoint coordinates
//   - External API calls with retry/backoff
//   - Re-encoding of leg geometry with the internal polyline codec
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session  *http.Client
	baseURL  string
	profile  string
	legCache LegCache
}

func NewOSRMRouteProvider(baseURL string, legCache LegCache) (*OSRMRouteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}

	return &OSRMRouteProvider{
		session:  &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		profile:  "driving",
		legCache: legCache,
	}, nil
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Legs []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
			Steps    []struct {
				Geometry string `json:"geometry"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetRoute fetches the driving route through start, waypoints, destination as
// one leg per consecutive point pair.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	start, destination domain.Location,
	waypoints []domain.Location,
) (_ []domain.Segment, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	points := make([]domain.Location, 0, 2+len(waypoints))
	points = append(points, start)
	points = append(points, waypoints...)
	points = append(points, destination)

	for i, p := range points {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("get route: point %d: %w", i, err)
		}
	}

	// Serve entirely from the leg cache when every consecutive pair is known.
	if legs, ok := o.fromCache(ctx, points); ok {
		return legs, nil
	}

	resp, err := o.fetchRoute(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}

	legs, err := o.toSegments(resp, points)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}

	o.storeLegs(ctx, legs)
	return legs, nil
}

func (o *OSRMRouteProvider) fromCache(ctx context.Context, points []domain.Location) ([]domain.Segment, bool) {
	if o.legCache == nil {
		return nil, false
	}

	legs := make([]domain.Segment, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		cached, ok, err := o.legCache.Get(ctx, points[i].Key(), points[i+1].Key())
		if err != nil {
			logrus.WithError(err).Warn("leg cache read failed")
			return nil, false
		}
		if !ok {
			return nil, false
		}

		legs = append(legs, domain.Segment{
			Start:       points[i],
			End:         points[i+1],
			DistanceKm:  cached.DistanceKm,
			DurationMin: cached.DurationMin,
			Polyline:    cached.Polyline,
		})
	}

	return legs, true
}

func (o *OSRMRouteProvider) storeLegs(ctx context.Context, legs []domain.Segment) {
	if o.legCache == nil {
		return
	}

	for _, leg := range legs {
		err := o.legCache.Put(ctx, leg.Start.Key(), leg.End.Key(), cache.Leg{
			DistanceKm:  leg.DistanceKm,
			DurationMin: leg.DurationMin,
			Polyline:    leg.Polyline,
		})
		if err != nil {
			logrus.WithError(err).Warn("leg cache write failed")
		}
	}
}

func (o *OSRMRouteProvider) fetchRoute(ctx context.Context, points []domain.Location) (*osrmResponse, error) {
	coords := make([]string, 0, len(points))
	for _, p := range points {
		// OSRM wants lon,lat order.
		coords = append(coords,
			strconv.FormatFloat(p.Longitude, 'f', 6, 64)+","+
				strconv.FormatFloat(p.Latitude, 'f', 6, 64))
	}

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", o.baseURL, o.profile, strings.Join(coords, ";"))

	query := url.Values{}
	query.Set("overview", "false")
	query.Set("steps", "true")
	query.Set("geometries", "polyline")
	full := endpoint + "?" + query.Encode()

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, full)
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode OSRM response: %w", err)
	}

	switch decoded.Code {
	case "Ok":
		return &decoded, nil
	case "NoRoute", "NoSegment":
		return nil, domain.ErrNoRoute
	default:
		return nil, fmt.Errorf("OSRM error %q: %s", decoded.Code, decoded.Message)
	}
}

func (o *OSRMRouteProvider) toSegments(resp *osrmResponse, points []domain.Location) ([]domain.Segment, error) {
	if len(resp.Routes) == 0 {
		return nil, domain.ErrNoRoute
	}

	route := resp.Routes[0]
	if len(route.Legs) != len(points)-1 {
		return nil, fmt.Errorf(
			"OSRM returned %d legs for %d points", len(route.Legs), len(points),
		)
	}

	legs := make([]domain.Segment, 0, len(route.Legs))
	for i, leg := range route.Legs {
		geometry, err := legGeometry(leg.Steps)
		if err != nil {
			return nil, fmt.Errorf("leg %d geometry: %w", i, err)
		}

		legs = append(legs, domain.Segment{
			Start:       points[i],
			End:         points[i+1],
			DistanceKm:  leg.Distance / 1000,
			DurationMin: leg.Duration / 60,
			Polyline:    geometry,
		})
	}

	return legs, nil
}

// legGeometry stitches the step geometries of one leg into a single encoded
// polyline. Consecutive steps share their boundary point, which is dropped.
func legGeometry(steps []struct {
	Geometry string `json:"geometry"`
}) (string, error) {
	var merged []polyline.Point

	for _, step := range steps {
		pts, err := polyline.Decode(step.Geometry)
		if err != nil {
			return "", err
		}

		if len(merged) > 0 && len(pts) > 0 && pts[0] == merged[len(merged)-1] {
			pts = pts[1:]
		}
		merged = append(merged, pts...)
	}

	return polyline.Encode(merged), nil
}
