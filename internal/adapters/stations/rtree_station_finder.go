// Package stations provides the spatial index behind charging-station
// lookups: an R-tree over the station catalogue supporting nearest-station
// and radius queries with connector and availability filtering.
package stations

import (
	"context"
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"

	"ev-route-service/internal/domain"
)

const (
	tolerance   = 0.01
	minChildren = 2
	maxChildren = 25
	dimensions  = 2
	earthRadius = 6371.0 // km
	firstProbeK = 16
)

// stationItem wraps a Station for R-tree indexing.
type stationItem struct {
	station domain.Station
	rect    *rtreego.Rect
}

func (si *stationItem) Bounds() *rtreego.Rect {
	return si.rect
}

// RTreeStationFinder is an immutable R-tree index over the station catalogue.
// It is built once at startup and is safe for concurrent reads.
type RTreeStationFinder struct {
	tree *rtreego.Rtree
	size int
}

// NewRTreeStationFinder indexes the given stations. Stations with invalid
// coordinates are rejected rather than skipped, since a misplaced station
// would silently corrupt every nearest-neighbor answer.
func NewRTreeStationFinder(catalogue []domain.Station) (*RTreeStationFinder, error) {
	items := make([]rtreego.Spatial, 0, len(catalogue))
	for _, st := range catalogue {
		if err := st.Location.Validate(); err != nil {
			return nil, fmt.Errorf("station index: station %q: %w", st.ID, err)
		}

		p := rtreego.Point{st.Location.Latitude, st.Location.Longitude}
		items = append(items, &stationItem{station: st, rect: p.ToRect(tolerance)})
	}

	return &RTreeStationFinder{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren, items...),
		size: len(items),
	}, nil
}

// Size returns the number of indexed stations.
func (f *RTreeStationFinder) Size() int { return f.size }

// FindNearest returns the closest available station matching the connector
// filter. Candidates come back from the tree in distance order, so the first
// match wins; the probe width grows until the whole index has been scanned.
func (f *RTreeStationFinder) FindNearest(
	ctx context.Context,
	near domain.Location,
	connectorID string,
) (domain.Station, error) {
	if err := ctx.Err(); err != nil {
		return domain.Station{}, &domain.LookupError{Near: near, Connector: connectorID, Err: err}
	}
	if err := near.Validate(); err != nil {
		return domain.Station{}, &domain.LookupError{Near: near, Connector: connectorID, Err: err}
	}

	query := rtreego.Point{near.Latitude, near.Longitude}

	for k := firstProbeK; ; k *= 4 {
		if k > f.size {
			k = f.size
		}

		results := f.tree.NearestNeighbors(k, query)
		for _, r := range results {
			item, ok := r.(*stationItem)
			if !ok {
				continue
			}
			if item.station.Available && item.station.HasConnector(connectorID) {
				return item.station, nil
			}
		}

		if k >= f.size || len(results) < k {
			break
		}
	}

	return domain.Station{}, &domain.LookupError{Near: near, Connector: connectorID}
}

// SearchRadius returns all matching stations within radiusKm of the center,
// using a bounding-box tree query followed by an exact haversine filter.
func (f *RTreeStationFinder) SearchRadius(
	ctx context.Context,
	center domain.Location,
	radiusKm float64,
	connectorID string,
) ([]domain.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := center.Validate(); err != nil {
		return nil, fmt.Errorf("search radius: %w", err)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("search radius: radius must be positive, got %v", radiusKm)
	}

	// Convert the radius to degrees (approximation) for the box query.
	deg := (radiusKm / earthRadius) * (180 / math.Pi)

	bounds, err := rtreego.NewRect(
		rtreego.Point{center.Latitude - deg, center.Longitude - deg},
		[]float64{2 * deg, 2 * deg},
	)
	if err != nil {
		return nil, fmt.Errorf("search radius: invalid bounding box: %w", err)
	}

	results := f.tree.SearchIntersect(bounds)

	out := make([]domain.Station, 0, len(results))
	for _, r := range results {
		item, ok := r.(*stationItem)
		if !ok {
			continue
		}
		st := item.station
		if !st.HasConnector(connectorID) {
			continue
		}

		dist := haversineKm(
			center.Latitude, center.Longitude,
			st.Location.Latitude, st.Location.Longitude,
		)
		if dist <= radiusKm {
			out = append(out, st)
		}
	}

	return out, nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
