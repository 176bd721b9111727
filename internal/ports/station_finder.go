package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Port: a boundary for resolving the nearest usable charging station to a
// location, filtered by connector type and availability.
//
// A lookup that cannot resolve a station returns *domain.LookupError; the
// caller must never fabricate a station at the query location.
type StationFinder interface {
	FindNearest(ctx context.Context, near domain.Location, connectorID string) (domain.Station, error)
}

// Port: a boundary for area queries over the station catalogue. An empty
// connectorID matches every connector.
type StationSearcher interface {
	SearchRadius(ctx context.Context, center domain.Location, radiusKm float64, connectorID string) ([]domain.Station, error)
}
