package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Contract for retrieving the raw driving route between two locations,
// optionally via waypoints, as an ordered sequence of drivable legs.
//
// Implementations must report upstream call failures as errors and return
// domain.ErrNoRoute when the provider answered but no route exists; an empty
// success result is never a valid answer.
type RouteProvider interface {
	GetRoute(ctx context.Context, start, destination domain.Location, waypoints []domain.Location) ([]domain.Segment, error)
}
