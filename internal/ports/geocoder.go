package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Contract for resolving a place name to coordinates.
type Geocoder interface {
	// Return the best-matching location for the given place name.
	Lookup(ctx context.Context, name string) (domain.Location, error)
}
