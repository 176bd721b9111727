package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Port: a boundary for retrieving charging-station entities from a data source.
type StationRepository interface {
	// Retrieve the full station catalogue for indexing.
	ListStations(ctx context.Context) ([]domain.Station, error)
}
