package stations

import (
	"context"

	"ev-route-service/internal/domain"
)

// MockStationFinder returns a fixed station (or error) for every lookup and
// records the locations it was queried with. Intended for tests.
type MockStationFinder struct {
	Station domain.Station
	Err     error

	Queries []domain.Location
}

func (m *MockStationFinder) FindNearest(
	ctx context.Context,
	near domain.Location,
	connectorID string,
) (domain.Station, error) {
	m.Queries = append(m.Queries, near)

	if m.Err != nil {
		return domain.Station{}, m.Err
	}
	return m.Station, nil
}
