package routing

import (
	"context"

	"ev-route-service/internal/domain"
)

// MockRouteProvider returns a fixed leg sequence (or error) regardless of the
// requested endpoints. Intended for tests.
type MockRouteProvider struct {
	Legs []domain.Segment
	Err  error
}

func (p *MockRouteProvider) GetRoute(
	ctx context.Context,
	start, destination domain.Location,
	waypoints []domain.Location,
) ([]domain.Segment, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	out := make([]domain.Segment, len(p.Legs))
	copy(out, p.Legs)
	return out, nil
}
