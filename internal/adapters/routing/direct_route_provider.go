package routing

import (
	"context"
	"fmt"
	"math"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/polyline"
)

const earthRadiusKm = 6371.0

// DirectRouteProvider produces straight-line legs between consecutive points
// at an assumed average speed. It is an explicit configuration choice for
// environments without a routing server, never a silent fallback for one
// that failed.
type DirectRouteProvider struct {
	// Average driving speed used to estimate leg durations.
	AvgSpeedKmh float64
}

func NewDirectRouteProvider(avgSpeedKmh float64) *DirectRouteProvider {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = 60
	}
	return &DirectRouteProvider{AvgSpeedKmh: avgSpeedKmh}
}

func (p *DirectRouteProvider) GetRoute(
	ctx context.Context,
	start, destination domain.Location,
	waypoints []domain.Location,
) ([]domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	points := make([]domain.Location, 0, 2+len(waypoints))
	points = append(points, start)
	points = append(points, waypoints...)
	points = append(points, destination)

	legs := make([]domain.Segment, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		from, to := points[i], points[i+1]
		if err := from.Validate(); err != nil {
			return nil, fmt.Errorf("direct route: point %d: %w", i, err)
		}
		if err := to.Validate(); err != nil {
			return nil, fmt.Errorf("direct route: point %d: %w", i+1, err)
		}

		distance := haversineKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)

		legs = append(legs, domain.Segment{
			Start:       from,
			End:         to,
			DistanceKm:  distance,
			DurationMin: (distance / p.AvgSpeedKmh) * 60,
			Polyline: polyline.Encode([]polyline.Point{
				{Lat: from.Latitude, Lng: from.Longitude},
				{Lat: to.Latitude, Lng: to.Longitude},
			}),
		})
	}

	return legs, nil
}

// haversineKm is the great-circle distance between two lat/lon points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
