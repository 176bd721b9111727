package services

import (
	"context"
	"fmt"
	"time"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// InsertChargingStops walks the legs in order and splices a zero-distance,
// zero-duration charging-stop segment before every leg that exceeds the
// remaining range, simulating a full recharge at each stop.
//
// The stop runs from the leg's start point to the nearest usable station; its
// charging requirements are left unset for ApplyChargingRequirements. Each
// station lookup is a blocking external call bounded by lookupTimeout, and a
// failed or empty lookup aborts the whole computation.
//
// A leg longer than the full vehicle range still gets exactly one stop and is
// then accepted as-is: legs are never re-split across multiple stops. Such
// legs are reported through a WarnLegExceedsRange warning.
//
// The input slice is not mutated; a new sequence is returned.
func InsertChargingStops(
	ctx context.Context,
	segments []domain.Segment,
	rangeKm float64,
	finder ports.StationFinder,
	connectorID string,
	lookupTimeout time.Duration,
) ([]domain.Segment, []domain.Warning, error) {
	if rangeKm <= 0 {
		return nil, nil, fmt.Errorf("insert charging stops: %w", domain.ErrNonPositiveRange)
	}
	if len(segments) == 0 {
		return nil, nil, fmt.Errorf("insert charging stops: %w", domain.ErrEmptyRoute)
	}

	out := make([]domain.Segment, 0, len(segments)+len(segments)/2)
	warnings := []domain.Warning{}
	remaining := rangeKm

	for i, seg := range segments {
		if seg.DistanceKm < 0 || seg.DurationMin < 0 {
			return nil, nil, fmt.Errorf(
				"insert charging stops: leg %d has negative distance or duration", i,
			)
		}

		sufficient, next := rangeStep(remaining, rangeKm, seg.DistanceKm, true)
		if sufficient {
			out = append(out, seg)
			remaining = next
			continue
		}

		station, err := findStation(ctx, finder, seg.Start, connectorID, lookupTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("insert charging stops: before leg %d: %w", i, err)
		}

		out = append(out, domain.Segment{
			Start:          seg.Start,
			End:            station.Location,
			IsChargingStop: true,
		})
		out = append(out, seg)
		remaining = next

		if seg.DistanceKm > rangeKm {
			warnings = append(warnings, domain.Warning{
				Code:         domain.WarnLegExceedsRange,
				SegmentIndex: len(out) - 1,
				Message: fmt.Sprintf(
					"leg of %.1f km exceeds full vehicle range of %.1f km; a single charge cannot cover it",
					seg.DistanceKm, rangeKm,
				),
			})
		}
	}

	return out, warnings, nil
}

func findStation(
	ctx context.Context,
	finder ports.StationFinder,
	near domain.Location,
	connectorID string,
	timeout time.Duration,
) (domain.Station, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return finder.FindNearest(ctx, near, connectorID)
}
