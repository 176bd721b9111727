package services

import (
	"context"
	"fmt"
	"time"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// PlanTripRequest describes one end-to-end trip-planning computation.
type PlanTripRequest struct {
	Start          domain.Location
	Destination    domain.Location
	Waypoints      []domain.Location
	VehicleRangeKm float64
	// Optional connector filter applied to every station lookup.
	ConnectorID string
}

func (r PlanTripRequest) Validate() error {
	if r.VehicleRangeKm <= 0 {
		return domain.ErrNonPositiveRange
	}
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := r.Destination.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	for i, wp := range r.Waypoints {
		if err := wp.Validate(); err != nil {
			return fmt.Errorf("waypoint %d: %w", i, err)
		}
	}
	return nil
}

// PlannerConfig carries the charging model and operational policies of the
// planner.
type PlannerConfig struct {
	Profile ChargingProfile
	// Upper bound on each station lookup; zero means no extra bound beyond
	// the request context.
	LookupTimeout time.Duration
	// When true, a leg longer than the full vehicle range fails planning
	// with *domain.RangeError instead of producing a warning.
	RejectUnreachable bool
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		Profile:       DefaultChargingProfile(),
		LookupTimeout: 5 * time.Second,
	}
}

// PlanTrip runs the full planning pipeline: fetch the raw route, insert
// charging stops where range runs out, compute charging requirements, and
// assemble totals and the charging-stop summary.
//
// Each call is an independent computation over value data; callers may run
// arbitrarily many concurrently.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	cfg PlannerConfig,
	provider ports.RouteProvider,
	finder ports.StationFinder,
) (*domain.TripPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	legs, err := provider.GetRoute(ctx, req.Start, req.Destination, req.Waypoints)
	if err != nil {
		return nil, fmt.Errorf("plan trip: get route: %w", err)
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("plan trip: %w", domain.ErrEmptyRoute)
	}

	if cfg.RejectUnreachable {
		for i, leg := range legs {
			if leg.DistanceKm > req.VehicleRangeKm {
				return nil, fmt.Errorf("plan trip: %w", &domain.RangeError{
					LegIndex:   i,
					DistanceKm: leg.DistanceKm,
					RangeKm:    req.VehicleRangeKm,
				})
			}
		}
	}

	withStops, warnings, err := InsertChargingStops(
		ctx, legs, req.VehicleRangeKm, finder, req.ConnectorID, cfg.LookupTimeout,
	)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	final, reqWarnings, err := ApplyChargingRequirements(withStops, cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return AssembleTrip(final, append(warnings, reqWarnings...)), nil
}

// AssembleTrip aggregates route totals and extracts the charging-stop summary
// from the final segment sequence.
//
// Total distance reflects only driving legs since charging stops carry
// distance 0; total duration mixes travel and dwell time. The summary lists
// completed stops (both requirement fields present) in segment order, so its
// length equals the count of stops that have a following leg.
func AssembleTrip(segments []domain.Segment, warnings []domain.Warning) *domain.TripPlan {
	plan := &domain.TripPlan{
		Segments:      segments,
		ChargingStops: []domain.ChargingStop{},
		Warnings:      warnings,
	}
	if plan.Warnings == nil {
		plan.Warnings = []domain.Warning{}
	}

	for _, seg := range segments {
		plan.TotalDistanceKm += seg.DistanceKm
		plan.TotalDurationMin += seg.DurationMin

		if seg.IsChargingStop && seg.ChargingTimeMin != nil && seg.ChargeToLevel != nil {
			plan.ChargingStops = append(plan.ChargingStops, domain.ChargingStop{
				Location:        seg.End,
				ChargingTimeMin: *seg.ChargingTimeMin,
				ChargeToLevel:   *seg.ChargeToLevel,
			})
		}
	}

	return plan
}
