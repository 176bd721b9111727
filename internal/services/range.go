package services

import (
	"fmt"

	"ev-route-service/internal/domain"
)

// RangeStatus annotates one leg with whether it is drivable on the charge
// remaining when the leg is reached.
type RangeStatus struct {
	LegIndex    int
	Sufficient  bool
	RemainingKm float64
}

// rangeStep advances the remaining range across one leg.
//
// When the leg fits, the distance is consumed. When it does not and recharge
// is true, the step models a full recharge immediately before the leg
// (remaining = full - distance); with recharge false the remaining range is
// left untouched. Both the annotation pass and the insertion pass run on this
// one function so the two cannot diverge.
func rangeStep(remainingKm, fullKm, distanceKm float64, recharge bool) (sufficient bool, nextKm float64) {
	if distanceKm <= remainingKm {
		return true, remainingKm - distanceKm
	}
	if recharge {
		return false, fullKm - distanceKm
	}
	return false, remainingKm
}

// AnalyzeRange walks the legs once with a full charge and annotates each with
// range sufficiency. No recharge is simulated: consecutive insufficient legs
// are all judged against the same stale remaining range, so the annotation is
// informational only and callers must not derive post-recharge state from it.
func AnalyzeRange(segments []domain.Segment, rangeKm float64) ([]RangeStatus, error) {
	if rangeKm <= 0 {
		return nil, fmt.Errorf("analyze range: %w", domain.ErrNonPositiveRange)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("analyze range: %w", domain.ErrEmptyRoute)
	}

	statuses := make([]RangeStatus, 0, len(segments))
	remaining := rangeKm

	for i, seg := range segments {
		if seg.DistanceKm < 0 {
			return nil, fmt.Errorf("analyze range: leg %d has negative distance %v", i, seg.DistanceKm)
		}

		sufficient, next := rangeStep(remaining, rangeKm, seg.DistanceKm, false)
		if sufficient {
			remaining = next
		}

		statuses = append(statuses, RangeStatus{
			LegIndex:    i,
			Sufficient:  sufficient,
			RemainingKm: remaining,
		})
	}

	return statuses, nil
}
