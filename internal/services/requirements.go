package services

import (
	"errors"
	"fmt"

	"ev-route-service/internal/domain"
)

// ChargingProfile holds the tunables of the charging model so differing
// vehicle and charger profiles can be configured instead of hard-coded.
type ChargingProfile struct {
	// Reference range a 100% charge provides, in km.
	ReferenceRangeKm float64
	// Safety buffer added on top of the exact requirement, in percentage points.
	SafetyBufferPct float64
	// Linear charge rate: ChargeStepPct percent gained per ChargeStepMin minutes.
	ChargeStepPct float64
	ChargeStepMin float64
}

// DefaultChargingProfile returns the stock profile: 300 km reference range,
// 20-point buffer, 20% per 15 minutes.
func DefaultChargingProfile() ChargingProfile {
	return ChargingProfile{
		ReferenceRangeKm: 300,
		SafetyBufferPct:  20,
		ChargeStepPct:    20,
		ChargeStepMin:    15,
	}
}

func (p ChargingProfile) Validate() error {
	if p.ReferenceRangeKm <= 0 {
		return errors.New("charging profile: reference range must be positive")
	}
	if p.ChargeStepPct <= 0 || p.ChargeStepMin <= 0 {
		return errors.New("charging profile: charge rate must be positive")
	}
	if p.SafetyBufferPct < 0 {
		return errors.New("charging profile: safety buffer must not be negative")
	}
	return nil
}

// ChargeTarget computes the target charge level (percent, clamped to
// [0, 100]) and the dwell time in minutes needed to cover the following leg.
func (p ChargingProfile) ChargeTarget(nextLegKm float64) (chargeTo, minutes float64) {
	chargeTo = (nextLegKm/p.ReferenceRangeKm)*100 + p.SafetyBufferPct
	if chargeTo > 100 {
		chargeTo = 100
	}
	if chargeTo < 0 {
		chargeTo = 0
	}

	minutes = (chargeTo / p.ChargeStepPct) * p.ChargeStepMin
	return chargeTo, minutes
}

// ApplyChargingRequirements fills in the charging time and target level of
// every charging stop that is followed by another leg, and writes the dwell
// time to the stop's DurationMin so route totals include it.
//
// A trailing charging stop (no following leg) keeps its fields unset and is
// surfaced as a WarnTrailingChargingStop warning rather than dropped silently.
// The input slice is not mutated; a new sequence is returned.
func ApplyChargingRequirements(
	segments []domain.Segment,
	profile ChargingProfile,
) ([]domain.Segment, []domain.Warning, error) {
	if err := profile.Validate(); err != nil {
		return nil, nil, fmt.Errorf("apply charging requirements: %w", err)
	}

	out := make([]domain.Segment, len(segments))
	copy(out, segments)
	warnings := []domain.Warning{}

	for i := range out {
		if !out[i].IsChargingStop {
			continue
		}

		if i+1 >= len(out) {
			warnings = append(warnings, domain.Warning{
				Code:         domain.WarnTrailingChargingStop,
				SegmentIndex: i,
				Message:      "charging stop has no following leg and serves no destination",
			})
			continue
		}

		chargeTo, minutes := profile.ChargeTarget(out[i+1].DistanceKm)

		out[i].ChargeToLevel = &chargeTo
		out[i].ChargingTimeMin = &minutes
		// Dwell time rides on the duration field so totals mix driving and
		// charging time.
		out[i].DurationMin = minutes
	}

	return out, warnings, nil
}
