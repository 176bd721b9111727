package services

import (
	"math"
	"testing"

	"ev-route-service/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestChargeTarget(t *testing.T) {
	profile := DefaultChargingProfile()

	cases := []struct {
		name        string
		nextLegKm   float64
		wantCharge  float64
		wantMinutes float64
	}{
		{name: "ShortLeg", nextLegKm: 100, wantCharge: 100.0/3 + 20, wantMinutes: (100.0/3 + 20) / 20 * 15},
		{name: "ClampedAt100", nextLegKm: 400, wantCharge: 100, wantMinutes: 75},
		{name: "ZeroLeg", nextLegKm: 0, wantCharge: 20, wantMinutes: 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chargeTo, minutes := profile.ChargeTarget(tc.nextLegKm)
			if !almostEqual(chargeTo, tc.wantCharge) {
				t.Errorf("charge level = %v, want %v", chargeTo, tc.wantCharge)
			}
			if !almostEqual(minutes, tc.wantMinutes) {
				t.Errorf("charging time = %v, want %v", minutes, tc.wantMinutes)
			}
		})
	}
}

func TestApplyChargingRequirements(t *testing.T) {
	segments := []domain.Segment{
		{DistanceKm: 250, DurationMin: 180},
		{IsChargingStop: true},
		{DistanceKm: 100, DurationMin: 70},
	}

	out, warnings, err := ApplyChargingRequirements(segments, DefaultChargingProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %+v, want none", warnings)
	}

	stop := out[1]
	if stop.ChargeToLevel == nil || stop.ChargingTimeMin == nil {
		t.Fatal("stop requirements were not filled in")
	}
	if !almostEqual(*stop.ChargeToLevel, 160.0/3) {
		t.Errorf("charge level = %v, want %v", *stop.ChargeToLevel, 160.0/3)
	}
	if !almostEqual(*stop.ChargingTimeMin, 40) {
		t.Errorf("charging time = %v, want 40", *stop.ChargingTimeMin)
	}
	if !almostEqual(stop.DurationMin, 40) {
		t.Errorf("stop duration = %v, want dwell time 40", stop.DurationMin)
	}

	// Driving legs are untouched.
	if out[0].ChargeToLevel != nil || out[2].ChargeToLevel != nil {
		t.Error("driving legs must not carry charging requirements")
	}

	// The input slice keeps its original values.
	if segments[1].ChargeToLevel != nil || segments[1].DurationMin != 0 {
		t.Errorf("input slice was mutated: %+v", segments[1])
	}
}

func TestApplyChargingRequirementsTrailingStop(t *testing.T) {
	segments := []domain.Segment{
		{DistanceKm: 250, DurationMin: 180},
		{IsChargingStop: true},
	}

	out, warnings, err := ApplyChargingRequirements(segments, DefaultChargingProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out[1].ChargeToLevel != nil || out[1].ChargingTimeMin != nil {
		t.Error("trailing stop must keep its requirements unset")
	}
	if len(warnings) != 1 || warnings[0].Code != domain.WarnTrailingChargingStop {
		t.Errorf("warnings = %+v, want a single trailing-stop warning", warnings)
	}
	if len(warnings) == 1 && warnings[0].SegmentIndex != 1 {
		t.Errorf("warning segment index = %d, want 1", warnings[0].SegmentIndex)
	}
}

func TestApplyChargingRequirementsInvalidProfile(t *testing.T) {
	_, _, err := ApplyChargingRequirements(nil, ChargingProfile{})
	if err == nil {
		t.Fatal("expected error for zero-valued profile")
	}
}

func TestChargingProfileValidate(t *testing.T) {
	cases := map[string]ChargingProfile{
		"ZeroRange":      {ReferenceRangeKm: 0, SafetyBufferPct: 20, ChargeStepPct: 20, ChargeStepMin: 15},
		"ZeroStepPct":    {ReferenceRangeKm: 300, SafetyBufferPct: 20, ChargeStepPct: 0, ChargeStepMin: 15},
		"ZeroStepMin":    {ReferenceRangeKm: 300, SafetyBufferPct: 20, ChargeStepPct: 20, ChargeStepMin: 0},
		"NegativeBuffer": {ReferenceRangeKm: 300, SafetyBufferPct: -1, ChargeStepPct: 20, ChargeStepMin: 15},
	}

	for name, profile := range cases {
		t.Run(name, func(t *testing.T) {
			if err := profile.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := DefaultChargingProfile().Validate(); err != nil {
		t.Errorf("default profile should validate, got %v", err)
	}
}
