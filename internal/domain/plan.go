package domain

// WarningCode identifies a non-fatal planning condition the caller should
// surface to the end user.
type WarningCode string

const (
	// A single leg is longer than the vehicle's full range; one stop was
	// inserted before it but the leg itself cannot be re-split.
	WarnLegExceedsRange WarningCode = "leg_exceeds_range"

	// A charging stop with no following leg; it has no destination purpose
	// and is excluded from the charging-stop summary.
	WarnTrailingChargingStop WarningCode = "trailing_charging_stop"
)

// Warning is a typed, non-fatal planning condition tied to a segment index
// in the final sequence.
type Warning struct {
	Code         WarningCode
	SegmentIndex int
	Message      string
}

// Represents the fully planned trip for one request.
//
// TotalDistanceKm sums every segment distance (charging stops contribute 0,
// so it equals the driving distance of the input route). TotalDurationMin
// mixes driving time and charging dwell time. ChargingStops lists completed
// stops in segment order. It is immutable planning data and contains no
// side effects.
type TripPlan struct {
	Segments         []Segment
	TotalDistanceKm  float64
	TotalDurationMin float64
	ChargingStops    []ChargingStop
	Warnings         []Warning
}
