package domain

// Represents one portion of a planned trip: either a drivable leg or a
// charging stop spliced in between legs.
//
// Charging-stop segments carry DistanceKm 0 by construction, and their
// DurationMin holds dwell time rather than travel time. ChargingTimeMin and
// ChargeToLevel are set if and only if the segment is a charging stop that is
// followed by another leg; a trailing charging stop legitimately has both nil.
type Segment struct {
	Start           Location
	End             Location
	DistanceKm      float64
	DurationMin     float64
	IsChargingStop  bool
	ChargingTimeMin *float64
	ChargeToLevel   *float64

	// Encoded polyline of the leg geometry for map rendering. Opaque to the
	// planner; empty on charging stops and on providers without geometry.
	Polyline string
}

// Read-only summary view of one completed charging stop, derived from the
// segment sequence and never independently mutated.
type ChargingStop struct {
	Location        Location
	ChargingTimeMin float64
	ChargeToLevel   float64
}
