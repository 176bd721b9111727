package cache

// Leg is one cached route-leg result: the drivable metrics and geometry
// between two coordinate keys.
type Leg struct {
	DistanceKm  float64
	DurationMin float64
	Polyline    string
}
