package domain

import (
	"fmt"
	"strconv"
)

// Immutable geographic point (latitude, longitude in degrees) with optional
// display metadata. Identity is positional: two locations with the same
// coordinates refer to the same place regardless of Name or Address.
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
	Address   string
}

// Validate checks that the coordinates fall inside the WGS84 envelope.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("location %q: latitude %v out of range [-90, 90]", l.Name, l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("location %q: longitude %v out of range [-180, 180]", l.Name, l.Longitude)
	}
	return nil
}

// Key returns a stable cache key at the planning precision (1e-5 degrees,
// the same quantization the polyline codec uses).
func (l Location) Key() string {
	return strconv.FormatFloat(l.Latitude, 'f', 5, 64) + "," +
		strconv.FormatFloat(l.Longitude, 'f', 5, 64)
}
