package domain

import (
	"errors"
	"fmt"
)

// Invalid-input conditions rejected before the pipeline runs.
var (
	ErrNonPositiveRange = errors.New("vehicle range must be positive")
	ErrEmptyRoute       = errors.New("route has no legs")

	// ErrNoRoute means the routing provider answered successfully but no
	// drivable route exists between the requested points. Distinct from an
	// upstream call failure, which is reported as the provider's own error.
	ErrNoRoute = errors.New("no route exists between the requested locations")
)

// RangeError reports a leg whose distance exceeds the vehicle's full range,
// so that no single charging stop can make it drivable.
type RangeError struct {
	LegIndex   int
	DistanceKm float64
	RangeKm    float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf(
		"leg %d exceeds vehicle range: %.1f km > %.1f km",
		e.LegIndex, e.DistanceKm, e.RangeKm,
	)
}

// LookupError reports a charging-station lookup that could not resolve a
// usable station near the given location.
type LookupError struct {
	Near      Location
	Connector string
	Err       error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("station lookup near %s: %v", e.Near.Key(), e.Err)
	}
	return fmt.Sprintf("station lookup near %s: no usable station found", e.Near.Key())
}

func (e *LookupError) Unwrap() error { return e.Err }
