package domain

import (
	"errors"
	"testing"
)

func TestLocationValidate(t *testing.T) {
	cases := []struct {
		name    string
		loc     Location
		wantErr bool
	}{
		{name: "Valid", loc: Location{Latitude: 52.52, Longitude: 13.40}},
		{name: "Poles", loc: Location{Latitude: -90, Longitude: 180}},
		{name: "LatTooHigh", loc: Location{Latitude: 90.1, Longitude: 0}, wantErr: true},
		{name: "LatTooLow", loc: Location{Latitude: -90.1, Longitude: 0}, wantErr: true},
		{name: "LonTooHigh", loc: Location{Latitude: 0, Longitude: 180.1}, wantErr: true},
		{name: "LonTooLow", loc: Location{Latitude: 0, Longitude: -180.1}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.loc.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLocationKey(t *testing.T) {
	a := Location{Latitude: 52.520081, Longitude: 13.404954, Name: "Berlin"}
	b := Location{Latitude: 52.520079, Longitude: 13.404951, Name: "Berlin Mitte"}

	if a.Key() != "52.52008,13.40495" {
		t.Errorf("key = %q", a.Key())
	}
	// Positional identity at planning precision ignores display metadata.
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestStationHasConnector(t *testing.T) {
	st := Station{
		ID: "st-1",
		Connectors: []Connector{
			{ID: "ccs", Name: "CCS", PowerKW: 150},
			{ID: "type2", Name: "Type 2", PowerKW: 22},
		},
	}

	if !st.HasConnector("") {
		t.Error("empty filter must match any station")
	}
	if !st.HasConnector("type2") {
		t.Error("type2 should match")
	}
	if st.HasConnector("chademo") {
		t.Error("chademo should not match")
	}

	bare := Station{ID: "st-2"}
	if !bare.HasConnector("") {
		t.Error("empty filter must match a station without connectors")
	}
	if bare.HasConnector("ccs") {
		t.Error("no connectors means no specific match")
	}
}

func TestLookupErrorUnwrap(t *testing.T) {
	cause := errors.New("index empty")
	err := &LookupError{Near: Location{Latitude: 1, Longitude: 2}, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if err.Error() == "" {
		t.Error("error text must not be empty")
	}

	plain := &LookupError{Near: Location{Latitude: 1, Longitude: 2}, Connector: "ccs"}
	if plain.Error() == "" {
		t.Error("error text must not be empty without a cause")
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := &RangeError{LegIndex: 2, DistanceKm: 500, RangeKm: 300}
	want := "leg 2 exceeds vehicle range: 500.0 km > 300.0 km"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
