package polyline

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// Canonical example from the format's published documentation.
func TestEncodeKnownVector(t *testing.T) {
	points := []Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}

	got := Encode(points)
	want := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestDecodeKnownVector(t *testing.T) {
	points, err := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i := range want {
		if math.Abs(points[i].Lat-want[i].Lat) > 1e-5 ||
			math.Abs(points[i].Lng-want[i].Lng) > 1e-5 {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestEmptyInput(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Errorf("Encode(nil) = %q, want empty string", got)
	}

	points, err := Decode("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("Decode(\"\") returned %d points, want 0", len(points))
	}
}

// The load-bearing property of the codec: decode(encode(seq)) == seq within
// the 1e-5 quantization precision, for random sequences including negative
// coordinates and zero deltas.
func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(50)
		points := make([]Point, 0, n)
		for i := 0; i < n; i++ {
			p := Point{
				Lat: rng.Float64()*180 - 90,
				Lng: rng.Float64()*360 - 180,
			}
			points = append(points, p)
			// Occasionally duplicate the point to exercise zero deltas.
			if rng.Intn(5) == 0 {
				points = append(points, p)
			}
		}

		encoded := Encode(points)
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("trial %d: decode failed: %v", trial, err)
		}

		if len(decoded) != len(points) {
			t.Fatalf("trial %d: %d points in, %d out", trial, len(points), len(decoded))
		}
		for i := range points {
			if math.Abs(decoded[i].Lat-points[i].Lat) > 1e-5 {
				t.Fatalf("trial %d point %d: lat %v -> %v", trial, i, points[i].Lat, decoded[i].Lat)
			}
			if math.Abs(decoded[i].Lng-points[i].Lng) > 1e-5 {
				t.Fatalf("trial %d point %d: lng %v -> %v", trial, i, points[i].Lng, decoded[i].Lng)
			}
		}
	}
}

// Once quantized, an encoded string must survive a decode/encode cycle
// byte-for-byte.
func TestReencodeIdempotent(t *testing.T) {
	encoded := Encode([]Point{
		{Lat: 0, Lng: 0},
		{Lat: -0.00001, Lng: 0.00001},
		{Lat: 51.50731, Lng: -0.12764},
		{Lat: 51.50731, Lng: -0.12764},
	})

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Encode(decoded); got != encoded {
		t.Errorf("re-encode = %q, want %q", got, encoded)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name    string
		encoded string
		want    error
	}{
		{"latitude only", "_p~iF", ErrTruncated},
		{"unterminated group", "_p~iF~ps|", ErrTruncated},
		{"continuation at end", "_", ErrTruncated},
		{"byte below alphabet", "_p~iF ~ps|U", ErrInvalidChar},
		{"byte above alphabet", "_p~iF\x7f", ErrInvalidChar},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.encoded)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}
