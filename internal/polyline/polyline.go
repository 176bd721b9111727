// Package polyline implements the Google Encoded Polyline Algorithm Format:
// a compact printable-ASCII encoding of an ordered coordinate sequence,
// interoperable with any standard decoder of the same format.
//
// Coordinates are quantized to 1e-5 degrees. Each point is stored as two
// signed deltas from the previous point, zig-zag transformed and emitted in
// 5-bit little-endian groups with a continuation bit.
package polyline

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Decode failure modes for malformed input.
var (
	// ErrTruncated means the input ended inside a value group (missing
	// terminator, or a latitude delta without its longitude delta).
	ErrTruncated = errors.New("polyline: truncated value group")

	// ErrInvalidChar means the input contains a byte outside the encoding
	// alphabet (ASCII 63..126).
	ErrInvalidChar = errors.New("polyline: character outside encoding alphabet")
)

// Point is one (latitude, longitude) coordinate pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Encode serializes points into an encoded polyline string.
// Encoding an empty sequence yields an empty string.
func Encode(points []Point) string {
	var b strings.Builder
	// 6 bytes per value is typical for street-scale deltas.
	b.Grow(len(points) * 12)

	var prevLat, prevLng int64
	for _, p := range points {
		lat := int64(math.Round(p.Lat * 1e5))
		lng := int64(math.Round(p.Lng * 1e5))

		encodeValue(&b, lat-prevLat)
		encodeValue(&b, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return b.String()
}

// Decode parses an encoded polyline string back into coordinate pairs.
// An empty string decodes to an empty sequence. Input produced by Encode
// round-trips exactly (to the 1e-5 quantization precision).
func Decode(encoded string) ([]Point, error) {
	points := make([]Point, 0, len(encoded)/4)

	var lat, lng int64
	i := 0
	for i < len(encoded) {
		dLat, next, err := decodeValue(encoded, i)
		if err != nil {
			return nil, fmt.Errorf("decode polyline at byte %d: %w", i, err)
		}
		i = next

		dLng, next, err := decodeValue(encoded, i)
		if err != nil {
			return nil, fmt.Errorf("decode polyline at byte %d: %w", i, err)
		}
		i = next

		lat += dLat
		lng += dLng

		points = append(points, Point{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}

	return points, nil
}

// encodeValue zig-zag transforms v and emits it as 5-bit groups, low bits
// first, with 0x20 set on every group except the last and 63 added to each
// byte to land in printable ASCII.
func encodeValue(b *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}

	for u >= 0x20 {
		b.WriteByte(byte((0x20|(u&0x1f))+63))
		u >>= 5
	}
	b.WriteByte(byte(u + 63))
}

// decodeValue accumulates 5-bit groups starting at index i until a group
// without the continuation bit terminates the value, then reverses the
// zig-zag transform. Returns the signed delta and the index after the group.
func decodeValue(s string, i int) (int64, int, error) {
	var u int64
	var shift uint

	for {
		if i >= len(s) {
			return 0, i, ErrTruncated
		}

		c := s[i]
		if c < 63 || c > 126 {
			return 0, i, fmt.Errorf("%w: 0x%02x", ErrInvalidChar, c)
		}
		i++

		chunk := int64(c) - 63
		u |= (chunk & 0x1f) << shift
		shift += 5

		if chunk < 0x20 {
			break
		}

		// A real coordinate delta never needs more than 7 groups; anything
		// longer is malformed input, not a big number.
		if shift > 60 {
			return 0, i, ErrTruncated
		}
	}

	if u&1 != 0 {
		return ^(u >> 1), i, nil
	}
	return u >> 1, i, nil
}
