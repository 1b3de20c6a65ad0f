// Package geo is the geometry kernel shared by every verification pass:
// ellipsoidal distance, proximity tests and the track model.
package geo

import (
	"math"

	"github.com/tidwall/geodesic"
)

// Distance returns the WGS-84 geodesic distance between a and b in meters.
func Distance(a, b Point) float64 {
	if a.SameLocation(b) {
		return 0
	}
	var s12 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, nil, nil)
	return s12
}

// IsWithin reports whether p lies within radius meters of ref.
func IsWithin(p, ref Point, radius float64) bool {
	return Distance(p, ref) <= radius
}

// Bearing returns the initial azimuth from a to b in degrees, normalised to
// [0, 360).
func Bearing(a, b Point) float64 {
	var azi1 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, nil, &azi1, nil)
	return math.Mod(azi1+360, 360)
}

// TurnAngle is the absolute heading change at b along a→b→c, in degrees.
func TurnAngle(a, b, c Point) float64 {
	turn := math.Abs(Bearing(b, c) - Bearing(a, b))
	if turn > 180 {
		turn = 360 - turn
	}
	return turn
}
