package geo

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// Point is a single coordinate in degrees. A zero Time means the sample
// carries no timestamp.
type Point struct {
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
	Time time.Time `json:"time,omitzero"`
}

// SameLocation reports exact coordinate equality, ignoring time.
func (p Point) SameLocation(q Point) bool {
	return p.Lat == q.Lat && p.Lon == q.Lon
}

// HasTime reports whether the point carries a timestamp.
func (p Point) HasTime() bool {
	return !p.Time.IsZero()
}

// Orb converts to an orb point (lon, lat order).
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// FromOrb converts an orb point back, without a timestamp.
func FromOrb(op orb.Point) Point {
	return Point{Lat: op.Lat(), Lon: op.Lon()}
}

// ValidateCoordinate rejects latitudes outside ±90°, longitudes outside ±180°
// and NaN/Inf values.
func ValidateCoordinate(p Point) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return Errorf(ErrInvalidCoordinate, nil, "latitude %v out of range", p.Lat)
	}
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || p.Lon < -180 || p.Lon > 180 {
		return Errorf(ErrInvalidCoordinate, nil, "longitude %v out of range", p.Lon)
	}
	return nil
}

// ParseLatLon reads a "lat,lon" pair in degrees, as typed on a command line.
func ParseLatLon(s string) (Point, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, Errorf(ErrInvalidCoordinate, nil, "want lat,lon, got %q", s)
	}
	var (
		p   Point
		err error
	)
	if p.Lat, err = strconv.ParseFloat(strings.TrimSpace(lat), 64); err != nil {
		return Point{}, Errorf(ErrInvalidCoordinate, nil, "latitude %q: %v", lat, err)
	}
	if p.Lon, err = strconv.ParseFloat(strings.TrimSpace(lon), 64); err != nil {
		return Point{}, Errorf(ErrInvalidCoordinate, nil, "longitude %q: %v", lon, err)
	}
	if err := ValidateCoordinate(p); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Track is an ordered sequence of samples, chronological when timestamped.
type Track []Point

// Validate enforces the track invariants: at least one point and every
// coordinate in range. The offending sample index is cited on failure.
func (t Track) Validate() error {
	if len(t) == 0 {
		return Errorf(ErrEmptyTrack, nil, "track has no points")
	}
	for i, p := range t {
		if err := ValidateCoordinate(p); err != nil {
			return Errorf(ErrInvalidCoordinate, []int{i}, "point %d: latitude %v, longitude %v", i, p.Lat, p.Lon)
		}
	}
	return nil
}

// HasTimestamps reports whether the first and last samples are timestamped,
// which is what the timing output needs.
func (t Track) HasTimestamps() bool {
	if len(t) == 0 {
		return false
	}
	return t[0].HasTime() && t[len(t)-1].HasTime()
}

// TimeBounds returns the first and last timestamps, or zero values when the
// track is untimed.
func (t Track) TimeBounds() (time.Time, time.Time) {
	if !t.HasTimestamps() {
		return time.Time{}, time.Time{}
	}
	return t[0].Time, t[len(t)-1].Time
}

// Duration is the elapsed time between the first and last sample.
func (t Track) Duration() time.Duration {
	start, end := t.TimeBounds()
	return end.Sub(start)
}

// Slice returns the inclusive range [from, to], clamped to the track.
func (t Track) Slice(from, to int) Track {
	from = max(from, 0)
	to = min(to, len(t)-1)
	if from > to {
		return nil
	}
	return t[from : to+1]
}

// LineString converts the track to an orb line string.
func (t Track) LineString() orb.LineString {
	ls := make(orb.LineString, len(t))
	for i, p := range t {
		ls[i] = p.Orb()
	}
	return ls
}

// Bound returns the lon/lat bounding box of the track.
func (t Track) Bound() orb.Bound {
	return t.LineString().Bound()
}

// Length is the plain geodesic path length with no noise filtering.
func (t Track) Length() float64 {
	var total float64
	for i := 1; i < len(t); i++ {
		total += Distance(t[i-1], t[i])
	}
	return total
}
