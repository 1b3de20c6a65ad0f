// Package course models the reference path a run is verified against: a
// closed loop of waypoints, or an open segment with a start and an end.
package course

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/planbiir/wingo/internal/geo"
)

// Options bound the shape of a valid loop.
type Options struct {
	ClosureThreshold float64 `json:"closure_threshold"`  // meters, last waypoint to first
	MaxSegmentLength float64 `json:"max_segment_length"` // meters, between consecutive waypoints
}

// DefaultOptions returns the thresholds used for hand-drawn park loops.
func DefaultOptions() Options {
	return Options{
		ClosureThreshold: 30.0,  // tolerate a loop that stops just short of the start
		MaxSegmentLength: 100.0, // longer gaps mean a waypoint is missing
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ClosureThreshold <= 0 {
		o.ClosureThreshold = def.ClosureThreshold
	}
	if o.MaxSegmentLength <= 0 {
		o.MaxSegmentLength = def.MaxSegmentLength
	}
	return o
}

// Course is an immutable closed loop. Waypoint 0 is the start/finish
// anchor. Every edit returns a new Course.
type Course struct {
	name      string
	waypoints []geo.Point
	opts      Options
}

// New copies waypoints into a validated course.
func New(name string, waypoints []geo.Point, opts Options) (*Course, error) {
	c := &Course{
		name:      name,
		waypoints: append([]geo.Point(nil), waypoints...),
		opts:      opts.withDefaults(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks coordinates, closure and waypoint spacing. Errors cite
// the waypoint indices involved.
func (c *Course) Validate() error {
	n := len(c.waypoints)
	if n < 2 {
		return geo.Errorf(geo.ErrMalformedCourse, nil, "course %q has %d waypoints, need at least 2", c.name, n)
	}
	for i, wp := range c.waypoints {
		if err := geo.ValidateCoordinate(wp); err != nil {
			return geo.Errorf(geo.ErrInvalidCoordinate, []int{i}, "waypoint %d: latitude %v, longitude %v", i, wp.Lat, wp.Lon)
		}
	}

	if gap := geo.Distance(c.waypoints[n-1], c.waypoints[0]); gap > c.opts.ClosureThreshold {
		return geo.Errorf(geo.ErrMalformedCourse, []int{n - 1, 0},
			"loop not closed: last waypoint is %.1fm from the first (max %.1fm)", gap, c.opts.ClosureThreshold)
	}

	for i := 1; i < n; i++ {
		if d := geo.Distance(c.waypoints[i-1], c.waypoints[i]); d > c.opts.MaxSegmentLength {
			return geo.Errorf(geo.ErrMalformedCourse, []int{i - 1, i},
				"gap of %.1fm between waypoints %d and %d (max %.1fm)", d, i-1, i, c.opts.MaxSegmentLength)
		}
	}
	return nil
}

func (c *Course) Name() string     { return c.name }
func (c *Course) Len() int         { return len(c.waypoints) }
func (c *Course) Options() Options { return c.opts }

// Anchor is the start/finish waypoint.
func (c *Course) Anchor() geo.Point { return c.waypoints[0] }

// Waypoint returns waypoint i. It panics on an out-of-range index, like a
// slice would.
func (c *Course) Waypoint(i int) geo.Point { return c.waypoints[i] }

// Waypoints returns a copy of the waypoint list.
func (c *Course) Waypoints() []geo.Point {
	return append([]geo.Point(nil), c.waypoints...)
}

// Length is the sum of the distances between consecutive waypoints. The
// closing edge back to the anchor is not included.
func (c *Course) Length() float64 {
	return geo.Track(c.waypoints).Length()
}

func (c *Course) Bound() orb.Bound {
	return geo.Track(c.waypoints).Bound()
}

// Center is the arithmetic mean of the waypoint coordinates.
func (c *Course) Center() geo.Point {
	var lat, lon float64
	for _, wp := range c.waypoints {
		lat += wp.Lat
		lon += wp.Lon
	}
	n := float64(len(c.waypoints))
	return geo.Point{Lat: lat / n, Lon: lon / n}
}

// IsNearWaypoint reports whether p lies within radius of waypoint idx. An
// index outside the course is never near.
func (c *Course) IsNearWaypoint(p geo.Point, idx int, radius float64) bool {
	if idx < 0 || idx >= len(c.waypoints) {
		return false
	}
	return geo.IsWithin(p, c.waypoints[idx], radius)
}

// NearestWaypoint returns the closest waypoint index and its distance.
func (c *Course) NearestWaypoint(p geo.Point) (int, float64) {
	best, bestDist := -1, 0.0
	for i, wp := range c.waypoints {
		d := geo.Distance(p, wp)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// IsOnCourse reports whether p is within radius of any waypoint.
func (c *Course) IsOnCourse(p geo.Point, radius float64) bool {
	return c.FirstWaypointWithin(p, radius) >= 0
}

// DistinctWaypointsVisited collects the waypoints passed by points. Each
// point credits only the first waypoint, in course order, that it is within
// radius of.
func (c *Course) DistinctWaypointsVisited(points geo.Track, radius float64) map[int]struct{} {
	visited := make(map[int]struct{})
	for _, p := range points {
		if idx := c.FirstWaypointWithin(p, radius); idx >= 0 {
			visited[idx] = struct{}{}
		}
	}
	return visited
}

// FirstWaypointWithin returns the lowest waypoint index within radius of p,
// or -1.
func (c *Course) FirstWaypointWithin(p geo.Point, radius float64) int {
	for i, wp := range c.waypoints {
		if geo.IsWithin(p, wp, radius) {
			return i
		}
	}
	return -1
}

func (c *Course) String() string {
	return fmt.Sprintf("%s (%d waypoints, %.1fm)", c.name, len(c.waypoints), c.Length())
}
