package course

import (
	"fmt"

	"github.com/planbiir/wingo/internal/geo"
)

// AddPoint returns a copy of the course with p inserted at index. Index -1
// inserts just before the final waypoint so the loop stays closed. Indices
// that would displace the first or last waypoint are rejected.
func (c *Course) AddPoint(p geo.Point, index int) (*Course, error) {
	n := len(c.waypoints)
	if index == -1 {
		index = n - 1
	}
	if index < 1 || index > n-1 {
		return nil, geo.Errorf(geo.ErrInvalidParameter, []int{index},
			"insert index %d must be between 1 and %d", index, n-1)
	}

	wps := make([]geo.Point, 0, n+1)
	wps = append(wps, c.waypoints[:index]...)
	wps = append(wps, p)
	wps = append(wps, c.waypoints[index:]...)
	return New(c.name, wps, c.opts)
}

// RemovePoint returns a copy of the course without waypoint index. The
// start and finish waypoints cannot be removed.
func (c *Course) RemovePoint(index int) (*Course, error) {
	n := len(c.waypoints)
	if index <= 0 || index >= n-1 {
		return nil, geo.Errorf(geo.ErrInvalidParameter, []int{index},
			"cannot remove waypoint %d of %d: start and finish are fixed", index, n)
	}

	wps := make([]geo.Point, 0, n-1)
	wps = append(wps, c.waypoints[:index]...)
	wps = append(wps, c.waypoints[index+1:]...)
	return New(c.name, wps, c.opts)
}

// Smooth returns a new course where each waypoint is the mean of the
// waypoints in [i-w/2, i+w/2]. The loop is closed, so the window wraps
// around the ends. When the last waypoint repeats the first it is left out
// of the ring and set to the smoothed first waypoint. A window of 1
// reproduces the input.
func (c *Course) Smooth(window int) (*Course, error) {
	if window < 1 {
		return nil, geo.Errorf(geo.ErrInvalidParameter, nil, "smoothing window must be at least 1, got %d", window)
	}

	n := len(c.waypoints)
	ring := n
	closed := n > 2 && c.waypoints[0].SameLocation(c.waypoints[n-1])
	if closed {
		ring = n - 1
	}

	half := window / 2
	out := make([]geo.Point, n)
	for i := 0; i < ring; i++ {
		var lat, lon float64
		for k := -half; k <= half; k++ {
			wp := c.waypoints[((i+k)%ring+ring)%ring]
			lat += wp.Lat
			lon += wp.Lon
		}
		cnt := float64(2*half + 1)
		out[i] = geo.Point{Lat: lat / cnt, Lon: lon / cnt}
	}
	if closed {
		out[n-1] = out[0]
	}
	return New(fmt.Sprintf("%s (Smoothed)", c.name), out, c.opts)
}
