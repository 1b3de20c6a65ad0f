package detect

import (
	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

// loopState is the scan state of one Loops call.
type loopState struct {
	lastDetection int
	visited       map[int]struct{}
}

func (s *loopState) credit(c *course.Course, p geo.Point, radius float64) {
	if idx := c.FirstWaypointWithin(p, radius); idx >= 0 {
		s.visited[idx] = struct{}{}
	}
}

// Loops returns the lap boundaries of track on c. The first boundary is
// always index 0, whatever the first sample's position. A later sample i
// becomes a boundary when it is at least MinPointsBetweenDetections samples
// after the previous boundary, lies inside the start zone of waypoint 0, and
// the samples from the previous boundary through i passed at least
// MinDistinctWaypoints distinct waypoints.
func Loops(track geo.Track, c *course.Course, opts Options) []int {
	boundaries := []int{0}
	if len(track) == 0 || c == nil {
		return boundaries
	}

	st := loopState{visited: make(map[int]struct{})}
	st.credit(c, track[0], opts.WaypointCrossingRadius)

	for i := 1; i < len(track); i++ {
		// visited always covers [lastDetection, i].
		st.credit(c, track[i], opts.WaypointCrossingRadius)

		if i-st.lastDetection < opts.MinPointsBetweenDetections {
			continue
		}
		if !c.IsNearWaypoint(track[i], 0, opts.StartZoneRadius) {
			continue
		}
		if len(st.visited) < opts.MinDistinctWaypoints {
			continue
		}

		boundaries = append(boundaries, i)
		st.lastDetection = i
		clear(st.visited)
		st.credit(c, track[i], opts.WaypointCrossingRadius)
	}
	return boundaries
}

// LapCount is the number of laps between boundaries. The leading boundary
// marks the start, not a finished lap.
func LapCount(boundaries []int) int {
	if len(boundaries) == 0 {
		return 0
	}
	return len(boundaries) - 1
}
