// Package detect finds completed laps of a closed course, or timed attempts
// at an open segment, in a recorded track.
package detect

import (
	"fmt"
	"strings"
	"time"

	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

// Mode selects how a track is matched against its target.
type Mode int

const (
	LoopCounting Mode = iota
	SinglePassSegment
)

func (m Mode) String() string {
	switch m {
	case LoopCounting:
		return "loop"
	case SinglePassSegment:
		return "segment"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "loop" or "segment", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loop", "loops", "laps":
		return LoopCounting, nil
	case "segment", "single", "single-pass":
		return SinglePassSegment, nil
	}
	return 0, geo.Errorf(geo.ErrInvalidParameter, nil, "unknown detection mode %q", s)
}

// Options holds the detection thresholds.
type Options struct {
	StartZoneRadius            float64 `json:"start_zone_radius"`             // meters from waypoint 0 to trigger a boundary
	WaypointCrossingRadius     float64 `json:"waypoint_crossing_radius"`      // meters for a waypoint to count as passed
	MinPointsBetweenDetections int     `json:"min_points_between_detections"` // debounce, in samples
	MinDistinctWaypoints       int     `json:"min_distinct_waypoints"`        // waypoints a lap must pass
	SegmentRadius              float64 `json:"segment_radius"`                // meters from segment start/end
}

func DefaultOptions() Options {
	return Options{
		StartZoneRadius:            10.0,
		WaypointCrossingRadius:     20.0,
		MinPointsBetweenDetections: 20,
		MinDistinctWaypoints:       4,
		SegmentRadius:              25.0,
	}
}

// Target is what a track is matched against. Exactly one field is set.
type Target struct {
	Course  *course.Course
	Segment *course.Segment
}

// Detection is the output of one Run.
type Detection struct {
	Mode       Mode      `json:"mode"`
	Boundaries []int     `json:"boundaries,omitempty"`
	Attempts   []Attempt `json:"attempts,omitempty"`
}

// LapCount is the number of completed loops, zero in segment mode.
func (d Detection) LapCount() int {
	return LapCount(d.Boundaries)
}

// Detector runs one mode with fixed options.
type Detector struct {
	Mode    Mode
	Options Options
}

// Run dispatches on the mode. A target that does not match the mode is an
// invalid parameter.
func (d Detector) Run(track geo.Track, target Target) (Detection, error) {
	if err := track.Validate(); err != nil {
		return Detection{}, err
	}

	switch d.Mode {
	case LoopCounting:
		if target.Course == nil {
			return Detection{}, geo.Errorf(geo.ErrInvalidParameter, nil, "loop counting needs a course")
		}
		return Detection{Mode: d.Mode, Boundaries: Loops(track, target.Course, d.Options)}, nil
	case SinglePassSegment:
		if target.Segment == nil {
			return Detection{}, geo.Errorf(geo.ErrInvalidParameter, nil, "segment detection needs a segment")
		}
		if err := target.Segment.Validate(); err != nil {
			return Detection{}, err
		}
		return Detection{Mode: d.Mode, Attempts: Segments(track, *target.Segment, d.Options)}, nil
	}
	return Detection{}, geo.Errorf(geo.ErrInvalidParameter, nil, "unknown detection mode %v", d.Mode)
}

// Attempt is one start-to-end pass over a segment.
type Attempt struct {
	StartIndex     int           `json:"start_index"`
	EndIndex       int           `json:"end_index"`
	StartTime      time.Time     `json:"start_time,omitzero"`
	EndTime        time.Time     `json:"end_time,omitzero"`
	Elapsed        time.Duration `json:"elapsed"`
	DistanceMeters float64       `json:"distance_meters"`
}
