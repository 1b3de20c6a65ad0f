// Package plausibility checks that a track was actually recorded on the
// course it claims laps of.
package plausibility

import (
	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

// Policy is the two-tier acceptance rule. Long runs may include warm-up and
// cool-down away from the loop, so they pass with a lower on-course ratio.
type Policy struct {
	Radius    float64 `json:"radius"`     // meters from any waypoint to count as on course
	LapFloor  int     `json:"lap_floor"`  // lap count that selects RatioHigh
	RatioHigh float64 `json:"ratio_high"` // required ratio at or above LapFloor
	RatioLow  float64 `json:"ratio_low"`  // required ratio below LapFloor
}

func DefaultPolicy() Policy {
	return Policy{
		Radius:    20.0,
		LapFloor:  15,
		RatioHigh: 0.30,
		RatioLow:  0.40,
	}
}

// Required returns the ratio a track with loops laps must reach.
func (p Policy) Required(loops int) float64 {
	if loops >= p.LapFloor {
		return p.RatioHigh
	}
	return p.RatioLow
}

// Result is the outcome of Score.
type Result struct {
	PointsInCourse int     `json:"points_in_course"`
	TotalPoints    int     `json:"total_points"`
	Ratio          float64 `json:"ratio"`
	Verified       bool    `json:"verified"`
}

// Score counts the samples within policy.Radius of any waypoint of c.
func Score(track geo.Track, c *course.Course, loops int, policy Policy) Result {
	s := Result{TotalPoints: len(track)}
	for _, p := range track {
		if c.IsOnCourse(p, policy.Radius) {
			s.PointsInCourse++
		}
	}
	if s.TotalPoints > 0 {
		s.Ratio = float64(s.PointsInCourse) / float64(s.TotalPoints)
	}
	s.Verified = s.TotalPoints > 0 && s.Ratio >= policy.Required(loops)
	return s
}
