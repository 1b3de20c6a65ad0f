package verify

import (
	"time"

	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/detect"
	"github.com/planbiir/wingo/internal/distance"
	"github.com/planbiir/wingo/internal/geo"
	"github.com/planbiir/wingo/internal/plausibility"
	"github.com/planbiir/wingo/internal/quality"
)

// Config is every threshold of a verification run. The lap floor and the
// plausibility ratios are event policy, not geometry.
type Config struct {
	// Detection
	StartZoneRadius            float64 `mapstructure:"start_zone_radius" json:"start_zone_radius"`
	WaypointCrossingRadius     float64 `mapstructure:"waypoint_crossing_radius" json:"waypoint_crossing_radius"`
	MinPointsBetweenDetections int     `mapstructure:"min_points_between_detections" json:"min_points_between_detections"`
	MinDistinctWaypoints       int     `mapstructure:"min_distinct_waypoints" json:"min_distinct_waypoints"`
	SegmentRadius              float64 `mapstructure:"segment_radius" json:"segment_radius"`

	// Distance
	MinMovementMeters float64       `mapstructure:"min_movement_meters" json:"min_movement_meters"`
	MinDwell          time.Duration `mapstructure:"min_dwell" json:"min_dwell"`

	// Course
	ClosureThreshold float64 `mapstructure:"closure_threshold" json:"closure_threshold"`
	MaxSegmentLength float64 `mapstructure:"max_segment_length" json:"max_segment_length"`
	LapLengthMeters  float64 `mapstructure:"lap_length_meters" json:"lap_length_meters"`

	// Policy
	VerifiedLapCountFloor int     `mapstructure:"verified_lap_count_floor" json:"verified_lap_count_floor"`
	PlausibilityRatioHigh float64 `mapstructure:"plausibility_ratio_high" json:"plausibility_ratio_high"`
	PlausibilityRatioLow  float64 `mapstructure:"plausibility_ratio_low" json:"plausibility_ratio_low"`

	// Quality
	MaxSpeed       float64       `mapstructure:"max_speed" json:"max_speed"`
	TeleportMeters float64       `mapstructure:"teleport_meters" json:"teleport_meters"`
	GapThreshold   time.Duration `mapstructure:"gap_threshold" json:"gap_threshold"`
}

// DefaultConfig returns the thresholds of the Wingate 5K challenge.
func DefaultConfig() Config {
	return Config{
		StartZoneRadius:            10.0, // meters around waypoint 0
		WaypointCrossingRadius:     20.0,
		MinPointsBetweenDetections: 20, // samples; stops re-triggering at the start line
		MinDistinctWaypoints:       4,
		SegmentRadius:              25.0,

		MinMovementMeters: 1.0,
		MinDwell:          time.Second,

		ClosureThreshold: 30.0,
		MaxSegmentLength: 100.0,
		LapLengthMeters:  0, // 0 uses the measured course length

		VerifiedLapCountFloor: 15, // 15 x 320 m is the 5K target
		PlausibilityRatioHigh: 0.30,
		PlausibilityRatioLow:  0.40,

		MaxSpeed:       12.0,
		TeleportMeters: 120.0,
		GapThreshold:   2 * time.Minute,
	}
}

// Validate rejects values that would make a run meaningless.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"start_zone_radius", c.StartZoneRadius},
		{"waypoint_crossing_radius", c.WaypointCrossingRadius},
		{"segment_radius", c.SegmentRadius},
		{"closure_threshold", c.ClosureThreshold},
		{"max_segment_length", c.MaxSegmentLength},
		{"teleport_meters", c.TeleportMeters},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return geo.Errorf(geo.ErrInvalidParameter, nil, "%s must be positive, got %v", p.name, p.value)
		}
	}

	if c.MinPointsBetweenDetections < 1 {
		return geo.Errorf(geo.ErrInvalidParameter, nil, "min_points_between_detections must be at least 1, got %d", c.MinPointsBetweenDetections)
	}
	if c.MinDistinctWaypoints < 1 {
		return geo.Errorf(geo.ErrInvalidParameter, nil, "min_distinct_waypoints must be at least 1, got %d", c.MinDistinctWaypoints)
	}
	if c.MinMovementMeters < 0 || c.MinDwell < 0 || c.LapLengthMeters < 0 || c.MaxSpeed < 0 || c.GapThreshold < 0 {
		return geo.Errorf(geo.ErrInvalidParameter, nil, "noise floors, lap length, max speed and gap threshold must not be negative")
	}
	if c.VerifiedLapCountFloor < 0 {
		return geo.Errorf(geo.ErrInvalidParameter, nil, "verified_lap_count_floor must not be negative, got %d", c.VerifiedLapCountFloor)
	}
	if c.PlausibilityRatioHigh < 0 || c.PlausibilityRatioHigh > 1 {
		return geo.Errorf(geo.ErrInvalidParameter, nil, "plausibility_ratio_high must be in [0, 1], got %v", c.PlausibilityRatioHigh)
	}
	if c.PlausibilityRatioLow < 0 || c.PlausibilityRatioLow > 1 {
		return geo.Errorf(geo.ErrInvalidParameter, nil, "plausibility_ratio_low must be in [0, 1], got %v", c.PlausibilityRatioLow)
	}
	return nil
}

func (c Config) CourseOptions() course.Options {
	return course.Options{
		ClosureThreshold: c.ClosureThreshold,
		MaxSegmentLength: c.MaxSegmentLength,
	}
}

func (c Config) DistanceOptions() distance.Options {
	return distance.Options{
		MinMovementMeters: c.MinMovementMeters,
		MinDwell:          c.MinDwell,
	}
}

func (c Config) DetectOptions() detect.Options {
	return detect.Options{
		StartZoneRadius:            c.StartZoneRadius,
		WaypointCrossingRadius:     c.WaypointCrossingRadius,
		MinPointsBetweenDetections: c.MinPointsBetweenDetections,
		MinDistinctWaypoints:       c.MinDistinctWaypoints,
		SegmentRadius:              c.SegmentRadius,
	}
}

// Policy uses the crossing radius as the on-course radius.
func (c Config) Policy() plausibility.Policy {
	return plausibility.Policy{
		Radius:    c.WaypointCrossingRadius,
		LapFloor:  c.VerifiedLapCountFloor,
		RatioHigh: c.PlausibilityRatioHigh,
		RatioLow:  c.PlausibilityRatioLow,
	}
}

func (c Config) QualityOptions() quality.Options {
	return quality.Options{
		MaxSpeed:       c.MaxSpeed,
		TeleportMeters: c.TeleportMeters,
		GapThreshold:   c.GapThreshold,
	}
}
