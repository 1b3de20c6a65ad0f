package quality

import "time"

// Options holds the thresholds of the GPS quality pass.
type Options struct {
	MaxSpeed       float64       `json:"max_speed"`       // m/s - 0 picks a limit from the detected activity
	TeleportMeters float64       `json:"teleport_meters"` // jump guard for untimed samples and spike legs
	GapThreshold   time.Duration `json:"gap_threshold"`   // recording pauses longer than this are reported
}

// DefaultOptions returns thresholds tuned for running tracks.
func DefaultOptions() Options {
	return Options{
		MaxSpeed:       12.0,  // 43.2 km/h - faster than any runner
		TeleportMeters: 120.0, // 200m let obvious jumps through
		GapThreshold:   2 * time.Minute,
	}
}

// Gap is a pause in recording between Index-1 and Index.
type Gap struct {
	Index    int           `json:"index"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
}

// Report summarises how trustworthy the raw samples are.
type Report struct {
	Points int `json:"points"`

	// Spacing
	AvgPointSpacing float64 `json:"avg_point_spacing_m"`
	MaxPointSpacing float64 `json:"max_point_spacing_m"`
	AvgInterval     float64 `json:"avg_interval_s"`

	// Anomalies
	UnusualPoints []int `json:"unusual_points,omitempty"`
	Spikes        []int `json:"spikes,omitempty"`
	Gaps          []Gap `json:"gaps,omitempty"`

	// Activity detection
	ActivityType string  `json:"activity_type"`
	SpeedLimit   float64 `json:"speed_limit_ms"`
	P95Speed     float64 `json:"p95_speed_ms"`
}

// UnusualPercent is the share of samples flagged as unusual.
func (r Report) UnusualPercent() float64 {
	if r.Points == 0 {
		return 0
	}
	return float64(len(r.UnusualPoints)) / float64(r.Points) * 100
}
