package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/planbiir/wingo/internal/detect"
	"github.com/planbiir/wingo/internal/quality"
)

// Status is the final verdict of a run.
type Status string

const (
	StatusVerified    Status = "VERIFIED"
	StatusNotVerified Status = "NOT_VERIFIED"
)

const (
	metersPerKm   = 1000.0
	metersPerMile = 1609.34
)

// Result is a finished verification. It is built once by Verify and holds
// no references into the input track.
type Result struct {
	ID         string `json:"id"`
	CourseName string `json:"course_name"`

	// Laps
	LoopCount  int       `json:"loop_count"`
	Boundaries []int     `json:"boundaries"`
	Laps       []Lap     `json:"laps,omitempty"`
	LapStats   *LapStats `json:"lap_stats,omitempty"`

	// Distance
	TotalDistanceMeters  float64 `json:"total_distance_meters"`
	CourseLengthMeters   float64 `json:"course_length_meters"`
	CourseDistanceMeters float64 `json:"course_distance_meters"`
	ExpectedLaps         float64 `json:"expected_laps"`

	// Location
	LocationVerified  bool    `json:"location_verified"`
	PointsInCourse    int     `json:"points_in_course"`
	TotalPoints       int     `json:"total_points"`
	PlausibilityRatio float64 `json:"plausibility_ratio"`

	// Timing
	StartTime          time.Time     `json:"start_time,omitzero"`
	EndTime            time.Time     `json:"end_time,omitzero"`
	TotalDuration      time.Duration `json:"total_duration"`
	AverageLapDuration time.Duration `json:"average_lap_duration"`

	Status  Status         `json:"status"`
	Quality quality.Report `json:"quality"`
}

// Verified reports whether Status is VERIFIED.
func (r *Result) Verified() bool {
	return r.Status == StatusVerified
}

// Lap is one completed loop between two boundaries.
type Lap struct {
	Number         int           `json:"number"`
	StartIndex     int           `json:"start_index"`
	EndIndex       int           `json:"end_index"`
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
}

// LapStats describes the spread of lap times. Durations are zero for
// untimed tracks.
type LapStats struct {
	FastestLap         int           `json:"fastest_lap"`
	SlowestLap         int           `json:"slowest_lap"`
	Fastest            time.Duration `json:"fastest"`
	Slowest            time.Duration `json:"slowest"`
	Mean               time.Duration `json:"mean"`
	StdDev             time.Duration `json:"std_dev"`
	MeanDistanceMeters float64       `json:"mean_distance_meters"`
}

// SegmentResult lists the attempts at an open segment.
type SegmentResult struct {
	ID          string           `json:"id"`
	SegmentName string           `json:"segment_name"`
	Attempts    []detect.Attempt `json:"attempts"`
	Fastest     *detect.Attempt  `json:"fastest,omitempty"`
	TotalPoints int              `json:"total_points"`
}

// Summary renders the human-readable report printed by the CLI.
func (r *Result) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "VERIFICATION REPORT: %s\n", r.CourseName)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total Distance: %.1fm (%.2fkm, %.2fmi)\n",
		r.TotalDistanceMeters, r.TotalDistanceMeters/metersPerKm, r.TotalDistanceMeters/metersPerMile)
	fmt.Fprintf(&b, "Course Distance: %.1fm (%.2fkm, %.2fmi)\n",
		r.CourseDistanceMeters, r.CourseDistanceMeters/metersPerKm, r.CourseDistanceMeters/metersPerMile)
	fmt.Fprintf(&b, "Laps: %d\n", r.LoopCount)
	fmt.Fprintf(&b, "Expected Laps (from distance): %.2f\n", r.ExpectedLaps)

	verified := "No"
	if r.LocationVerified {
		verified = "Yes"
	}
	fmt.Fprintf(&b, "Location Verified: %s\n", verified)
	fmt.Fprintf(&b, "Points on Course: %d / %d (%.1f%%)\n", r.PointsInCourse, r.TotalPoints, r.PlausibilityRatio*100)

	if !r.StartTime.IsZero() {
		fmt.Fprintf(&b, "Start Time: %s\n", r.StartTime.Format(time.RFC3339))
		fmt.Fprintf(&b, "End Time: %s\n", r.EndTime.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Total Duration: %s\n", r.TotalDuration)
	fmt.Fprintf(&b, "Average Lap Time: %s\n", r.AverageLapDuration)
	if r.LapStats != nil && r.LapStats.Fastest > 0 {
		fmt.Fprintf(&b, "Fastest Lap: #%d %s\n", r.LapStats.FastestLap, r.LapStats.Fastest)
		fmt.Fprintf(&b, "Slowest Lap: #%d %s\n", r.LapStats.SlowestLap, r.LapStats.Slowest)
	}
	if n := len(r.Quality.UnusualPoints); n > 0 {
		fmt.Fprintf(&b, "Unusual Points: %d (%.1f%%)\n", n, r.Quality.UnusualPercent())
	}
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintln(&b, rule)
	return b.String()
}
