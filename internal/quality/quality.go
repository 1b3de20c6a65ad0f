// Package quality grades the raw GPS samples of a track: spacing, speed
// outliers, geometric spikes and recording gaps. It never removes points.
package quality

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/planbiir/wingo/internal/geo"
)

const (
	ActivityUnknown   = "unknown"
	ActivityRunning   = "running/hiking"
	ActivityCycling   = "cycling"
	ActivityHighSpeed = "high-speed"
)

// Summarize builds a Report for track.
func Summarize(track geo.Track, opts Options) Report {
	r := Report{Points: len(track)}
	if len(track) < 2 {
		r.ActivityType = ActivityUnknown
		r.SpeedLimit = opts.MaxSpeed
		return r
	}

	spacing := make([]float64, len(track)-1)
	for i := 1; i < len(track); i++ {
		spacing[i-1] = geo.Distance(track[i-1], track[i])
	}
	r.AvgPointSpacing = stat.Mean(spacing, nil)
	r.MaxPointSpacing = floats.Max(spacing)
	r.AvgInterval = averageInterval(track)

	activity, limit, p95 := detectActivity(track)
	r.ActivityType, r.P95Speed = activity, p95
	r.SpeedLimit = limit
	if opts.MaxSpeed > 0 {
		r.SpeedLimit = opts.MaxSpeed
	}

	for i := 1; i < len(track); i++ {
		prev, curr := track[i-1], track[i]
		if prev.HasTime() && curr.HasTime() {
			dt := curr.Time.Sub(prev.Time)
			if dt > 0 && spacing[i-1]/dt.Seconds() > r.SpeedLimit {
				r.UnusualPoints = append(r.UnusualPoints, i)
			}
			if opts.GapThreshold > 0 && dt > opts.GapThreshold {
				r.Gaps = append(r.Gaps, Gap{Index: i, Start: prev.Time, Duration: dt})
			}
			continue
		}
		if spacing[i-1] > opts.TeleportMeters {
			r.UnusualPoints = append(r.UnusualPoints, i)
		}
	}

	for i := 1; i < len(track)-1; i++ {
		if isSpike(track[i-1], track[i], track[i+1], spacing[i-1], spacing[i], opts) {
			r.Spikes = append(r.Spikes, i)
		}
	}
	return r
}

// isSpike is the two-leg "boomerang": the sample jumps away and the next one
// comes straight back.
func isSpike(prev, curr, next geo.Point, toPrev, toNext float64, opts Options) bool {
	turn := geo.TurnAngle(prev, curr, next)
	base := geo.Distance(prev, next)

	if toPrev > opts.TeleportMeters && toNext > opts.TeleportMeters && base < 40 && turn > 100 {
		return true
	}
	// Sum of legs much longer than the base.
	ratio := (toPrev + toNext) / math.Max(base, 1)
	return ratio > 6 && turn > 90
}

// detectActivity classifies the track from its 95th percentile speed and
// returns the speed limit that goes with the class.
func detectActivity(track geo.Track) (string, float64, float64) {
	speeds := allSpeeds(track)
	if len(speeds) == 0 {
		return ActivityUnknown, 12.0, 0
	}

	sort.Float64s(speeds)
	p95 := stat.Quantile(0.95, stat.LinInterp, speeds, nil)

	switch {
	case p95 <= 8.0: // 28.8 km/h
		return ActivityRunning, 12.0, p95
	case p95 <= 20.0: // 72 km/h
		return ActivityCycling, 30.0, p95
	default:
		return ActivityHighSpeed, 50.0, p95
	}
}

func allSpeeds(track geo.Track) []float64 {
	var speeds []float64
	for i := 1; i < len(track); i++ {
		if !track[i].HasTime() || !track[i-1].HasTime() {
			continue
		}
		dt := track[i].Time.Sub(track[i-1].Time).Seconds()
		if dt <= 0 {
			continue
		}
		speed := geo.Distance(track[i-1], track[i]) / dt
		if speed > 0 && speed < 100 {
			speeds = append(speeds, speed)
		}
	}
	return speeds
}

// averageInterval is the mean sampling interval in seconds, ignoring gaps
// over an hour. Untimed tracks report 0.
func averageInterval(track geo.Track) float64 {
	var intervals []float64
	for i := 1; i < len(track); i++ {
		if !track[i].HasTime() || !track[i-1].HasTime() {
			continue
		}
		dt := track[i].Time.Sub(track[i-1].Time).Seconds()
		if dt > 0 && dt < 3600 {
			intervals = append(intervals, dt)
		}
	}
	if len(intervals) == 0 {
		return 0
	}
	return stat.Mean(intervals, nil)
}
