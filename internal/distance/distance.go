// Package distance accumulates path length over a GPS track while rejecting
// stationary jitter and sub-meter drift.
package distance

import (
	"time"

	"github.com/planbiir/wingo/internal/geo"
)

// Options are the noise floors of the accumulator.
type Options struct {
	MinMovementMeters float64       `json:"min_movement_meters"` // smaller moves are dropped
	MinDwell          time.Duration `json:"min_dwell"`           // repeats of the same fix inside this window are skipped
}

func DefaultOptions() Options {
	return Options{
		MinMovementMeters: 1.0,
		MinDwell:          time.Second,
	}
}

// Total returns the filtered length of the whole track in meters.
func Total(track geo.Track, opts Options) float64 {
	return accumulate(track, opts)
}

// Range returns the filtered length of the inclusive sub-range [from, to].
// Indices are clamped to the track.
func Range(track geo.Track, from, to int, opts Options) float64 {
	return accumulate(track.Slice(from, to), opts)
}

// Laps returns one distance per consecutive pair of boundaries.
func Laps(track geo.Track, boundaries []int, opts Options) []float64 {
	if len(boundaries) < 2 {
		return nil
	}
	out := make([]float64, len(boundaries)-1)
	for i := 1; i < len(boundaries); i++ {
		out[i-1] = Range(track, boundaries[i-1], boundaries[i], opts)
	}
	return out
}

// accumulate walks the track keeping the last accepted fix. A move only
// counts, and only advances the reference fix, once it reaches the
// movement floor, so slow drift never adds up.
func accumulate(track geo.Track, opts Options) float64 {
	if len(track) < 2 {
		return 0
	}

	var total float64
	last := track[0]
	for _, p := range track[1:] {
		if p.SameLocation(last) && elapsed(last, p) < opts.MinDwell {
			continue
		}
		d := geo.Distance(last, p)
		if d < opts.MinMovementMeters {
			continue
		}
		total += d
		last = p
	}
	return total
}

// elapsed is zero when either fix lacks a timestamp.
func elapsed(from, to geo.Point) time.Duration {
	if !from.HasTime() || !to.HasTime() {
		return 0
	}
	return to.Time.Sub(from.Time)
}
