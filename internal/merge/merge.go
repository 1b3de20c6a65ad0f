// Package merge patches recording gaps in a track with samples from a
// second device that was running at the same time.
package merge

import (
	"errors"
	"time"

	"github.com/planbiir/wingo/internal/geo"
)

var ErrUntimed = errors.New("merge: primary track lacks timestamps")

// Config controls which gaps are filled and which backup samples are
// trusted.
type Config struct {
	// GapThreshold is the minimum time between two primary samples that
	// counts as a gap. Zero means DefaultConfig().GapThreshold.
	GapThreshold time.Duration `mapstructure:"gap_threshold" json:"gap_threshold"`

	// MaxDeviationMeters drops backup samples farther than this from both
	// gap edges. Zero means the default; negative disables the guard.
	MaxDeviationMeters float64 `mapstructure:"max_deviation_meters" json:"max_deviation_meters"`
}

// Stats reports what Fill did.
type Stats struct {
	GapsDetected   int `json:"gaps_detected"`
	GapsFilled     int `json:"gaps_filled"`
	InsertedPoints int `json:"inserted_points"`
}

func DefaultConfig() Config {
	return Config{
		GapThreshold:       2 * time.Minute,
		MaxDeviationMeters: 60,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GapThreshold <= 0 {
		c.GapThreshold = d.GapThreshold
	}
	if c.MaxDeviationMeters == 0 {
		c.MaxDeviationMeters = d.MaxDeviationMeters
	}
	return c
}

// Fill returns a copy of primary with backup samples inserted into every
// gap longer than the threshold. Only backup samples strictly inside a gap
// are used, so leading and trailing stretches the primary device never
// recorded are not added. An untimed backup leaves primary unchanged.
func Fill(primary, backup geo.Track, cfg Config) (geo.Track, Stats, error) {
	if len(primary) == 0 {
		return nil, Stats{}, geo.Errorf(geo.ErrEmptyTrack, nil, "primary track has no points")
	}
	if !primary.HasTimestamps() {
		return nil, Stats{}, ErrUntimed
	}
	cfg = cfg.withDefaults()

	start, end := primary.TimeBounds()
	window := within(backup, start, end)

	var (
		stats Stats
		out   = make(geo.Track, 0, len(primary)+len(window))
		next  int
	)
	for i, cur := range primary {
		out = append(out, cur)
		if i == len(primary)-1 {
			break
		}
		after := primary[i+1]
		if !cur.HasTime() || !after.HasTime() || after.Time.Sub(cur.Time) <= cfg.GapThreshold {
			continue
		}
		stats.GapsDetected++

		for next < len(window) && !window[next].Time.After(cur.Time) {
			next++
		}
		inserted := 0
		for ; next < len(window) && window[next].Time.Before(after.Time); next++ {
			cand := window[next]
			if out[len(out)-1].SameLocation(cand) {
				continue
			}
			if cfg.MaxDeviationMeters > 0 &&
				geo.Distance(cur, cand) > cfg.MaxDeviationMeters &&
				geo.Distance(cand, after) > cfg.MaxDeviationMeters {
				continue
			}
			out = append(out, cand)
			inserted++
		}
		if inserted > 0 {
			stats.GapsFilled++
			stats.InsertedPoints += inserted
		}
	}
	return out, stats, nil
}

// within keeps timed samples in the open interval (start, end).
func within(t geo.Track, start, end time.Time) geo.Track {
	var out geo.Track
	for _, p := range t {
		if p.HasTime() && p.Time.After(start) && p.Time.Before(end) {
			out = append(out, p)
		}
	}
	return out
}
