package detect

import (
	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

// Segments finds every start-to-end attempt at s. An attempt opens at the
// first sample near the start while none is open and closes at the next
// sample near the end. A sample near the start never closes an attempt, so
// lingering at the start keeps the earliest start index. Distances are the
// raw geodesic path between the two samples.
func Segments(track geo.Track, s course.Segment, opts Options) []Attempt {
	var (
		attempts []Attempt
		open     = -1
	)
	for i, p := range track {
		if s.NearStart(p, opts.SegmentRadius) {
			if open < 0 {
				open = i
			}
			continue
		}
		if open < 0 || !s.NearEnd(p, opts.SegmentRadius) {
			continue
		}

		a := Attempt{
			StartIndex:     open,
			EndIndex:       i,
			DistanceMeters: track.Slice(open, i).Length(),
		}
		if track[open].HasTime() && p.HasTime() {
			a.StartTime = track[open].Time
			a.EndTime = p.Time
			a.Elapsed = p.Time.Sub(track[open].Time)
		}
		attempts = append(attempts, a)
		open = -1
	}
	return attempts
}

// Fastest returns the attempt with the shortest elapsed time, or false when
// there are no timed attempts.
func Fastest(attempts []Attempt) (Attempt, bool) {
	var (
		best  Attempt
		found bool
	)
	for _, a := range attempts {
		if a.StartTime.IsZero() {
			continue
		}
		if !found || a.Elapsed < best.Elapsed {
			best, found = a, true
		}
	}
	return best, found
}
