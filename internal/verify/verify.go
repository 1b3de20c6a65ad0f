// Package verify turns a recorded track and a reference course into a
// verification result: laps, distance, timing and location plausibility.
package verify

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/detect"
	"github.com/planbiir/wingo/internal/distance"
	"github.com/planbiir/wingo/internal/geo"
	"github.com/planbiir/wingo/internal/plausibility"
	"github.com/planbiir/wingo/internal/quality"
)

// Verify counts the laps of c in track and scores the run. Distance,
// detection and quality run concurrently; plausibility runs after detection
// because the lap count picks the ratio tier. Failures never return a
// partial result.
func Verify(ctx context.Context, track geo.Track, c *course.Course, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, geo.Errorf(geo.ErrInvalidParameter, nil, "no course given")
	}
	if err := track.Validate(); err != nil {
		return nil, err
	}

	var (
		total    float64
		found    detect.Detection
		report   quality.Report
		detector = detect.Detector{Mode: detect.LoopCounting, Options: cfg.DetectOptions()}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		total = distance.Total(track, cfg.DistanceOptions())
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		found, err = detector.Run(track, detect.Target{Course: c})
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		report = quality.Summarize(track, cfg.QualityOptions())
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loops := found.LapCount()
	score := plausibility.Score(track, c, loops, cfg.Policy())

	lapLength := cfg.LapLengthMeters
	if lapLength == 0 {
		lapLength = c.Length()
	}

	res := &Result{
		ID:                   uuid.NewString(),
		CourseName:           c.Name(),
		LoopCount:            loops,
		Boundaries:           append([]int(nil), found.Boundaries...),
		TotalDistanceMeters:  total,
		CourseLengthMeters:   lapLength,
		CourseDistanceMeters: float64(loops) * lapLength,
		LocationVerified:     score.Verified,
		PointsInCourse:       score.PointsInCourse,
		TotalPoints:          score.TotalPoints,
		PlausibilityRatio:    score.Ratio,
		Quality:              report,
	}
	if lapLength > 0 {
		res.ExpectedLaps = total / lapLength
	}

	res.StartTime, res.EndTime = track.TimeBounds()
	res.TotalDuration = res.EndTime.Sub(res.StartTime)
	res.AverageLapDuration = res.TotalDuration
	if loops > 0 {
		res.AverageLapDuration = res.TotalDuration / time.Duration(loops)
	}

	res.Laps = buildLaps(track, found.Boundaries, cfg.DistanceOptions())
	res.LapStats = lapStats(res.Laps)

	res.Status = StatusNotVerified
	if loops >= cfg.VerifiedLapCountFloor && score.Verified {
		res.Status = StatusVerified
	}

	Logf("verify: course=%q laps=%d distance=%.1fm ratio=%.3f status=%s",
		res.CourseName, res.LoopCount, res.TotalDistanceMeters, res.PlausibilityRatio, res.Status)
	return res, nil
}

// VerifySegment finds every timed attempt at an open segment.
func VerifySegment(ctx context.Context, track geo.Track, seg course.Segment, cfg Config) (*SegmentResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detector := detect.Detector{Mode: detect.SinglePassSegment, Options: cfg.DetectOptions()}
	found, err := detector.Run(track, detect.Target{Segment: &seg})
	if err != nil {
		return nil, err
	}

	res := &SegmentResult{
		ID:          uuid.NewString(),
		SegmentName: seg.Name,
		Attempts:    found.Attempts,
		TotalPoints: len(track),
	}
	if best, ok := detect.Fastest(found.Attempts); ok {
		res.Fastest = &best
	}

	Logf("verify: segment=%q attempts=%d", seg.Name, len(res.Attempts))
	return res, nil
}

func buildLaps(track geo.Track, boundaries []int, opts distance.Options) []Lap {
	if len(boundaries) < 2 {
		return nil
	}
	dists := distance.Laps(track, boundaries, opts)
	laps := make([]Lap, len(dists))
	for i := range dists {
		from, to := track[boundaries[i]], track[boundaries[i+1]]
		laps[i] = Lap{
			Number:         i + 1,
			StartIndex:     boundaries[i],
			EndIndex:       boundaries[i+1],
			DistanceMeters: dists[i],
		}
		if from.HasTime() && to.HasTime() {
			laps[i].Duration = to.Time.Sub(from.Time)
		}
	}
	return laps
}

func lapStats(laps []Lap) *LapStats {
	if len(laps) == 0 {
		return nil
	}

	secs := make([]float64, len(laps))
	dists := make([]float64, len(laps))
	for i, l := range laps {
		secs[i] = l.Duration.Seconds()
		dists[i] = l.DistanceMeters
	}

	mean, std := stat.MeanStdDev(secs, nil)
	if len(laps) < 2 || math.IsNaN(std) {
		std = 0
	}
	fast, slow := floats.MinIdx(secs), floats.MaxIdx(secs)

	return &LapStats{
		FastestLap:         laps[fast].Number,
		SlowestLap:         laps[slow].Number,
		Fastest:            laps[fast].Duration,
		Slowest:            laps[slow].Duration,
		Mean:               seconds(mean),
		StdDev:             seconds(std),
		MeanDistanceMeters: stat.Mean(dists, nil),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond)
}
