package quality

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbiir/wingo/internal/geo"
)

var base = time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)

// straight builds n samples heading north, step meters and interval apart.
func straight(n int, step float64, interval time.Duration) geo.Track {
	tr := make(geo.Track, n)
	p := orb.Point{7.0, 46.0}
	for i := range tr {
		tr[i] = geo.FromOrb(p)
		tr[i].Time = base.Add(time.Duration(i) * interval)
		p = orbgeo.PointAtBearingAndDistance(p, 0, step)
	}
	return tr
}

func TestSummarizeRunningTrack(t *testing.T) {
	tr := straight(60, 3, time.Second)
	r := Summarize(tr, DefaultOptions())

	assert.Equal(t, 60, r.Points)
	assert.Equal(t, ActivityRunning, r.ActivityType)
	assert.InDelta(t, 3.0, r.P95Speed, 0.05)
	assert.InDelta(t, 3.0, r.AvgPointSpacing, 0.05)
	assert.InDelta(t, 1.0, r.AvgInterval, 1e-9)
	assert.Empty(t, r.UnusualPoints)
	assert.Empty(t, r.Spikes)
	assert.Empty(t, r.Gaps)
	assert.Zero(t, r.UnusualPercent())
}

func TestSummarizeFlagsSpeedAndSpike(t *testing.T) {
	tr := straight(30, 3, time.Second)
	// Throw sample 15 ~300 m east; it jumps out and straight back.
	jumped := orbgeo.PointAtBearingAndDistance(tr[15].Orb(), 90, 300)
	tr[15].Lat, tr[15].Lon = jumped.Lat(), jumped.Lon()

	r := Summarize(tr, DefaultOptions())
	assert.Equal(t, []int{15, 16}, r.UnusualPoints)
	assert.Equal(t, []int{15}, r.Spikes)
	assert.InDelta(t, 300, r.MaxPointSpacing, 1)
}

func TestSummarizeGaps(t *testing.T) {
	tr := straight(10, 3, time.Second)
	for i := 5; i < len(tr); i++ {
		tr[i].Time = tr[i].Time.Add(5 * time.Minute)
	}

	r := Summarize(tr, DefaultOptions())
	require.Len(t, r.Gaps, 1)
	assert.Equal(t, 5, r.Gaps[0].Index)
	assert.Equal(t, 5*time.Minute+time.Second, r.Gaps[0].Duration)
	assert.Equal(t, tr[4].Time, r.Gaps[0].Start)
}

func TestSummarizeUntimedUsesTeleportGuard(t *testing.T) {
	tr := straight(10, 3, 0)
	for i := range tr {
		tr[i].Time = time.Time{}
	}
	far := orbgeo.PointAtBearingAndDistance(tr[9].Orb(), 0, 500)
	tr = append(tr, geo.FromOrb(far))

	r := Summarize(tr, DefaultOptions())
	assert.Equal(t, ActivityUnknown, r.ActivityType)
	assert.Equal(t, []int{10}, r.UnusualPoints)
	assert.Zero(t, r.AvgInterval)
}

func TestDetectActivityBands(t *testing.T) {
	cases := []struct {
		step  float64
		want  string
		limit float64
	}{
		{3, ActivityRunning, 12},
		{12, ActivityCycling, 30},
		{35, ActivityHighSpeed, 50},
	}
	for _, tc := range cases {
		activity, limit, _ := detectActivity(straight(40, tc.step, time.Second))
		assert.Equal(t, tc.want, activity, "step %v", tc.step)
		assert.Equal(t, tc.limit, limit)
	}
}

func TestAutoSpeedLimit(t *testing.T) {
	tr := straight(40, 15, time.Second)
	opts := DefaultOptions()

	assert.Len(t, Summarize(tr, opts).UnusualPoints, 39, "12 m/s flags every cycling step")

	opts.MaxSpeed = 0
	r := Summarize(tr, opts)
	assert.Equal(t, 30.0, r.SpeedLimit)
	assert.Empty(t, r.UnusualPoints)
}

func TestSummarizeShortTracks(t *testing.T) {
	r := Summarize(geo.Track{{Lat: 46, Lon: 7}}, DefaultOptions())
	assert.Equal(t, 1, r.Points)
	assert.Equal(t, ActivityUnknown, r.ActivityType)
	assert.Zero(t, Summarize(nil, DefaultOptions()).Points)
}
