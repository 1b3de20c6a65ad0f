package plausibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

// mixed returns on on-course samples followed by off off-course ones.
func mixed(on, off int) geo.Track {
	var tr geo.Track
	for i := 0; i < on; i++ {
		tr = append(tr, course.WingateLoop[i%len(course.WingateLoop)])
	}
	for i := 0; i < off; i++ {
		tr = append(tr, geo.Point{Lat: 40.67, Lon: -73.95 + float64(i)*0.00001})
	}
	return tr
}

func TestScoreCountsOnCoursePoints(t *testing.T) {
	s := Score(mixed(35, 65), course.Wingate(), 0, DefaultPolicy())
	assert.Equal(t, 35, s.PointsInCourse)
	assert.Equal(t, 100, s.TotalPoints)
	assert.InDelta(t, 0.35, s.Ratio, 1e-12)
}

func TestScoreTiers(t *testing.T) {
	c := course.Wingate()
	policy := DefaultPolicy()
	tr := mixed(35, 65)

	cases := []struct {
		name  string
		loops int
		want  bool
	}{
		{"long run uses the lower ratio", 16, true},
		{"exactly at the floor", 15, true},
		{"short run needs the higher ratio", 9, false},
		{"no laps", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tr, c, tc.loops, policy).Verified)
		})
	}

	assert.True(t, Score(mixed(40, 60), c, 9, policy).Verified)
	assert.False(t, Score(mixed(29, 71), c, 20, policy).Verified)
}

func TestScoreEmptyTrack(t *testing.T) {
	s := Score(nil, course.Wingate(), 0, DefaultPolicy())
	assert.Zero(t, s.Ratio)
	assert.False(t, s.Verified)
}

func TestRequired(t *testing.T) {
	p := Policy{LapFloor: 3, RatioHigh: 0.1, RatioLow: 0.9}
	assert.Equal(t, 0.9, p.Required(2))
	assert.Equal(t, 0.1, p.Required(3))
}
