package geo

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceIdentical(t *testing.T) {
	p := Point{Lat: 40.6582, Lon: -73.94441}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("expected 0 for identical points, got %v", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 40.6582, Lon: -73.94441}
	b := Point{Lat: 40.65798, Lon: -73.94437}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
	assert.Greater(t, Distance(a, b), 20.0)
	assert.Less(t, Distance(a, b), 30.0)
}

func TestDistanceOneDegreeLatitude(t *testing.T) {
	// One degree of latitude near the equator is ~110.57 km on WGS-84.
	d := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	assert.InDelta(t, 110574, d, 5)
}

func TestIsWithin(t *testing.T) {
	ref := Point{Lat: 46.0, Lon: 7.0}
	near := Point{Lat: 46.0001, Lon: 7.0} // ~11 m
	far := Point{Lat: 46.001, Lon: 7.0}   // ~111 m
	assert.True(t, IsWithin(near, ref, 20))
	assert.False(t, IsWithin(near, ref, 10))
	assert.False(t, IsWithin(far, ref, 100))
	assert.True(t, IsWithin(ref, ref, 0))
}

func TestValidateCoordinate(t *testing.T) {
	cases := []struct {
		name string
		p    Point
		ok   bool
	}{
		{"origin", Point{}, true},
		{"poles", Point{Lat: 90, Lon: 180}, true},
		{"lat too high", Point{Lat: 90.1}, false},
		{"lon too low", Point{Lon: -180.5}, false},
		{"nan", Point{Lat: math.NaN()}, false},
		{"inf", Point{Lon: math.Inf(1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCoordinate(tc.p)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCoordinate)
			}
		})
	}
}

func TestTrackValidate(t *testing.T) {
	var empty Track
	require.ErrorIs(t, empty.Validate(), ErrEmptyTrack)

	tr := Track{{Lat: 46, Lon: 7}, {Lat: 46, Lon: 7}, {Lat: 95, Lon: 7}}
	err := tr.Validate()
	require.ErrorIs(t, err, ErrInvalidCoordinate)
	assert.Equal(t, []int{2}, Indices(err))

	var ge *Error
	require.True(t, errors.As(err, &ge))
	assert.Contains(t, ge.Error(), "point 2")
}

func TestTrackTimeBounds(t *testing.T) {
	base := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	tr := Track{
		{Lat: 46, Lon: 7, Time: base},
		{Lat: 46.0001, Lon: 7, Time: base.Add(time.Minute)},
		{Lat: 46.0002, Lon: 7, Time: base.Add(3 * time.Minute)},
	}
	require.True(t, tr.HasTimestamps())
	start, end := tr.TimeBounds()
	assert.Equal(t, base, start)
	assert.Equal(t, base.Add(3*time.Minute), end)
	assert.Equal(t, 3*time.Minute, tr.Duration())

	untimed := Track{{Lat: 46, Lon: 7}, {Lat: 46.0001, Lon: 7}}
	assert.False(t, untimed.HasTimestamps())
	assert.Zero(t, untimed.Duration())
}

func TestTrackSliceClamps(t *testing.T) {
	tr := Track{{Lat: 1}, {Lat: 2}, {Lat: 3}, {Lat: 4}}
	assert.Len(t, tr.Slice(1, 2), 2)
	assert.Len(t, tr.Slice(-5, 10), 4)
	assert.Nil(t, tr.Slice(3, 1))
}

func TestTrackBoundAndLength(t *testing.T) {
	tr := Track{{Lat: 46, Lon: 7}, {Lat: 46.001, Lon: 7.002}}
	b := tr.Bound()
	assert.Equal(t, 7.0, b.Min.Lon())
	assert.Equal(t, 46.001, b.Max.Lat())
	assert.InDelta(t, Distance(tr[0], tr[1]), tr.Length(), 1e-9)
}

func TestTurnAngle(t *testing.T) {
	a := Point{Lat: 46, Lon: 7}
	b := Point{Lat: 46.001, Lon: 7}
	straight := Point{Lat: 46.002, Lon: 7}
	right := Point{Lat: 46.001, Lon: 7.001}
	assert.InDelta(t, 0, TurnAngle(a, b, straight), 0.5)
	assert.InDelta(t, 90, TurnAngle(a, b, right), 1)
}

func TestParseLatLon(t *testing.T) {
	p, err := ParseLatLon(" 40.6587, -73.9449 ")
	require.NoError(t, err)
	assert.Equal(t, Point{Lat: 40.6587, Lon: -73.9449}, p)

	for _, s := range []string{"40.6587", "abc,1", "1,abc", "95,1", "1,-181"} {
		_, err := ParseLatLon(s)
		assert.ErrorIs(t, err, ErrInvalidCoordinate, "input %q", s)
	}
}
