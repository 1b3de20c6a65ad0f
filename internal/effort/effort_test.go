package effort

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 8, 0, 0, 0, time.UTC)
}

func sample() []Effort {
	return []Effort{
		{ActivityID: "1", AthleteID: "7", AthleteName: "Ada L", Start: day(15), Elapsed: 95 * time.Second},
		{ActivityID: "2", AthleteID: "9", AthleteName: "Bo K", Start: day(18), Elapsed: 80 * time.Second},
		{ActivityID: "3", AthleteID: "7", AthleteName: "Ada L", Start: day(20), Elapsed: 88 * time.Second},
		{ActivityID: "4", AthleteID: "3", AthleteName: "Cy M", Start: day(16), Elapsed: 120 * time.Second},
		{ActivityID: "5", AthleteID: "9", AthleteName: "Bo K", Start: day(24), Elapsed: 82 * time.Second},
	}
}

func TestByDate(t *testing.T) {
	in := sample()
	s := ByDate(in, 3)

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, day(15), s.First)
	assert.Equal(t, day(24), s.Last)
	assert.Equal(t, "2", s.Fastest.ActivityID)

	var ids []string
	for _, e := range s.Recent {
		ids = append(ids, e.ActivityID)
	}
	assert.Equal(t, []string{"5", "3", "2"}, ids)
	assert.Equal(t, "1", in[0].ActivityID, "input order is untouched")

	assert.Len(t, ByDate(in, 0).Recent, 5)
	assert.Zero(t, ByDate(nil, 5).Count)
}

func TestByAthlete(t *testing.T) {
	got := ByAthlete(sample())
	want := []AthleteSummary{
		{AthleteID: "7", Name: "Ada L", Count: 2, Fastest: sample()[2]},
		{AthleteID: "9", Name: "Bo K", Count: 2, Fastest: sample()[1]},
		{AthleteID: "3", Name: "Cy M", Count: 1, Fastest: sample()[3]},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ByAthlete (-want +got):\n%s", diff)
	}
	assert.Empty(t, ByAthlete(nil))
}

func TestFilterRange(t *testing.T) {
	got := FilterRange(sample(), day(16), day(20))
	require.Len(t, got, 3)
	assert.Len(t, FilterRange(sample(), time.Time{}, day(16)), 2)
	assert.Len(t, FilterRange(sample(), time.Time{}, time.Time{}), 5)
}

func TestReadCSV(t *testing.T) {
	const cache = `date,elapsed_time,activity_id
2025-03-16T09:12:00Z,91,1234
2025-03-17T07:00:00,85,5678
`
	got, err := ReadCSV(strings.NewReader(cache))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1234", got[0].ActivityID)
	assert.Equal(t, 91*time.Second, got[0].Elapsed)
	assert.Equal(t, time.Date(2025, 3, 17, 7, 0, 0, 0, time.UTC), got[1].Start)
	assert.Empty(t, got[0].AthleteID)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,activity_id\n2025-03-16,1\n"))
	assert.ErrorContains(t, err, "elapsed_time")

	_, err = ReadCSV(strings.NewReader("date,elapsed_time,activity_id\nyesterday,10,1\n"))
	assert.ErrorContains(t, err, "line 2")

	got, err := ReadCSV(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVRoundTrip(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, sample()))

	got, err := ReadCSV(strings.NewReader(buf.String()))
	require.NoError(t, err)
	if diff := cmp.Diff(sample(), got); diff != "" {
		t.Fatalf("csv round trip (-want +got):\n%s", diff)
	}
}

func TestReadJSON(t *testing.T) {
	const body = `[
  {"start_date_local": "2025-03-16T09:12:00Z", "elapsed_time": 91,
   "activity": {"id": 1234}, "athlete": {"id": 7, "firstname": "Ada", "lastname": "L"}},
  {"start_date": "2025-03-17T07:00:00Z", "elapsed_time": 85, "activity": {"id": 5678}}
]`
	got, err := ReadJSON(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ada L", got[0].AthleteName)
	assert.Equal(t, "7", got[0].AthleteID)
	assert.Empty(t, got[1].AthleteID)
	assert.Equal(t, "https://www.strava.com/activities/5678", got[1].ActivityURL())
}
