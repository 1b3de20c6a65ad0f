package merge

import (
	"errors"
	"testing"
	"time"

	"github.com/planbiir/wingo/internal/geo"
)

var base = time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)

func TestFillInsertsBackupSamples(t *testing.T) {
	primary := geo.Track{
		{Lat: 46.0, Lon: 7.0, Time: base},
		{Lat: 46.0001, Lon: 7.0001, Time: base.Add(30 * time.Second)},
		{Lat: 46.0005, Lon: 7.0005, Time: base.Add(10 * time.Minute)},
	}
	backup := geo.Track{
		{Lat: 46.0002, Lon: 7.0002, Time: base.Add(6 * time.Minute)},
		{Lat: 46.0003, Lon: 7.0003, Time: base.Add(7 * time.Minute)},
	}

	merged, stats, err := Fill(primary, backup, Config{GapThreshold: time.Minute, MaxDeviationMeters: 100})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if len(merged) != 5 {
		t.Fatalf("expected 5 points after merge, got %d", len(merged))
	}
	if stats.GapsDetected != 1 || stats.GapsFilled != 1 || stats.InsertedPoints != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !merged[2].Time.After(merged[1].Time) || !merged[3].Time.Before(merged[4].Time) {
		t.Fatalf("inserted points are not ordered between surrounding points")
	}
	if len(primary) != 3 {
		t.Fatalf("primary was modified")
	}
}

func TestFillSkipsTails(t *testing.T) {
	primary := geo.Track{
		{Lat: 46.0, Lon: 7.0, Time: base},
		{Lat: 46.0001, Lon: 7.0001, Time: base.Add(30 * time.Second)},
		{Lat: 46.0002, Lon: 7.0002, Time: base.Add(60 * time.Second)},
	}
	backup := geo.Track{
		{Lat: 45.9, Lon: 6.9, Time: base.Add(-2 * time.Minute)},
		{Lat: 46.1, Lon: 7.1, Time: base.Add(10 * time.Minute)},
	}

	merged, stats, err := Fill(primary, backup, Config{GapThreshold: 20 * time.Second})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if len(merged) != len(primary) {
		t.Fatalf("expected no additional points, got %d", len(merged))
	}
	if stats.GapsDetected != 2 || stats.InsertedPoints != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestFillRespectsDeviation(t *testing.T) {
	primary := geo.Track{
		{Lat: 46.0, Lon: 7.0, Time: base},
		{Lat: 46.0001, Lon: 7.0001, Time: base.Add(30 * time.Second)},
		{Lat: 46.0002, Lon: 7.0002, Time: base.Add(6 * time.Minute)},
	}
	backup := geo.Track{
		{Lat: 47.0, Lon: 8.0, Time: base.Add(3 * time.Minute)},
	}

	merged, stats, err := Fill(primary, backup, Config{GapThreshold: time.Minute, MaxDeviationMeters: 10})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if len(merged) != len(primary) {
		t.Fatalf("expected no merge due to deviation, got %d points", len(merged))
	}
	if stats.GapsDetected != 1 || stats.GapsFilled != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// A negative limit disables the guard.
	merged, stats, err = Fill(primary, backup, Config{GapThreshold: time.Minute, MaxDeviationMeters: -1})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if len(merged) != 4 || stats.GapsFilled != 1 {
		t.Fatalf("expected the far sample to be kept, got %d points %+v", len(merged), stats)
	}
}

func TestFillUntimedBackup(t *testing.T) {
	primary := geo.Track{
		{Lat: 46.0, Lon: 7.0, Time: base},
		{Lat: 46.0, Lon: 7.0, Time: base.Add(10 * time.Minute)},
	}
	backup := geo.Track{{Lat: 46.0, Lon: 7.0001}}

	merged, stats, err := Fill(primary, backup, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged) != 2 || stats.InsertedPoints != 0 {
		t.Fatalf("expected primary unchanged, got %d points %+v", len(merged), stats)
	}
}

func TestFillErrors(t *testing.T) {
	if _, _, err := Fill(nil, nil, Config{}); !errors.Is(err, geo.ErrEmptyTrack) {
		t.Fatalf("expected ErrEmptyTrack, got %v", err)
	}
	untimed := geo.Track{{Lat: 46, Lon: 7}, {Lat: 46.001, Lon: 7}}
	if _, _, err := Fill(untimed, nil, Config{}); !errors.Is(err, ErrUntimed) {
		t.Fatalf("expected ErrUntimed, got %v", err)
	}
}
