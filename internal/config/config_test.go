package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbiir/wingo/internal/geo"
	"github.com/planbiir/wingo/internal/merge"
	"github.com/planbiir/wingo/internal/verify"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, verify.DefaultConfig(), cfg.Verify)
	assert.Equal(t, merge.DefaultConfig(), cfg.Merge)
	assert.Empty(t, cfg.Course)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeFile(t, "wingo.yaml", `
course: courses/wingate.gpx
runner: Ada
verify:
  min_points_between_detections: 12
  min_dwell: 3s
  plausibility_ratio_low: 0.5
merge:
  gap_threshold: 90s
`)
	t.Setenv("WINGO_VERIFY_VERIFIED_LAP_COUNT_FLOOR", "10")
	t.Setenv("WINGO_DB", "/tmp/history.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "courses/wingate.gpx", cfg.Course)
	assert.Equal(t, "Ada", cfg.Runner)
	assert.Equal(t, "/tmp/history.db", cfg.DB)
	assert.Equal(t, 12, cfg.Verify.MinPointsBetweenDetections)
	assert.Equal(t, 3*time.Second, cfg.Verify.MinDwell)
	assert.Equal(t, 0.5, cfg.Verify.PlausibilityRatioLow)
	assert.Equal(t, 10, cfg.Verify.VerifiedLapCountFloor)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10.0, cfg.Verify.StartZoneRadius)
	assert.Equal(t, 2*time.Minute, cfg.Verify.GapThreshold)
	assert.Equal(t, 90*time.Second, cfg.Merge.GapThreshold)
	assert.Equal(t, 60.0, cfg.Merge.MaxDeviationMeters)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "wingo.json", `{"verify": {"start_zone_radius": 15}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15.0, cfg.Verify.StartZoneRadius)
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	path := writeFile(t, "bad.yaml", "verify:\n  plausibility_ratio_high: 2\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, geo.ErrInvalidParameter)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
