// Package config loads CLI settings and verification thresholds from an
// optional YAML, JSON or TOML file, with WINGO_* environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/planbiir/wingo/internal/merge"
	"github.com/planbiir/wingo/internal/verify"
)

const EnvPrefix = "WINGO"

type Config struct {
	Course string        `mapstructure:"course"` // course file; empty means the built-in Wingate loop
	DB     string        `mapstructure:"db"`     // sqlite history file; empty disables history
	Runner string        `mapstructure:"runner"`
	Verify verify.Config `mapstructure:"verify"`
	Merge  merge.Config  `mapstructure:"merge"` // backup-track gap filling
}

// Load reads path when it is not empty, applies environment overrides such
// as WINGO_VERIFY_START_ZONE_RADIUS, and validates the thresholds.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Verify.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Every key needs a default, otherwise AutomaticEnv never sees it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := verify.DefaultConfig()
	m := merge.DefaultConfig()

	v.SetDefault("course", "")
	v.SetDefault("db", "")
	v.SetDefault("runner", "")

	v.SetDefault("verify.start_zone_radius", d.StartZoneRadius)
	v.SetDefault("verify.waypoint_crossing_radius", d.WaypointCrossingRadius)
	v.SetDefault("verify.min_points_between_detections", d.MinPointsBetweenDetections)
	v.SetDefault("verify.min_distinct_waypoints", d.MinDistinctWaypoints)
	v.SetDefault("verify.segment_radius", d.SegmentRadius)
	v.SetDefault("verify.min_movement_meters", d.MinMovementMeters)
	v.SetDefault("verify.min_dwell", d.MinDwell)
	v.SetDefault("verify.closure_threshold", d.ClosureThreshold)
	v.SetDefault("verify.max_segment_length", d.MaxSegmentLength)
	v.SetDefault("verify.lap_length_meters", d.LapLengthMeters)
	v.SetDefault("verify.verified_lap_count_floor", d.VerifiedLapCountFloor)
	v.SetDefault("verify.plausibility_ratio_high", d.PlausibilityRatioHigh)
	v.SetDefault("verify.plausibility_ratio_low", d.PlausibilityRatioLow)
	v.SetDefault("verify.max_speed", d.MaxSpeed)
	v.SetDefault("verify.teleport_meters", d.TeleportMeters)
	v.SetDefault("verify.gap_threshold", d.GapThreshold)

	v.SetDefault("merge.gap_threshold", m.GapThreshold)
	v.SetDefault("merge.max_deviation_meters", m.MaxDeviationMeters)
}
