package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbiir/wingo/internal/config"
	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
	"github.com/planbiir/wingo/internal/verify"
)

func TestLoadCourseBuiltIn(t *testing.T) {
	cfg := config.Config{Verify: verify.DefaultConfig()}
	c, err := loadCourse(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Wingate Loop", c.Name())
	assert.Equal(t, 18, c.Len())
}

func TestLoadCourseBuiltInHonoursLimits(t *testing.T) {
	// The built-in loop's closing edge is about 3.4 m.
	cfg := config.Config{Verify: verify.DefaultConfig()}
	cfg.Verify.ClosureThreshold = 1

	_, err := loadCourse(cfg)
	require.ErrorIs(t, err, geo.ErrMalformedCourse)
}

func TestLoadCourseFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.geojson")
	require.NoError(t, course.Wingate().Save(path))

	cfg := config.Config{Course: path, Verify: verify.DefaultConfig()}
	c, err := loadCourse(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Wingate Loop", c.Name())
}
