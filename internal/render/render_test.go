package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

func TestOverlayWritesPNG(t *testing.T) {
	c := course.Wingate()
	var tr geo.Track
	for i := 0; i < 36; i++ {
		tr = append(tr, course.WingateLoop[i%len(course.WingateLoop)])
	}

	path := filepath.Join(t.TempDir(), "overlay.png")
	require.NoError(t, Overlay(tr, c, []int{0, 17, 35, 99}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(data), 1000)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestOverlayPlotLayers(t *testing.T) {
	c := course.Wingate()
	p, err := overlayPlot(nil, c, nil)
	require.NoError(t, err)
	assert.Equal(t, "Wingate Loop - 0 samples", p.Title.Text)
}

func TestProjectorCentersOrigin(t *testing.T) {
	origin := geo.Point{Lat: 40.658, Lon: -73.944}
	xys := projector(origin)([]geo.Point{origin, {Lat: 40.659, Lon: -73.944}})
	assert.Zero(t, xys[0].X)
	assert.Zero(t, xys[0].Y)
	assert.InDelta(t, 110.5, xys[1].Y, 0.1)
}
