// Package render draws a track over its reference course as a PNG.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

const (
	metersPerDegLat = 110540.0
	metersPerDegLon = 111320.0
)

var (
	courseColor   = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	trackColor    = color.RGBA{R: 220, G: 60, B: 40, A: 160}
	boundaryColor = color.RGBA{R: 20, G: 150, B: 60, A: 255}
)

// Overlay writes a plot of track over c to path. Positions are meters east
// and north of the course center. Lap boundaries are marked when given. The
// image format follows the file extension (png, svg, pdf...).
func Overlay(track geo.Track, c *course.Course, boundaries []int, path string) error {
	p, err := overlayPlot(track, c, boundaries)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

func overlayPlot(track geo.Track, c *course.Course, boundaries []int) (*plot.Plot, error) {
	origin := c.Center()
	project := projector(origin)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %d samples", c.Name(), len(track))
	p.X.Label.Text = "East (m)"
	p.Y.Label.Text = "North (m)"
	p.Add(plotter.NewGrid())

	// Close the drawn loop back to the anchor.
	wps := append(c.Waypoints(), c.Anchor())
	courseLine, err := plotter.NewLine(project(wps))
	if err != nil {
		return nil, fmt.Errorf("course line: %w", err)
	}
	courseLine.Color = courseColor
	courseLine.Width = vg.Points(3)
	p.Add(courseLine)
	p.Legend.Add("course", courseLine)

	if len(track) > 0 {
		trackLine, err := plotter.NewLine(project(track))
		if err != nil {
			return nil, fmt.Errorf("track line: %w", err)
		}
		trackLine.Color = trackColor
		trackLine.Width = vg.Points(1)
		p.Add(trackLine)
		p.Legend.Add("track", trackLine)
	}

	var marks []geo.Point
	for _, idx := range boundaries {
		if idx >= 0 && idx < len(track) {
			marks = append(marks, track[idx])
		}
	}
	if len(marks) > 0 {
		sc, err := plotter.NewScatter(project(marks))
		if err != nil {
			return nil, fmt.Errorf("boundary marks: %w", err)
		}
		sc.GlyphStyle.Color = boundaryColor
		sc.GlyphStyle.Radius = vg.Points(4)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add("lap boundary", sc)
	}
	return p, nil
}

// projector maps points to a local equirectangular plane around origin.
func projector(origin geo.Point) func([]geo.Point) plotter.XYs {
	cosLat := math.Cos(origin.Lat * math.Pi / 180)
	return func(pts []geo.Point) plotter.XYs {
		xys := make(plotter.XYs, len(pts))
		for i, pt := range pts {
			xys[i].X = (pt.Lon - origin.Lon) * metersPerDegLon * cosLat
			xys[i].Y = (pt.Lat - origin.Lat) * metersPerDegLat
		}
		return xys
	}
}
