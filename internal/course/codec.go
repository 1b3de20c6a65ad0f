package course

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	polyline "github.com/twpayne/go-polyline"

	"github.com/planbiir/wingo/internal/geo"
	"github.com/planbiir/wingo/internal/gpx"
)

// ToGPX writes the waypoints as a single untimed track.
func (c *Course) ToGPX() *gpx.GPX {
	return gpx.FromTrack(c.name, c.waypoints)
}

// FromGPX builds a course from a document's track, route or waypoints, in
// that order of preference. An empty name falls back to the document name.
func FromGPX(doc *gpx.GPX, name string, opts Options) (*Course, error) {
	path, err := doc.Path()
	if err != nil {
		return nil, geo.Errorf(geo.ErrMalformedCourse, nil, "%v", err)
	}
	if name == "" {
		name = doc.Name()
	}
	return New(name, stripTime(path), opts)
}

// EncodePolyline encodes the waypoints in Google's polyline format at 1e-5
// precision.
func (c *Course) EncodePolyline() string {
	coords := make([][]float64, len(c.waypoints))
	for i, wp := range c.waypoints {
		coords[i] = []float64{wp.Lat, wp.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline parses an encoded polyline into a course.
func DecodePolyline(encoded, name string, opts Options) (*Course, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, geo.Errorf(geo.ErrMalformedCourse, nil, "decode polyline: %v", err)
	}
	if len(rest) != 0 {
		return nil, geo.Errorf(geo.ErrMalformedCourse, nil, "decode polyline: %d trailing bytes", len(rest))
	}
	wps := make([]geo.Point, len(coords))
	for i, c := range coords {
		wps[i] = geo.Point{Lat: c[0], Lon: c[1]}
	}
	return New(name, wps, opts)
}

// ToGeoJSON encodes the course as a LineString feature with the name and
// length as properties.
func (c *Course) ToGeoJSON() ([]byte, error) {
	f := geojson.NewFeature(geo.Track(c.waypoints).LineString())
	f.Properties["name"] = c.name
	f.Properties["length_meters"] = c.Length()
	return f.MarshalJSON()
}

// FromGeoJSON accepts a Feature whose geometry is a LineString. When name is
// empty the feature's "name" property is used.
func FromGeoJSON(data []byte, name string, opts Options) (*Course, error) {
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		return nil, geo.Errorf(geo.ErrMalformedCourse, nil, "geojson geometry is %T, want LineString", f.Geometry)
	}
	if name == "" {
		name, _ = f.Properties["name"].(string)
	}
	wps := make([]geo.Point, len(ls))
	for i, p := range ls {
		wps[i] = geo.FromOrb(p)
	}
	return New(name, wps, opts)
}

func stripTime(t geo.Track) []geo.Point {
	out := make([]geo.Point, len(t))
	for i, p := range t {
		out[i] = geo.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}
