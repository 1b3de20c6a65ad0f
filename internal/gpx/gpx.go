// Package gpx reads and writes GPX 1.1 documents and converts them to and
// from geo.Track.
package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/planbiir/wingo/internal/geo"
)

const (
	Namespace = "http://www.topografix.com/GPX/1/1"
	Creator   = "wingo"
)

// ErrNoPath is returned when a document has no track, route or waypoints.
var ErrNoPath = errors.New("gpx: no track, route or waypoint points")

// Parse reads a GPX file from disk.
func Parse(filename string) (*GPX, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader decodes a GPX document and fills in the namespace, version and
// creator when the source left them out.
func ParseReader(r io.Reader) (*GPX, error) {
	var doc GPX
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	if doc.XMLNS == "" {
		doc.XMLNS = Namespace
	}
	if doc.Version == "" {
		doc.Version = "1.1"
	}
	if doc.Creator == "" {
		doc.Creator = Creator
	}
	return &doc, nil
}

// Write saves the document to filename.
func (g *GPX) Write(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := g.Encode(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Encode writes the XML header and the indented document to w.
func (g *GPX) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	return encoder.Close()
}

// TrackPoints returns every trkpt of every track and segment, in file order.
func (g *GPX) TrackPoints() geo.Track {
	var out geo.Track
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				out = append(out, toGeo(p))
			}
		}
	}
	return out
}

// RoutePoints returns every rtept in file order.
func (g *GPX) RoutePoints() geo.Track {
	var out geo.Track
	for _, rte := range g.Routes {
		for _, p := range rte.Points {
			out = append(out, toGeo(p))
		}
	}
	return out
}

// Path returns the track points when present, otherwise the route points,
// otherwise the waypoints. ErrNoPath when all three are empty.
func (g *GPX) Path() (geo.Track, error) {
	if pts := g.TrackPoints(); len(pts) > 0 {
		return pts, nil
	}
	if pts := g.RoutePoints(); len(pts) > 0 {
		return pts, nil
	}
	if len(g.Waypoints) > 0 {
		out := make(geo.Track, len(g.Waypoints))
		for i, p := range g.Waypoints {
			out[i] = toGeo(p)
		}
		return out, nil
	}
	return nil, ErrNoPath
}

// Name returns the first non-empty of the metadata, track and route names.
func (g *GPX) Name() string {
	if g.Metadata != nil && g.Metadata.Name != "" {
		return g.Metadata.Name
	}
	for _, trk := range g.Tracks {
		if trk.Name != "" {
			return trk.Name
		}
	}
	for _, rte := range g.Routes {
		if rte.Name != "" {
			return rte.Name
		}
	}
	return ""
}

// FromTrack builds a single-track, single-segment document.
func FromTrack(name string, t geo.Track) *GPX {
	points := make([]Point, len(t))
	for i, p := range t {
		points[i] = fromGeo(p)
	}
	return &GPX{
		Version:  "1.1",
		Creator:  Creator,
		XMLNS:    Namespace,
		Metadata: &Metadata{Name: name},
		Tracks: []Track{{
			Name:     name,
			Segments: []TrackSegment{{Points: points}},
		}},
	}
}

// Stats counts points, tracks, segments and routes and measures the track
// geodesically.
func (g *GPX) Stats() Stats {
	st := Stats{Tracks: len(g.Tracks), Routes: len(g.Routes)}
	for _, trk := range g.Tracks {
		st.Segments += len(trk.Segments)
	}

	pts := g.TrackPoints()
	st.Points = len(pts)
	st.Duration = pts.Duration()
	st.DistanceMeters = pts.Length()
	return st
}

func toGeo(p Point) geo.Point {
	gp := geo.Point{Lat: p.Lat, Lon: p.Lon}
	if p.Time != nil {
		gp.Time = *p.Time
	}
	return gp
}

func fromGeo(p geo.Point) Point {
	out := Point{Lat: p.Lat, Lon: p.Lon}
	if p.HasTime() {
		ts := p.Time.UTC()
		out.Time = &ts
	}
	return out
}
