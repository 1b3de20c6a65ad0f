package gpx

import (
	"encoding/xml"
	"time"
)

// RawXML keeps an <extensions> block verbatim so heart-rate and cadence
// data written by watches survives a read/write cycle.
type RawXML []byte

func (r RawXML) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if len(r) == 0 {
		return nil
	}

	type inner struct {
		Content string `xml:",innerxml"`
	}

	return e.EncodeElement(inner{Content: string(r)}, start)
}

func (r *RawXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type inner struct {
		Content string `xml:",innerxml"`
	}

	var data inner
	if err := d.DecodeElement(&data, &start); err != nil {
		return err
	}

	if len(data.Content) == 0 {
		*r = nil
		return nil
	}

	*r = append((*r)[:0], data.Content...)
	return nil
}

// Point is a trkpt, rtept or wpt. Time is nil for untimed points so that
// course files are written without placeholder timestamps.
type Point struct {
	Lat        float64    `xml:"lat,attr"`
	Lon        float64    `xml:"lon,attr"`
	Elevation  float64    `xml:"ele,omitempty"`
	Time       *time.Time `xml:"time,omitempty"`
	Name       string     `xml:"name,omitempty"`
	Extensions RawXML     `xml:"extensions,omitempty"`
}

// Track is a recorded <trk>.
type Track struct {
	Name        string         `xml:"name,omitempty"`
	Description string         `xml:"desc,omitempty"`
	Segments    []TrackSegment `xml:"trkseg"`
	Extensions  RawXML         `xml:"extensions,omitempty"`
}

type TrackSegment struct {
	Points     []Point `xml:"trkpt"`
	Extensions RawXML  `xml:"extensions,omitempty"`
}

// Route is a planned <rte>; course files are often published this way.
type Route struct {
	Name   string  `xml:"name,omitempty"`
	Points []Point `xml:"rtept"`
}

// GPX is the document root. Field order follows the GPX 1.1 schema
// sequence so encoded files validate.
type GPX struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`

	XMLNS    string `xml:"xmlns,attr,omitempty"`
	XMLNSXSI string `xml:"xmlns:xsi,attr,omitempty"`
	XSI      string `xml:"xsi:schemaLocation,attr,omitempty"`

	XMLNSGPXTPX string `xml:"xmlns:gpxtpx,attr,omitempty"`

	Metadata   *Metadata `xml:"metadata,omitempty"`
	Waypoints  []Point   `xml:"wpt"`
	Routes     []Route   `xml:"rte"`
	Tracks     []Track   `xml:"trk"`
	Extensions RawXML    `xml:"extensions,omitempty"`
}

type Metadata struct {
	Name        string     `xml:"name,omitempty"`
	Description string     `xml:"desc,omitempty"`
	Time        *time.Time `xml:"time,omitempty"`
}

// Stats is a quick description of a parsed file.
type Stats struct {
	Points         int           `json:"points"`
	Tracks         int           `json:"tracks"`
	Segments       int           `json:"segments"`
	Routes         int           `json:"routes"`
	Duration       time.Duration `json:"duration"`
	DistanceMeters float64       `json:"distance_meters"`
}
