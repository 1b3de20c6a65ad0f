package course

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planbiir/wingo/internal/gpx"
)

// Format is an on-disk course encoding.
type Format string

const (
	FormatGPX      Format = "gpx"
	FormatGeoJSON  Format = "geojson"
	FormatPolyline Format = "polyline"
)

// FormatOf picks the encoding from a file extension. Unknown extensions are
// read as an encoded polyline.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return FormatGPX
	case ".geojson", ".json":
		return FormatGeoJSON
	default:
		return FormatPolyline
	}
}

// Load reads a course file. When the file carries no name the base file
// name is used.
func Load(path string, opts Options) (*Course, error) {
	var (
		c   *Course
		err error
	)
	switch FormatOf(path) {
	case FormatGPX:
		var doc *gpx.GPX
		doc, err = gpx.Parse(path)
		if err != nil {
			return nil, err
		}
		c, err = FromGPX(doc, "", opts)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read course %s: %w", path, err)
		}
		if FormatOf(path) == FormatGeoJSON {
			c, err = FromGeoJSON(data, "", opts)
		} else {
			c, err = DecodePolyline(strings.TrimSpace(string(data)), "", opts)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", path, err)
	}
	if c.name == "" {
		c.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Save writes c in the encoding matching the path's extension.
func (c *Course) Save(path string) error {
	switch FormatOf(path) {
	case FormatGPX:
		return c.ToGPX().Write(path)
	case FormatGeoJSON:
		data, err := c.ToGeoJSON()
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	default:
		return os.WriteFile(path, []byte(c.EncodePolyline()+"\n"), 0o644)
	}
}
