package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
)

type courseInfo struct {
	Name         string      `json:"name"`
	Waypoints    int         `json:"waypoints"`
	LengthMeters float64     `json:"length_meters"`
	Center       geo.Point   `json:"center"`
	Polyline     string      `json:"polyline"`
	Points       []geo.Point `json:"points"`
}

func main() {
	var (
		inputFile  = flag.String("i", "", "Input course file (default: built-in Wingate loop)")
		outputFile = flag.String("o", "", "Output course file; the extension picks gpx, geojson or polyline")
		smooth     = flag.Int("smooth", 0, "Moving-average window applied to the waypoints")
		addPoint   = flag.String("add", "", "Insert a waypoint given as lat,lon")
		addAt      = flag.Int("at", -1, "Index for -add (-1 inserts before the final waypoint)")
		remove     = flag.Int("remove", -1, "Remove the waypoint at this index")
		closure    = flag.Float64("closure", course.DefaultOptions().ClosureThreshold, "Maximum gap in meters between last and first waypoint")
		maxSeg     = flag.Float64("max-segment", course.DefaultOptions().MaxSegmentLength, "Maximum distance in meters between consecutive waypoints")
		statsJSON  = flag.Bool("stats-json", false, "Output course details as JSON")
	)

	flag.Usage = func() {
		fmt.Printf("course - Inspect, edit and convert reference courses\n\n")
		fmt.Printf("usage: course [-i loop.gpx] [-o loop.geojson]\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  course\n")
		fmt.Printf("  course -i loop.gpx -o loop.polyline\n")
		fmt.Printf("  course -i loop.geojson -smooth 3 -o smooth.gpx\n")
		fmt.Printf("  course -add 40.6583,-73.9446 -at 5 -o edited.geojson\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	opts := course.Options{ClosureThreshold: *closure, MaxSegmentLength: *maxSeg}

	c, err := load(*inputFile, opts)
	if err != nil {
		fatalf("Error loading course: %v", err)
	}

	if *remove >= 0 {
		if c, err = c.RemovePoint(*remove); err != nil {
			fatalf("Error removing waypoint: %v", err)
		}
	}
	if *addPoint != "" {
		p, err := geo.ParseLatLon(*addPoint)
		if err != nil {
			fatalf("Error parsing -add: %v", err)
		}
		if c, err = c.AddPoint(p, *addAt); err != nil {
			fatalf("Error adding waypoint: %v", err)
		}
	}
	if *smooth > 1 {
		if c, err = c.Smooth(*smooth); err != nil {
			fatalf("Error smoothing course: %v", err)
		}
	}

	if *statsJSON {
		data, err := json.MarshalIndent(courseInfo{
			Name:         c.Name(),
			Waypoints:    c.Len(),
			LengthMeters: c.Length(),
			Center:       c.Center(),
			Polyline:     c.EncodePolyline(),
			Points:       c.Waypoints(),
		}, "", "  ")
		if err != nil {
			fatalf("Error marshaling course: %v", err)
		}
		fmt.Println(string(data))
	} else {
		printCourse(c)
	}

	if *outputFile != "" {
		if err := c.Save(*outputFile); err != nil {
			fatalf("Error writing course: %v", err)
		}
		if !*statsJSON {
			fmt.Printf("💾 Wrote %s course: %s\n", course.FormatOf(*outputFile), *outputFile)
		}
	}
}

func load(path string, opts course.Options) (*course.Course, error) {
	if path == "" {
		return course.New(course.Wingate().Name(), course.WingateLoop, opts)
	}
	return course.Load(path, opts)
}

func printCourse(c *course.Course) {
	center := c.Center()
	fmt.Printf("\n🗺️  %s\n", c.Name())
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("📍 Waypoints: %d\n", c.Len())
	fmt.Printf("📏 Length: %.1f m (%.3f km)\n", c.Length(), c.Length()/1000)
	fmt.Printf("🎯 Center: %.6f, %.6f\n", center.Lat, center.Lon)
	for i, wp := range c.Waypoints() {
		fmt.Printf("   %2d  %.6f, %.6f\n", i, wp.Lat, wp.Lon)
	}
	fmt.Printf("🔗 Polyline: %s\n", c.EncodePolyline())
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
