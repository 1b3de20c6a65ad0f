package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/planbiir/wingo/internal/config"
	"github.com/planbiir/wingo/internal/course"
	"github.com/planbiir/wingo/internal/geo"
	"github.com/planbiir/wingo/internal/gpx"
	"github.com/planbiir/wingo/internal/merge"
	"github.com/planbiir/wingo/internal/render"
	"github.com/planbiir/wingo/internal/store"
	"github.com/planbiir/wingo/internal/verify"
)

func main() {
	var (
		inputFile   = flag.String("i", "", "Input GPX file")
		configFile  = flag.String("config", "", "Config file (yaml, json or toml)")
		backupFile  = flag.String("backup", "", "GPX from a second device used to fill recording gaps")
		courseFile  = flag.String("course", "", "Course file: .gpx, .geojson or encoded polyline (default: Wingate loop)")
		segStart    = flag.String("start", "", "Segment start as lat,lon (enables segment mode)")
		segEnd      = flag.String("end", "", "Segment end as lat,lon")
		segName     = flag.String("segment-name", "segment", "Segment name")
		runner      = flag.String("runner", "", "Runner name recorded in history")
		dbFile      = flag.String("db", "", "sqlite history file (enables saving)")
		plotFile    = flag.String("plot", "", "Write a track/course overlay image (png, svg, pdf)")
		jsonOut     = flag.Bool("json", false, "Output the result as JSON")
		history     = flag.Int("history", 0, "List the N most recent saved reports and exit")
		showReport  = flag.String("show", "", "Print a saved report by ID and exit")
		leaderboard = flag.Bool("leaderboard", false, "Print verified lap totals per runner and exit")
		verbose     = flag.Bool("v", false, "Log verification diagnostics to stderr")
		version     = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("wingo - Verify laps of a running loop from a GPX track\n\n")
		fmt.Printf("usage: wingo -i /path/to/run.gpx\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  wingo -i run.gpx\n")
		fmt.Printf("  wingo -i run.gpx -course loop.geojson -plot run.png\n")
		fmt.Printf("  wingo -i run.gpx -start 40.6587,-73.9449 -end 40.6579,-73.9437\n")
		fmt.Printf("  wingo -i watch.gpx -backup phone.gpx\n")
		fmt.Printf("  wingo -i run.gpx -runner ana -db wingo.db\n")
		fmt.Printf("  wingo -db wingo.db -leaderboard\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("wingo v1.0.0 - GPS lap verifier")
		fmt.Println("https://github.com/planbiir/wingo")
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	if *courseFile != "" {
		cfg.Course = *courseFile
	}
	if *dbFile != "" {
		cfg.DB = *dbFile
	}
	if *runner != "" {
		cfg.Runner = *runner
	}
	if !*verbose {
		verify.SetLogger(nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *history > 0 || *showReport != "" || *leaderboard {
		if cfg.DB == "" {
			fatalf("Error: -db is required for -history, -show and -leaderboard")
		}
		if err := query(ctx, cfg.DB, *history, *showReport, *leaderboard, *jsonOut); err != nil {
			fatalf("Error reading history: %v", err)
		}
		return
	}

	if *inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if !*jsonOut {
		fmt.Printf("📖 Reading GPX file: %s\n", *inputFile)
	}
	doc, err := gpx.Parse(*inputFile)
	if err != nil {
		fatalf("Error reading GPX file: %v", err)
	}
	track, err := doc.Path()
	if err != nil {
		fatalf("❌ No GPS points found in file")
	}
	if !*jsonOut {
		stats := doc.Stats()
		fmt.Printf("📊 Track: %d points across %d tracks, %.2f km\n", stats.Points, stats.Tracks, stats.DistanceMeters/1000)
	}

	if *backupFile != "" {
		track = fillGaps(track, *backupFile, cfg.Merge, *jsonOut)
	}

	if *segStart != "" || *segEnd != "" {
		runSegment(ctx, track, *segName, *segStart, *segEnd, cfg.Verify, *jsonOut)
		return
	}

	c, err := loadCourse(cfg)
	if err != nil {
		fatalf("Error loading course: %v", err)
	}

	res, err := verify.Verify(ctx, track, c, cfg.Verify)
	if err != nil {
		fatalf("Error verifying track: %v", err)
	}

	if *jsonOut {
		printJSON(res)
	} else {
		fmt.Print(res.Summary())
	}

	if *plotFile != "" {
		if err := render.Overlay(track, c, res.Boundaries, *plotFile); err != nil {
			fatalf("Error writing plot: %v", err)
		}
		if !*jsonOut {
			fmt.Printf("🖼️  Overlay written: %s\n", *plotFile)
		}
	}

	if cfg.DB != "" {
		if err := save(ctx, cfg.DB, cfg.Runner, res); err != nil {
			fatalf("Error saving report: %v", err)
		}
		if !*jsonOut {
			fmt.Printf("💾 Saved report %s to %s\n", res.ID, cfg.DB)
		}
	}

	if !res.Verified() {
		os.Exit(1)
	}
}

func runSegment(ctx context.Context, track geo.Track, name, start, end string, cfg verify.Config, jsonOut bool) {
	from, err := geo.ParseLatLon(start)
	if err != nil {
		fatalf("Error parsing -start: %v", err)
	}
	to, err := geo.ParseLatLon(end)
	if err != nil {
		fatalf("Error parsing -end: %v", err)
	}

	res, err := verify.VerifySegment(ctx, track, course.Segment{Name: name, Start: from, End: to}, cfg)
	if err != nil {
		fatalf("Error detecting segment: %v", err)
	}
	if jsonOut {
		printJSON(res)
		return
	}

	fmt.Printf("\n🏁 Segment %q: %d attempts\n", res.SegmentName, len(res.Attempts))
	for i, a := range res.Attempts {
		fmt.Printf("   #%d  points %d → %d  %.1f m  %s\n", i+1, a.StartIndex, a.EndIndex, a.DistanceMeters, a.Elapsed)
	}
	if res.Fastest != nil {
		fmt.Printf("⚡ Fastest: %s (%.1f m)\n", res.Fastest.Elapsed, res.Fastest.DistanceMeters)
	}
}

// loadCourse builds the configured course, or the built-in loop, with the
// configured closure and segment limits.
func loadCourse(cfg config.Config) (*course.Course, error) {
	if cfg.Course != "" {
		return course.Load(cfg.Course, cfg.Verify.CourseOptions())
	}
	return course.New(course.Wingate().Name(), course.WingateLoop, cfg.Verify.CourseOptions())
}

func fillGaps(track geo.Track, path string, cfg merge.Config, quiet bool) geo.Track {
	doc, err := gpx.Parse(path)
	if err != nil {
		fatalf("Error reading backup GPX file: %v", err)
	}
	backup, err := doc.Path()
	if err != nil {
		fatalf("Error reading backup GPX file: %v", err)
	}
	merged, stats, err := merge.Fill(track, backup, cfg)
	if err != nil {
		fatalf("Error filling gaps: %v", err)
	}
	if !quiet {
		fmt.Printf("🩹 Gaps: %d detected, %d filled with %d backup points\n",
			stats.GapsDetected, stats.GapsFilled, stats.InsertedPoints)
	}
	return merged
}

func save(ctx context.Context, path, runner string, res *verify.Result) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Save(ctx, runner, res)
}

func query(ctx context.Context, path string, limit int, id string, board, jsonOut bool) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	switch {
	case id != "":
		rec, err := st.Get(ctx, id)
		if err != nil {
			return err
		}
		if jsonOut || rec.Result == nil {
			printJSON(rec)
		} else {
			fmt.Printf("👤 Runner: %s  🕒 Saved: %s\n", rec.Runner, rec.CreatedAt.Format(time.RFC3339))
			fmt.Print(rec.Result.Summary())
		}
	case board:
		standings, err := st.Leaderboard(ctx)
		if err != nil {
			return err
		}
		if jsonOut {
			printJSON(standings)
			return nil
		}
		fmt.Printf("\n🏆 Leaderboard\n")
		fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
		for i, s := range standings {
			fmt.Printf("%3d. %-20s %4d laps  (best %d, %d runs)\n", i+1, s.Runner, s.TotalLaps, s.BestLaps, s.VerifiedRuns)
		}
	default:
		recs, err := st.List(ctx, limit)
		if err != nil {
			return err
		}
		if jsonOut {
			printJSON(recs)
			return nil
		}
		for _, r := range recs {
			fmt.Printf("%s  %-16s %-12s %3d laps  %8.1f m  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.Runner, r.Status, r.LoopCount, r.DistanceMeters, r.ID)
		}
	}
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("Error marshaling JSON: %v", err)
	}
	fmt.Println(string(data))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
