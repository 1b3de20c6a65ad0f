package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/planbiir/wingo/internal/effort"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Efforts file: .csv cache or .json platform export")
		byAthlete = flag.Bool("by-athlete", false, "Group efforts per athlete instead of by date")
		recent    = flag.Int("recent", 10, "Number of recent efforts listed in the date view (0 = all)")
		from      = flag.String("from", "", "Only efforts starting on or after this date (YYYY-MM-DD)")
		to        = flag.String("to", "", "Only efforts starting on or before this date (YYYY-MM-DD)")
		csvOut    = flag.String("csv", "", "Write the filtered efforts to this CSV file")
		statsJSON = flag.Bool("stats-json", false, "Output the summary as JSON")
	)

	flag.Usage = func() {
		fmt.Printf("efforts - Summarise exported segment efforts\n\n")
		fmt.Printf("usage: efforts -i efforts.csv\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  efforts -i efforts.csv -recent 5\n")
		fmt.Printf("  efforts -i export.json -by-athlete\n")
		fmt.Printf("  efforts -i export.json -from 2024-01-01 -csv 2024.csv\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	efforts, err := read(*inputFile)
	if err != nil {
		fatalf("Error reading efforts: %v", err)
	}

	lo, err := parseDate(*from, false)
	if err != nil {
		fatalf("Error parsing -from: %v", err)
	}
	hi, err := parseDate(*to, true)
	if err != nil {
		fatalf("Error parsing -to: %v", err)
	}
	efforts = effort.FilterRange(efforts, lo, hi)

	if *csvOut != "" {
		if err := write(*csvOut, efforts); err != nil {
			fatalf("Error writing CSV: %v", err)
		}
	}

	var summary any
	if *byAthlete {
		summary = effort.ByAthlete(efforts)
	} else {
		summary = effort.ByDate(efforts, *recent)
	}

	if *statsJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fatalf("Error marshaling summary: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	switch s := summary.(type) {
	case []effort.AthleteSummary:
		printAthletes(s)
	case effort.DateSummary:
		printTimeline(s)
	}
}

func read(path string) ([]effort.Effort, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return effort.ReadJSON(f)
	}
	return effort.ReadCSV(f)
}

func write(path string, efforts []effort.Effort) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := effort.WriteCSV(f, efforts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseDate reads YYYY-MM-DD. An end bound covers the whole day.
func parseDate(s string, end bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func printTimeline(s effort.DateSummary) {
	fmt.Printf("\n📅 Efforts by date\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	if s.Count == 0 {
		fmt.Printf("No efforts in range\n")
		return
	}
	fmt.Printf("🔢 Efforts: %d (%s → %s)\n", s.Count, s.First.Format("2006-01-02"), s.Last.Format("2006-01-02"))
	fmt.Printf("⚡ Fastest: %s on %s %s\n", s.Fastest.Elapsed, s.Fastest.Start.Format("2006-01-02"), s.Fastest.ActivityURL())
	fmt.Printf("🕒 Recent:\n")
	for _, e := range s.Recent {
		fmt.Printf("   %s  %8s  %s\n", e.Start.Format("2006-01-02 15:04"), e.Elapsed, e.ActivityURL())
	}
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}

func printAthletes(list []effort.AthleteSummary) {
	fmt.Printf("\n👥 Efforts by athlete\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	for i, a := range list {
		name := a.Name
		if name == "" {
			name = a.AthleteID
		}
		fmt.Printf("%3d. %-24s %4d efforts  best %s\n", i+1, name, a.Count, a.Fastest.Elapsed)
	}
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
