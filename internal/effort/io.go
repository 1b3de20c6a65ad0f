package effort

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"date", "elapsed_time", "activity_id", "athlete_id", "athlete_name"}

// ReadCSV reads the effort cache format. The columns date, elapsed_time
// (seconds) and activity_id are required; athlete_id and athlete_name are
// optional. Columns may appear in any order.
func ReadCSV(r io.Reader) ([]Effort, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range csvHeader[:3] {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv header missing %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Effort
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		start, err := parseTime(field(row, "date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		secs, err := strconv.Atoi(field(row, "elapsed_time"))
		if err != nil {
			return nil, fmt.Errorf("line %d: elapsed_time: %w", line, err)
		}
		out = append(out, Effort{
			ActivityID:  field(row, "activity_id"),
			AthleteID:   field(row, "athlete_id"),
			AthleteName: field(row, "athlete_name"),
			Start:       start,
			Elapsed:     time.Duration(secs) * time.Second,
		})
	}
	return out, nil
}

// WriteCSV writes efforts in the format ReadCSV reads.
func WriteCSV(w io.Writer, efforts []Effort) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range efforts {
		row := []string{
			e.Start.Format(time.RFC3339),
			strconv.Itoa(int(e.Elapsed / time.Second)),
			e.ActivityID,
			e.AthleteID,
			e.AthleteName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// platformEffort is one element of the platform's segment effort list.
type platformEffort struct {
	StartDateLocal string `json:"start_date_local"`
	StartDate      string `json:"start_date"`
	ElapsedTime    int    `json:"elapsed_time"`
	Activity       struct {
		ID int64 `json:"id"`
	} `json:"activity"`
	Athlete struct {
		ID        int64  `json:"id"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
	} `json:"athlete"`
}

// ReadJSON reads a JSON array of platform segment efforts.
func ReadJSON(r io.Reader) ([]Effort, error) {
	var raw []platformEffort
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode efforts: %w", err)
	}

	out := make([]Effort, 0, len(raw))
	for i, p := range raw {
		date := p.StartDateLocal
		if date == "" {
			date = p.StartDate
		}
		start, err := parseTime(date)
		if err != nil {
			return nil, fmt.Errorf("effort %d: %w", i, err)
		}
		e := Effort{
			ActivityID:  strconv.FormatInt(p.Activity.ID, 10),
			AthleteName: strings.TrimSpace(p.Athlete.Firstname + " " + p.Athlete.Lastname),
			Start:       start,
			Elapsed:     time.Duration(p.ElapsedTime) * time.Second,
		}
		if p.Athlete.ID != 0 {
			e.AthleteID = strconv.FormatInt(p.Athlete.ID, 10)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
